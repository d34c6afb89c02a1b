// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal interface of the bizdesk client with
// Bubble Tea.
//
// Two programs run one after the other: the authentication flow
// ([TUI.LoginFlow]) and the main window ([TUI.MainLoop]) with the Resumen,
// Clientes, Proveedores and Perfil tabs. The main window never fetches rows
// itself; it renders the snapshots that list synchronizers push through a
// [Sink], and sends mutations through the directory service.
package tui
