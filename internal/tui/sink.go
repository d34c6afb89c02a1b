// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/models"
)

// Sink forwards synchronizer snapshots into the running main window. Its
// methods match the onSnapshot callbacks of listsync.Synchronizer and may
// be called from any goroutine.
type Sink struct {
	send func(tea.Msg)
}

// NewSink returns a Sink delivering to send, usually (*tea.Program).Send.
func NewSink(send func(tea.Msg)) *Sink {
	return &Sink{send: send}
}

func (s *Sink) Clients(rows []models.Client) { s.send(clientsMsg(rows)) }

func (s *Sink) Suppliers(rows []models.Supplier) { s.send(suppliersMsg(rows)) }

func (s *Sink) ClientPreview(rows []models.Client) { s.send(clientPreviewMsg(rows)) }

func (s *Sink) SupplierPreview(rows []models.Supplier) { s.send(supplierPreviewMsg(rows)) }

// ClientCount reports the size of the counter snapshot.
func (s *Sink) ClientCount(rows []models.Record) { s.send(clientCountMsg(len(rows))) }

// SupplierCount reports the size of the counter snapshot.
func (s *Sink) SupplierCount(rows []models.Record) { s.send(supplierCountMsg(len(rows))) }
