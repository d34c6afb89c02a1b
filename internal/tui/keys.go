// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	signOut   key.Binding
	newItem   key.Binding
	edit      key.Binding
	search    key.Binding
	copyEmail key.Binding
	copyPhone key.Binding
	sortName  key.Binding
	sortCont  key.Binding
	sortType  key.Binding
	deleteAcc key.Binding
	buildInfo key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	signOut:   key.NewBinding(key.WithKeys("o")),
	newItem:   key.NewBinding(key.WithKeys("n")),
	edit:      key.NewBinding(key.WithKeys("e")),
	search:    key.NewBinding(key.WithKeys("/")),
	copyEmail: key.NewBinding(key.WithKeys("c")),
	copyPhone: key.NewBinding(key.WithKeys("p")),
	sortName:  key.NewBinding(key.WithKeys("1")),
	sortCont:  key.NewBinding(key.WithKeys("2")),
	sortType:  key.NewBinding(key.WithKeys("3")),
	deleteAcc: key.NewBinding(key.WithKeys("x")),
	buildInfo: key.NewBinding(key.WithKeys("v")),
	yes:       key.NewBinding(key.WithKeys("y", "s")),
	no:        key.NewBinding(key.WithKeys("n")),
}
