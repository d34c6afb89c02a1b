// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// listState is the navigation state shared by the Clientes and Proveedores
// tabs. The selected row is tracked by id, since every snapshot replaces the
// rows wholesale.
type listState struct {
	loaded     bool
	search     textinput.Model
	searching  bool
	idx        int
	mode       listMode
	selectedID int64
	form       form
}

func newListState(placeholder string) listState {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Width = 30
	in.Prompt = "/ "

	return listState{search: in}
}

func (s listState) capturesKeys() bool {
	return s.searching || s.mode == modeEdit || s.mode == modeCreate
}

func (s *listState) clamp(n int) {
	if s.idx >= n {
		s.idx = n - 1
	}
	if s.idx < 0 {
		s.idx = 0
	}
}

// updateSearch feeds msg to the search box. enter and esc leave it with the
// term kept.
func (s *listState) updateSearch(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.esc) {
			s.searching = false
			s.search.Blur()
			return nil
		}
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.idx = 0
	return cmd
}

func (s *listState) startSearch() tea.Cmd {
	s.searching = true
	return s.search.Focus()
}

// moveCursor handles up and down in the list. It reports whether msg was
// one of them.
func (s *listState) moveCursor(msg tea.KeyMsg, n int) bool {
	switch {
	case key.Matches(msg, keys.up):
		if s.idx > 0 {
			s.idx--
		}
		return true
	case key.Matches(msg, keys.down):
		if s.idx < n-1 {
			s.idx++
		}
		return true
	}
	return false
}

// updateForm handles focus movement and cancel for the edit and create
// forms. submit is called on enter once required fields are filled.
func (s *listState) updateForm(msg tea.Msg, submit func() tea.Cmd) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.form.update(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		if s.form.submitting {
			return nil
		}
		if s.mode == modeEdit {
			s.mode = modeDetail
		} else {
			s.mode = modeList
		}
		return nil
	case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
		s.form.focusNext()
		return nil
	case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
		s.form.focusPrev()
		return nil
	case key.Matches(keyMsg, keys.enter):
		if s.form.submitting {
			return nil
		}
		if label, missing := s.form.missingRequired(); missing {
			s.form.errMsg = label + " es obligatorio"
			return nil
		}
		s.form.errMsg = ""
		s.form.submitting = true
		return submit()
	}

	return s.form.update(msg)
}
