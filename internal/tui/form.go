// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	label    string
	required bool
	secret   bool
	limit    int
}

type formField struct {
	fieldSpec
	input textinput.Model
}

// form is a column of labelled text inputs with one focused field. Key
// handling for submit and cancel belongs to the owner.
type form struct {
	fields     []formField
	focus      int
	submitting bool
	errMsg     string
}

func newForm(specs ...fieldSpec) form {
	fields := make([]formField, len(specs))
	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = strings.ToLower(spec.label)
		in.CharLimit = 256
		if spec.limit > 0 {
			in.CharLimit = spec.limit
		}
		in.Width = 40
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		fields[i] = formField{fieldSpec: spec, input: in}
	}

	f := form{fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// withPlaceholders shows the stored values as placeholders, so an edit form
// starts blank and a field left blank keeps its value.
func (f form) withPlaceholders(values ...string) form {
	for i, v := range values {
		if i < len(f.fields) && v != "" {
			f.fields[i].input.Placeholder = v
		}
	}
	return f
}

func (f form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	if f.fields[i].secret {
		return f.fields[i].input.Value()
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

// missingRequired returns the label of the first empty required field.
func (f form) missingRequired() (string, bool) {
	for i, field := range f.fields {
		if field.required && f.value(i) == "" {
			return field.label, true
		}
	}
	return "", false
}

func (f *form) focusNext() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) focusPrev() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f form) view(submitLabel string) string {
	width := 0
	for _, field := range f.fields {
		width = max(width, len([]rune(field.label))+2)
	}

	var b strings.Builder
	for _, field := range f.fields {
		label := field.label
		if field.required {
			label += " *"
		}
		b.WriteString(padRight(label, width))
		b.WriteString(" │ [")
		b.WriteString(field.input.View())
		b.WriteString("]\n")
	}

	b.WriteString("\n[")
	b.WriteString(submitLabel)
	if f.submitting {
		b.WriteString("...")
	}
	b.WriteString("]\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
