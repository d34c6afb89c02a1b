// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func typeInto(f *form, text string) {
	for _, r := range text {
		f.update(keyPress(string(r)))
	}
}

func TestForm_FocusWraps(t *testing.T) {
	f := newForm(fieldSpec{label: "A"}, fieldSpec{label: "B"})
	assert.Equal(t, 0, f.focus)

	f.focusNext()
	assert.Equal(t, 1, f.focus)
	f.focusNext()
	assert.Equal(t, 0, f.focus)
	f.focusPrev()
	assert.Equal(t, 1, f.focus)
}

func TestForm_ValuesAndRequired(t *testing.T) {
	f := newForm(
		fieldSpec{label: "Nombre", required: true},
		fieldSpec{label: "Contraseña", secret: true},
	)

	label, missing := f.missingRequired()
	assert.True(t, missing)
	assert.Equal(t, "Nombre", label)

	typeInto(&f, "  Ana ")
	f.focusNext()
	typeInto(&f, " secret ")

	_, missing = f.missingRequired()
	assert.False(t, missing)
	assert.Equal(t, "Ana", f.value(0))
	// passwords are taken as typed
	assert.Equal(t, " secret ", f.value(1))
	assert.Equal(t, "", f.value(5))
}

func TestForm_WithPlaceholdersKeepsInputsBlank(t *testing.T) {
	f := newClientForm(true).withPlaceholders("Ana", "", "600")

	assert.Equal(t, "Ana", f.fields[0].input.Placeholder)
	assert.Equal(t, "email", f.fields[1].input.Placeholder)
	assert.Equal(t, "600", f.fields[2].input.Placeholder)
	assert.Equal(t, "", f.value(0))

	_, missing := f.missingRequired()
	assert.False(t, missing)
}

func TestForm_ViewShowsError(t *testing.T) {
	f := newSignInForm()
	f.errMsg = "Email es obligatorio"
	f.submitting = true

	view := f.view("Entrar")

	assert.Contains(t, view, "Email *")
	assert.Contains(t, view, "[Entrar...]")
	assert.Contains(t, view, "Email es obligatorio")
}
