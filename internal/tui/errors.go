// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/bizdesk/internal/service"
)

// ErrUserQuit is returned by [TUI.LoginFlow] when the user leaves the
// program instead of signing in.
var ErrUserQuit = errors.New("el usuario salió del programa")

var (
	errNothingToCopy = errors.New("el campo está vacío")
	errNoServices    = errors.New("client services are not configured")
)

// humanizeError turns service errors into the sentence shown to the user.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Faltan datos obligatorios"
	case errors.Is(err, service.ErrWrongPassword):
		return "Email o contraseña incorrectos"
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return "Ya existe una cuenta con ese email"
	case errors.Is(err, service.ErrNameRequired):
		return "El nombre es obligatorio"
	case errors.Is(err, service.ErrNothingToUpdate):
		return "No hay cambios que guardar"
	case errors.Is(err, service.ErrRowNotFound):
		return "El registro ya no existe"
	case errors.Is(err, service.ErrNotSignedIn):
		return "La sesión ha caducado, vuelve a iniciar sesión"
	case errors.Is(err, service.ErrRegisterOnServer), errors.Is(err, service.ErrLoginOnServer):
		return "El servidor no pudo completar la operación"
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Sin conexión o servidor no disponible"
	}

	return err.Error()
}
