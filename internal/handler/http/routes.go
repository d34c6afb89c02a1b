// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/bizdesk/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getServerVersion)
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	router.Route("/auth/v1", func(r chi.Router) {
		h.withRequestTimeout(r)

		// routes without authorization
		r.Post("/signup", h.signUp)
		r.Post("/token", h.signIn)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.signOut)
			r.Get("/user", h.getUser)
			r.Put("/user", h.updateUser)
			r.Delete("/user", h.deleteUser)
		})
	})

	router.Route("/rest/v1/{table}", func(r chi.Router) {
		h.withRequestTimeout(r)
		r.Use(h.auth)
		r.Get("/", h.listRows)
		r.Post("/", h.insertRow)
		r.Get("/count", h.countRows)
		r.Patch("/{id}", h.updateRow)
		r.Delete("/{id}", h.deleteRow)
	})

	// the token travels in the query string; websocket clients cannot set headers
	router.Get("/realtime/v1/websocket", h.realtime)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return router
}

func (h *Handler) withRequestTimeout(r chi.Router) {
	if h.requestTimeout > 0 {
		r.Use(middleware.Timeout(h.requestTimeout))
	}
}
