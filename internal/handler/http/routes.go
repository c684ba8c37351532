// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-subs-directory/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(routeNotFound)
	router.MethodNotAllowed(methodNotAllowed)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(metrics.Middleware)
	router.Use(withCORS)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	if h.requestTimeout > 0 {
		router.Use(withTimeoutReply, middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.registerUser)
		r.Get("/all", h.listUsers)
		r.Get("/key/{key}", h.getUserByInviteKey)
		r.Get("/subscribers/{inviteKey}", h.listSubscribers)
		r.Put("/update/{id}", h.updateUser)
		r.Put("/resetInviteKey/{id}", h.resetInviteKey)
		r.Get("/{id}", h.getUser)
	})

	router.Route("/api/subscriptions", func(r chi.Router) {
		r.Post("/", h.subscribe)
		r.Get("/{userId}", h.listSubscriptionTargets)
	})

	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", metrics.Handler())

	return router
}
