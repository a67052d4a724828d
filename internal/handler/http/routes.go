// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withMetrics)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(h.requestTimeout))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "resource not found", http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(withGZip)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/me", h.me)
		r.Put("/api/me/password", h.changePassword)

		r.Get("/api/dashboard", h.dashboard)

		r.Route("/api/clients", func(r chi.Router) {
			r.Get("/", h.listClients)
			r.Post("/", h.createClient)
			r.Get("/{id}", h.getClient)
			r.Put("/{id}", h.updateClient)
		})

		r.Route("/api/appointments", func(r chi.Router) {
			r.Get("/", h.listAppointments)
			r.Post("/", h.createAppointment)
			r.Put("/{id}", h.updateAppointment)
			r.Delete("/{id}", h.deleteAppointment)
		})

		r.Route("/api/documents", func(r chi.Router) {
			r.Get("/", h.listDocuments)
			r.Post("/", h.uploadDocument)
			r.Get("/{id}/file", h.downloadDocument)
			r.Delete("/{id}", h.deleteDocument)
		})

		r.Route("/api/revenue", func(r chi.Router) {
			r.Get("/", h.listRevenue)
			r.Post("/", h.addRevenue)
		})

		r.Route("/api/chat/messages", func(r chi.Router) {
			r.Get("/", h.listMessages)
			r.Post("/", h.sendMessage)
			r.Get("/{id}/file", h.downloadAttachment)
		})

		r.Route("/api/admin/users", func(r chi.Router) {
			r.Use(h.adminOnly)
			r.Get("/", h.listUsers)
			r.Post("/", h.createAgent)
			r.Put("/{id}", h.editAgent)
			r.Delete("/{id}", h.deleteAgent)
		})
	})

	return router
}
