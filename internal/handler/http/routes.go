// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS())
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.root)
	router.Get("/version", h.getServerVersion)
	router.Get("/test/test-db", h.testDB)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Post("/logout", h.logout)
		})
	})

	router.Route("/vms", func(r chi.Router) {
		r.Get("/", h.listVMs)
		r.Get("/{id}", h.getVM)

		// listing management is limited to admins
		r.Group(func(r chi.Router) {
			r.Use(h.auth, h.adminOnly)
			r.Post("/", h.createVM)
			r.Put("/{id}", h.updateVM)
			r.Delete("/{id}", h.deleteVM)
		})
	})

	router.Route("/stripe", func(r chi.Router) {
		r.Post("/webhook", h.stripeWebhook)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/create-test-product", h.createTestProduct)
			r.Post("/create-checkout-session", h.createCheckoutSession)
			r.Post("/create-payment-intent", h.createPaymentIntent)
			r.Get("/payment-status/{id}", h.paymentStatus)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
