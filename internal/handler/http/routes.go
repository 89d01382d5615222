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
	router.Use(h.withMetrics)
	router.Use(h.withCORS())

	router.Get("/", h.health)
	router.Get("/api/version", h.getServerVersion)
	router.Method("GET", "/metrics", h.metrics.handler())

	// routes without authorization
	router.Route("/auth", func(r chi.Router) {
		r.Use(h.withAuthRateLimit())
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/forgot", h.forgot)
		r.Post("/reset", h.reset)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Patch("/users/{id}/demo-mode", h.setDemoMode)
		r.Get("/reports", h.reports)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
