package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// withCORS allows the presentation layer to call the API from the browser.
// Without configured origins every origin is accepted, but no credentials.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	origins := h.cfg.CORSAllowedOrigins
	allowCredentials := true
	if len(origins) == 0 {
		origins = []string{"*"}
		allowCredentials = false
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           3600,
	})
}
