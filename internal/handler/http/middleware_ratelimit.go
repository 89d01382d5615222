package http

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// withAuthRateLimit limits /auth/* requests per client IP per minute.
// A zero limit disables it.
func (h *Handler) withAuthRateLimit() func(http.Handler) http.Handler {
	if h.cfg.AuthRateLimit <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		h.cfg.AuthRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, ErrTooManyRequests)
		}),
	)
}
