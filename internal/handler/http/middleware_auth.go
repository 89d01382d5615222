package http

import (
	"net/http"

	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// A missing or malformed "Authorization" header is rejected with 401
// Unauthorized. A token that fails signature, issuer or expiry checks is
// rejected with 403 Forbidden. On success the caller's [models.Identity] is
// stored in the request context via [utils.WithIdentity].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			h.metrics.observeAuth(operationToken, outcomeMissing)
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")
			h.metrics.observeAuth(operationToken, outcomeMissing)
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Info().Err(err).Msg("token rejected")
			h.metrics.observeAuth(operationToken, outcomeFailure)
			writeError(w, r, err)
			return
		}

		h.metrics.observeAuth(operationToken, outcomeSuccess)
		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}
