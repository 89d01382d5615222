package http

import (
	"net/http"

	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/models"
)

// register handles POST /auth/register.
//
// It responds with the created user (never its password hash), 400 for an
// invalid body or a taken email.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.metrics.observeAuth(operationRegister, outcomeFailure)
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req.Email, req.Password)
	h.metrics.observeAuthResult(operationRegister, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.UserID).Msg("user registered")
	writeJSON(w, r, user, http.StatusOK)
}

// login handles POST /auth/login and responds with {token, user}.
// Unknown email and wrong password produce the same 400 response.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.metrics.observeAuth(operationLogin, outcomeFailure)
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AuthService.Login(r.Context(), req.Email, req.Password)
	h.metrics.observeAuthResult(operationLogin, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, resp, http.StatusOK)
}
