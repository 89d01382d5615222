package http

import (
	"net/http"

	"github.com/MKhiriev/insight-hunter/models"
)

const (
	forgotMessage = "If the account exists, a reset link has been sent"
	resetMessage  = "Password reset"
)

// forgot handles POST /auth/forgot. The response is the same whether or not
// the email belongs to an account, and it never contains the token.
func (h *Handler) forgot(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.metrics.observeAuth(operationForgot, outcomeFailure)
		writeError(w, r, err)
		return
	}

	err := h.services.PasswordResetService.Forgot(r.Context(), req.Email)
	h.metrics.observeAuthResult(operationForgot, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: forgotMessage}, http.StatusOK)
}

// reset handles POST /auth/reset.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.metrics.observeAuth(operationReset, outcomeFailure)
		writeError(w, r, err)
		return
	}

	err := h.services.PasswordResetService.Reset(r.Context(), req.Token, req.Password)
	h.metrics.observeAuthResult(operationReset, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: resetMessage}, http.StatusOK)
}
