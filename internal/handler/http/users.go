package http

import (
	"net/http"

	"github.com/MKhiriev/insight-hunter/internal/service"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
	"github.com/go-chi/chi/v5"
)

// setDemoMode handles PATCH /users/{id}/demo-mode. Only the owner of the
// account may change it.
func (h *Handler) setDemoMode(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrForbidden)
		return
	}

	// ownership is checked before the body so that other users learn nothing
	targetID := chi.URLParam(r, "id")
	if identity.UserID != targetID {
		writeError(w, r, service.ErrForbidden)
		return
	}

	var req models.DemoModeRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.SetDemoMode(r.Context(), identity, targetID, *req.DemoMode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusOK)
}
