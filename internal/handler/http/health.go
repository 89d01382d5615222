package http

import (
	"net/http"

	"github.com/MKhiriev/insight-hunter/models"
)

const healthStatus = "Backend running"

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.HealthResponse{Status: healthStatus}, http.StatusOK)
}
