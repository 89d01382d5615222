package http

import (
	"net/http"

	"github.com/MKhiriev/insight-hunter/models"
)

func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	insights := h.services.ReportService.Insights(r.Context())
	writeJSON(w, r, models.ReportsResponse{Insights: insights}, http.StatusOK)
}
