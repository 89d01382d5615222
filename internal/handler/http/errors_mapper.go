package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/service"
	"github.com/MKhiriev/insight-hunter/internal/store"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrUserAlreadyExists:       http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusBadRequest,
	service.ErrInvalidResetToken:       http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusForbidden,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrUserNotFound:            http.StatusNotFound,

	validators.ErrValidation: http.StatusBadRequest,

	store.ErrEmailAlreadyExists:  http.StatusBadRequest,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrDatabaseUnavailable: http.StatusServiceUnavailable,

	ErrInvalidJSON:                http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNotFound:                   http.StatusNotFound,
	ErrTooManyRequests:            http.StatusTooManyRequests,
}

// detailedErrors keep their full wrapped message in the response body.
var detailedErrors = []error{validators.ErrValidation, ErrInvalidJSON}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text shown to the client. 5xx responses never
// carry internal details.
func messageFromError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return strings.ToLower(http.StatusText(status))
	}

	for _, target := range detailedErrors {
		if errors.Is(err, target) {
			return err.Error()
		}
	}

	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// writeError maps err to a status and writes the JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, messageFromError(err, status), status)
}
