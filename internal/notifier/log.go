package notifier

import (
	"context"

	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
)

// LogNotifier is the development fallback used when no broker is configured.
// The reset URL carries the raw token, so it is written at debug level only.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) NotifyPasswordReset(ctx context.Context, event models.PasswordResetEvent) error {
	traceID := utils.GetTraceIDFromContext(ctx)

	n.logger.Info().
		Str("func", "LogNotifier.NotifyPasswordReset").
		Str("trace_id", traceID).
		Str("user_id", event.UserID).
		Str("email", event.Email).
		Msg("password reset requested")
	n.logger.Debug().
		Str("func", "LogNotifier.NotifyPasswordReset").
		Str("trace_id", traceID).
		Str("user_id", event.UserID).
		Str("reset_url", event.URL).
		Msg("password reset link")

	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
