// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"

	"github.com/MKhiriev/insight-hunter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Notifier hands reset tokens over to whatever delivers them to the user.
type Notifier interface {
	// NotifyPasswordReset delivers event. It must not block longer than the
	// context allows.
	NotifyPasswordReset(ctx context.Context, event models.PasswordResetEvent) error

	// Close releases connections held by the notifier.
	Close() error
}
