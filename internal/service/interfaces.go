// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/insight-hunter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns credentials and bearer tokens.
type AuthService interface {
	// RegisterUser creates an account in demo mode. The returned user never
	// carries a password hash.
	RegisterUser(ctx context.Context, email, password string) (models.User, error)

	// Login checks the credentials and issues a bearer token. Unknown email
	// and wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (models.LoginResponse, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken verifies a bearer token and returns its owner.
	ParseToken(ctx context.Context, tokenString string) (models.Identity, error)

	// SetDemoMode changes the flag of targetID. Only the owner may do so.
	SetDemoMode(ctx context.Context, requestor models.Identity, targetID string, enabled bool) (models.User, error)

	// SeedDemoUser registers the demo account unless it already exists.
	SeedDemoUser(ctx context.Context, email, password string) (models.User, error)
}

// PasswordResetService implements the forgot/reset flow.
type PasswordResetService interface {
	// Forgot issues a reset token for email and hands it to the notifier.
	// It reports success for unknown emails too.
	Forgot(ctx context.Context, email string) error

	// Reset replaces the password of the user owning token.
	Reset(ctx context.Context, token, newPassword string) error
}

// ReportService serves the insights shown on the dashboard.
type ReportService interface {
	Insights(ctx context.Context) []string
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
