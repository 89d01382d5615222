// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the insight-hunter API.
//
// The primary abstraction is [ServerAdapter], which hides the REST transport
// from callers such as cmd/client. Non-2xx responses are mapped to the
// sentinel errors in errors.go so that callers can use [errors.Is]
// (e.g. [ErrUnauthorized] for 401, [ErrForbidden] for 403). The message from
// the server's {"error": "..."} body is attached to the returned error.
package adapter

import (
	"context"

	"github.com/MKhiriev/insight-hunter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the insight-hunter API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter.
	Token() string

	// Register creates an account and returns it.
	Register(ctx context.Context, email, password string) (models.User, error)

	// Login authenticates the credentials and stores the returned token.
	Login(ctx context.Context, email, password string) (models.LoginResponse, error)

	// Forgot requests a password reset link for email.
	Forgot(ctx context.Context, email string) (string, error)

	// Reset sets a new password using a reset token.
	Reset(ctx context.Context, token, password string) (string, error)

	// SetDemoMode toggles demo mode on the account with userID.
	// Requires a token.
	SetDemoMode(ctx context.Context, userID string, enabled bool) (models.User, error)

	// Reports returns the insight reports. Requires a token.
	Reports(ctx context.Context) ([]string, error)

	// Health returns the service status line.
	Health(ctx context.Context) (string, error)

	// Version returns the running API version.
	Version(ctx context.Context) (string, error)
}
