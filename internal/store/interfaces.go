package store

import (
	"context"
	"time"

	"github.com/MKhiriev/insight-hunter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: the persistent User table.
//
// Implementations must enforce email uniqueness in the database, so that of
// several concurrent CreateUser calls with the same email exactly one succeeds.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	SetResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) (models.User, error)
	ResetPasswordByToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (int64, error)
	SetDemoMode(ctx context.Context, userID string, enabled bool) (models.User, error)
}
