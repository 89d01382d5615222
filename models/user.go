// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account of the insight dashboard.
// Credential fields are excluded from JSON so a User can be written to an
// HTTP response as-is.
type User struct {
	// UserID is the immutable identifier assigned at registration (UUIDv7).
	UserID string `json:"id"`

	// Email is the unique login of the user. Compared with exact match.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It never leaves the server.
	PasswordHash string `json:"-"`

	// DemoMode is a per-user display flag. New accounts start in demo mode.
	DemoMode bool `json:"demoMode"`

	// ResetTokenHash is the keyed digest of the single outstanding password
	// reset token, or nil when no reset is pending. The raw token is never stored.
	ResetTokenHash *string `json:"-"`

	// ResetTokenExpiresAt is the moment after which ResetTokenHash stops matching.
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPendingReset reports whether a reset token is stored and not yet expired at now.
func (u User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}

// Identity is the authenticated caller decoded from a bearer token.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}
