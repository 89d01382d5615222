package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUser_JSONOmitsCredentials verifies that neither the password hash nor the
// reset token digest can leak through a serialized user.
func TestUser_JSONOmitsCredentials(t *testing.T) {
	digest := "reset-digest"
	expires := time.Now().Add(time.Hour)
	u := User{
		UserID:              "0192f0c4-0000-7000-8000-000000000001",
		Email:               "a@x.com",
		PasswordHash:        "$2a$10$secret",
		DemoMode:            true,
		ResetTokenHash:      &digest,
		ResetTokenExpiresAt: &expires,
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, u.UserID, decoded["id"])
	assert.Equal(t, "a@x.com", decoded["email"])
	assert.Equal(t, true, decoded["demoMode"])
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), digest)
}

func TestUser_HasPendingReset(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)
	digest := "digest"

	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "no token", user: User{}, want: false},
		{name: "token without expiry", user: User{ResetTokenHash: &digest}, want: false},
		{name: "valid token", user: User{ResetTokenHash: &digest, ResetTokenExpiresAt: &later}, want: true},
		{name: "expired token", user: User{ResetTokenHash: &digest, ResetTokenExpiresAt: &earlier}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.HasPendingReset(now))
		})
	}
}
