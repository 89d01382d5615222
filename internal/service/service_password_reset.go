// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/notifier"
	"github.com/MKhiriev/insight-hunter/internal/store"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
)

// resetTokenBytes is the entropy of a reset token: 256 bits.
const resetTokenBytes = 32

type passwordResetService struct {
	userRepository store.UserRepository
	notifier       notifier.Notifier

	// hashKey keys the HMAC digest stored instead of the raw token.
	hashKey       string
	tokenDuration time.Duration
	resetURL      string
	bcryptCost    int

	now           func() time.Time
	generateToken func() (string, error)

	logger *logger.Logger
}

func NewPasswordResetService(userRepository store.UserRepository, n notifier.Notifier, cfg config.App, logger *logger.Logger) PasswordResetService {
	hashKey := cfg.ResetTokenHashKey
	if hashKey == "" {
		hashKey = cfg.TokenSignKey
	}

	return &passwordResetService{
		userRepository: userRepository,
		notifier:       n,
		hashKey:        hashKey,
		tokenDuration:  cfg.ResetTokenDuration,
		resetURL:       cfg.ResetURL,
		bcryptCost:     cfg.BcryptCost,
		now:            time.Now,
		generateToken: func() (string, error) {
			return utils.GenerateSecureToken(resetTokenBytes)
		},
		logger: logger,
	}
}

// Forgot issues a fresh reset token for email, overwriting any earlier one.
//
// The raw token is only passed to the notifier. Unknown emails and notifier
// failures are logged and reported as success so the response does not
// reveal whether an account exists.
func (s *passwordResetService) Forgot(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	token, err := s.generateToken()
	if err != nil {
		log.Err(err).Str("func", "passwordResetService.Forgot").Msg("reset token generation failed")
		return fmt.Errorf("%w: %w", ErrResetTokenNotGenerated, err)
	}

	expiresAt := s.now().UTC().Add(s.tokenDuration)
	user, err := s.userRepository.SetResetToken(ctx, email, utils.HashString(token, s.hashKey), expiresAt)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("func", "passwordResetService.Forgot").Msg("reset requested for unknown email")
			return nil
		}
		log.Err(err).Str("func", "passwordResetService.Forgot").Msg("storing reset token failed")
		return fmt.Errorf("storing reset token failed: %w", err)
	}

	event := models.PasswordResetEvent{
		UserID: user.UserID,
		Email:  user.Email,
		Token:  token,
		URL:    s.resetLink(ctx, token),
	}
	if err = s.notifier.NotifyPasswordReset(ctx, event); err != nil {
		log.Err(err).Str("func", "passwordResetService.Forgot").Str("user_id", user.UserID).Msg("reset notification failed")
	}

	return nil
}

// Reset sets newPassword for the owner of token. The token is cleared in the
// same statement, so it works once; expired or unknown tokens yield
// ErrInvalidResetToken.
func (s *passwordResetService) Reset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	passwordHash, err := hashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	affected, err := s.userRepository.ResetPasswordByToken(ctx, utils.HashString(token, s.hashKey), passwordHash, s.now().UTC())
	if err != nil {
		log.Err(err).Str("func", "passwordResetService.Reset").Msg("password reset failed")
		return fmt.Errorf("password reset failed: %w", err)
	}
	if affected == 0 {
		log.Info().Str("func", "passwordResetService.Reset").Msg("invalid or expired reset token")
		return ErrInvalidResetToken
	}

	return nil
}

// resetLink appends token to the configured reset page. An empty or broken
// reset URL yields an empty link.
func (s *passwordResetService) resetLink(ctx context.Context, token string) string {
	if s.resetURL == "" {
		return ""
	}

	u, err := url.Parse(s.resetURL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "passwordResetService.resetLink").Msg("invalid reset url")
		return ""
	}

	query := u.Query()
	query.Set("token", token)
	u.RawQuery = query.Encode()

	return u.String()
}
