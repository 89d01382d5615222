// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	defaultTokenIssuer        = "insight-hunter"
	defaultTokenDuration      = 24 * time.Hour
	defaultResetTokenDuration = time.Hour
	defaultBcryptCost         = 10
	defaultVersion            = "dev"
	defaultRequestTimeout     = 30 * time.Second
	defaultExchange           = "insight.events"
	defaultPublishTimeout     = 5 * time.Second
	defaultDemoEmail          = "demo@insighthunter.com"
	defaultDemoPassword       = "password123"

	minBcryptCost = 4
	maxBcryptCost = 31
)

// applyDefaults fills optional fields that no source has set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.ResetTokenDuration == 0 {
		cfg.App.ResetTokenDuration = defaultResetTokenDuration
	}
	if cfg.App.ResetTokenHashKey == "" {
		cfg.App.ResetTokenHashKey = cfg.App.TokenSignKey
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = defaultBcryptCost
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.App.DemoEmail == "" {
		cfg.App.DemoEmail = defaultDemoEmail
	}
	if cfg.App.DemoPassword == "" {
		cfg.App.DemoPassword = defaultDemoPassword
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Notifier.Exchange == "" {
		cfg.Notifier.Exchange = defaultExchange
	}
	if cfg.Notifier.PublishTimeout == 0 {
		cfg.Notifier.PublishTimeout = defaultPublishTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.TokenDuration < 0 || cfg.App.ResetTokenDuration < 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	if cfg.Server.AuthRateLimit < 0 {
		return fmt.Errorf("%w: auth rate limit must not be negative", ErrInvalidServerConfigs)
	}

	return nil
}
