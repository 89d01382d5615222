// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// insight-hunter API server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, reset-token and password hashing settings together
	// with the application version and demo account credentials.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Notifier holds the message broker used to deliver reset tokens.
	Notifier Notifier `envPrefix:"NOTIFIER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the HS256 secret used to sign and verify bearer tokens.
	// Required; the server refuses to start without it.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in and checked on every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a bearer token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// ResetTokenDuration specifies how long a password reset token is accepted.
	// Env: APP_RESET_TOKEN_DURATION
	ResetTokenDuration time.Duration `env:"RESET_TOKEN_DURATION"`

	// ResetTokenHashKey is the HMAC key for stored reset token digests.
	// Falls back to TokenSignKey when empty.
	// Env: APP_RESET_TOKEN_HASH_KEY
	ResetTokenHashKey string `env:"RESET_TOKEN_HASH_KEY"`

	// ResetURL is the presentation-layer page that accepts a reset token,
	// e.g. "https://app.example.com/reset". The token is appended as a query
	// parameter in the notification event.
	// Env: APP_RESET_URL
	ResetURL string `env:"RESET_URL"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// DemoEmail and DemoPassword describe the account created by the seed command.
	// Env: APP_DEMO_EMAIL, APP_DEMO_PASSWORD
	DemoEmail    string `env:"DEMO_EMAIL"`
	DemoPassword string `env:"DEMO_PASSWORD"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects both the driver and the database:
	//   - "postgres://..." or "postgresql://..." opens PostgreSQL via pgx,
	//   - "sqlite://path", "file:path" or ":memory:" opens SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the read and write phases of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthRateLimit is the number of /auth/* requests allowed per client IP
	// per minute. Zero disables limiting.
	// Env: SERVER_AUTH_RATE_LIMIT
	AuthRateLimit int `env:"AUTH_RATE_LIMIT"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Notifier holds message broker settings for reset-token delivery.
type Notifier struct {
	// BrokerURL is an AMQP URL. When empty, events are only logged.
	// Env: NOTIFIER_BROKER_URL
	BrokerURL string `env:"BROKER_URL"`

	// Exchange is the topic exchange events are published to.
	// Env: NOTIFIER_EXCHANGE
	Exchange string `env:"EXCHANGE"`

	// PublishTimeout bounds a single publish including the broker confirm.
	// Env: NOTIFIER_PUBLISH_TIMEOUT
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. .env file in the working directory (never overrides real env vars)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Defaults are applied to unset optional fields before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}

// ClientAdapter holds the settings of the API client used by cmd/client.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the API, e.g. "http://localhost:8080".
	// A missing scheme defaults to http.
	HTTPAddress string `env:"CLIENT_SERVER_ADDRESS"`

	// RequestTimeout bounds a single request. Zero means no timeout.
	RequestTimeout time.Duration `env:"CLIENT_REQUEST_TIMEOUT"`
}
