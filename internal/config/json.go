package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and string durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		ResetTokenDuration Duration `json:"reset_token_duration"`
		ResetTokenHashKey  string   `json:"reset_token_hash_key"`
		ResetURL           string   `json:"reset_url"`
		BcryptCost         int      `json:"bcrypt_cost"`
		Version            string   `json:"version"`
		DemoEmail          string   `json:"demo_email"`
		DemoPassword       string   `json:"demo_password"`
		LogLevel           string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		AuthRateLimit      int      `json:"auth_rate_limit"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	} `json:"server,omitempty"`

	Notifier struct {
		BrokerURL      string   `json:"broker_url"`
		Exchange       string   `json:"exchange"`
		PublishTimeout Duration `json:"publish_timeout"`
	} `json:"notifier,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			ResetTokenDuration: time.Duration(jsonCfg.App.ResetTokenDuration),
			ResetTokenHashKey:  jsonCfg.App.ResetTokenHashKey,
			ResetURL:           jsonCfg.App.ResetURL,
			BcryptCost:         jsonCfg.App.BcryptCost,
			Version:            jsonCfg.App.Version,
			DemoEmail:          jsonCfg.App.DemoEmail,
			DemoPassword:       jsonCfg.App.DemoPassword,
			LogLevel:           jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			AuthRateLimit:      jsonCfg.Server.AuthRateLimit,
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
		},
		Notifier: Notifier{
			BrokerURL:      jsonCfg.Notifier.BrokerURL,
			Exchange:       jsonCfg.Notifier.Exchange,
			PublishTimeout: time.Duration(jsonCfg.Notifier.PublishTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}
