// Command seed creates the demo account used by the dashboard. Running it
// again is harmless: an existing account is left untouched.
package main

import (
	"context"
	"time"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/notifier"
	"github.com/MKhiriev/insight-hunter/internal/service"
	"github.com/MKhiriev/insight-hunter/internal/store"
)

const seedTimeout = 30 * time.Second

func main() {
	log := logger.NewLogger("insight-seed")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log.SetLevel(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	services, err := service.NewServices(store.NewStorages(db, log), notifier.NewLogNotifier(log), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	user, err := services.AuthService.SeedDemoUser(ctx, cfg.App.DemoEmail, cfg.App.DemoPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("error seeding demo user")
	}

	log.Info().Str("user_id", user.UserID).Str("email", user.Email).Msg("demo user ready")
}
