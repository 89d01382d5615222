package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/handler"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/notifier"
	"github.com/MKhiriev/insight-hunter/internal/server"
	"github.com/MKhiriev/insight-hunter/internal/service"
	"github.com/MKhiriev/insight-hunter/internal/store"
	"github.com/MKhiriev/insight-hunter/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("insight-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log.SetLevel(cfg.App.LogLevel)

	if cfg.App.Version == "dev" && buildVersion != "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	n, err := newNotifier(cfg.Notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier")
	}
	defer n.Close()

	services, err := service.NewServices(store.NewStorages(db, log), n, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	log.Info().Str("address", cfg.Server.HTTPAddress).Str("dialect", db.Dialect()).Msg("starting server")
	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

// newNotifier publishes reset events to RabbitMQ when a broker is configured
// and only logs them otherwise.
func newNotifier(cfg config.Notifier, log *logger.Logger) (notifier.Notifier, error) {
	if cfg.BrokerURL == "" {
		log.Warn().Msg("no broker configured, password reset links will only be logged")
		return notifier.NewLogNotifier(log), nil
	}

	rabbit, err := notifier.NewRabbitMQNotifier(cfg, log)
	if err != nil {
		return nil, err
	}

	return rabbit, nil
}
