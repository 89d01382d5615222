package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/insight-hunter/internal/adapter"
	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// clientConfig is read from the environment and then overridden by flags.
type clientConfig struct {
	Adapter config.ClientAdapter
	Token   string `env:"CLIENT_TOKEN"`
}

func main() {
	log := logger.NewClientLogger("insight-client")

	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("error parsing environment")
	}

	cmd, err := parseArgs(os.Args[1:], &cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cmd.name == "build-info" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}
	serverAdapter.SetToken(cfg.Token)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, serverAdapter, cmd, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
