package service

import (
	"fmt"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/notifier"
	"github.com/MKhiriev/insight-hunter/internal/store"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	ReportService        ReportService
	AppInfoService       AppInfoService
}

func NewServices(storages *store.Storages, n notifier.Notifier, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:          authService,
		PasswordResetService: NewPasswordResetService(storages.UserRepository, n, cfg.App, logger),
		ReportService:        NewReportService(),
		AppInfoService:       appInfoService,
	}, nil
}
