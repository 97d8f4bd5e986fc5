package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/keychain-vault/internal/client"
	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/service"
	"github.com/MKhiriev/keychain-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("vault-sync")
	logBuildInfo(log)

	cfg, err := config.GetSyncConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init sync app error")
	}

	err = app.Run(ctx)
	app.Close()

	switch {
	case err == nil:
	case errors.Is(err, service.ErrConflict):
		log.Fatal().Err(err).Msg("replicas have conflicting changes")
	default:
		log.Fatal().Err(err).Msg("sync error")
	}
}

func logBuildInfo(log *logger.Logger) {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().
		Str("version", info.BuildVersion()).
		Str("date", info.BuildDate()).
		Str("commit", info.BuildCommit()).
		Msg("build info")
}
