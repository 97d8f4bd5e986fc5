package main

import (
	"fmt"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/handler/http"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/server"
	"github.com/MKhiriev/keychain-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("vfs-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("storage", cfg.Storage.Kind).
		Bool("hashing", cfg.HashKey != "").
		Msg("received configs")

	storage, err := adapter.Open(cfg.Storage, "", log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening storage")
	}

	srv, err := server.NewServer(http.NewHandler(storage, cfg.HashKey, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
