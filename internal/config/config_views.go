package config

import (
	"fmt"
	"time"
)

// SyncConfig is the configuration view used by cmd/vault-sync.
type SyncConfig struct {
	App     App
	Local   Storage
	Remote  Storage
	DB      DB
	Sync    Sync
	Workers Workers
}

// ServerConfig is the configuration view used by cmd/vfs-server.
type ServerConfig struct {
	Server Server
	// Storage is the backend exposed over HTTP.
	Storage Storage
	HashKey string
}

// GetSyncConfig builds and validates the sync client view of the merged
// configuration, filling defaults for unset optional fields.
func GetSyncConfig() (*SyncConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	return cfg.SyncView()
}

// GetServerConfig builds and validates the storage server view of the
// merged configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	return cfg.ServerView()
}

// SyncView maps cfg onto a validated [SyncConfig].
func (cfg *StructuredConfig) SyncView() (*SyncConfig, error) {
	view := &SyncConfig{
		App:     cfg.App,
		Local:   cfg.Local,
		Remote:  cfg.Remote,
		DB:      cfg.DB,
		Sync:    cfg.Sync,
		Workers: cfg.Workers,
	}

	if view.App.KDFIterations == 0 {
		view.App.KDFIterations = DefaultKDFIterations
	}
	if view.Sync.StoreID == "" {
		view.Sync.StoreID = "remote"
	}
	if view.Sync.ConflictPolicy == "" {
		view.Sync.ConflictPolicy = ConflictPolicyNewest
	}
	for _, s := range []*Storage{&view.Local, &view.Remote} {
		if s.Kind == StorageKindHTTP && s.RequestTimeout == 0 {
			s.RequestTimeout = 15 * time.Second
		}
	}

	return view, view.validate()
}

// ServerView maps cfg onto a validated [ServerConfig].
func (cfg *StructuredConfig) ServerView() (*ServerConfig, error) {
	view := &ServerConfig{
		Server:  cfg.Server,
		Storage: cfg.Local,
		HashKey: cfg.App.HashKey,
	}

	if view.Server.ShutdownTimeout == 0 {
		view.Server.ShutdownTimeout = 10 * time.Second
	}

	return view, view.validate()
}
