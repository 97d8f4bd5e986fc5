package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/logger"
)

// Storages groups the sync metadata repositories into a single value that
// can be passed to the vault.
type Storages struct {
	// SyncRevisions records per-store revision agreements.
	SyncRevisions SyncRevisionRepository

	db *DB
}

// NewStorages initialises the sync metadata layer:
//  1. with an empty cfg.DSN the metadata lives in memory;
//  2. otherwise an SQLite connection is opened on cfg.DSN, creating the
//     database file if it does not yet exist, and pending migrations are
//     applied.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	if cfg.DSN == "" {
		log.Info().Msg("keeping sync metadata in memory")
		return &Storages{SyncRevisions: NewMemorySyncRevisionRepository()}, nil
	}

	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		SyncRevisions: NewSyncRevisionRepository(db, log),
		db:            db,
	}, nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
