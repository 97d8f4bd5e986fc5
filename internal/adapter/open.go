package adapter

import (
	"fmt"

	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/logger"
)

// Open constructs the [Storage] variant selected by cfg.Kind. hashKey is
// only used by the http variant.
func Open(cfg config.Storage, hashKey string, log *logger.Logger) (Storage, error) {
	switch cfg.Kind {
	case config.StorageKindFS:
		return NewFSStorage(cfg.Path, log)
	case config.StorageKindMemory:
		return NewMemoryStorage(), nil
	case config.StorageKindHTTP:
		return NewHTTPStorage(cfg, hashKey, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
