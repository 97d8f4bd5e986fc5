package http

import (
	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/utils"
)

// Handler exposes one storage backend over HTTP.
type Handler struct {
	storage adapter.Storage
	hasher  *utils.Hasher

	logger *logger.Logger
}

// NewHandler creates a Handler over storage. A non-empty hashKey makes the
// handler verify request digests and sign response bodies.
func NewHandler(storage adapter.Storage, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Bool("hashing", hashKey != "").Msg("http handler created")
	return &Handler{
		storage: storage,
		hasher:  utils.NewHasher(hashKey),
		logger:  logger,
	}
}
