package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewVaultUUID returns a random identifier in the vault's format: 32
// uppercase hex characters without dashes.
func NewVaultUUID() string {
	id := uuid.New()
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}

// NewTraceID returns a time-ordered identifier for request tracing, falling
// back to a random one if the clock source fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
