package config

import "errors"

// Validation errors returned when a configuration view is incomplete or
// invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown storage kind or a kind
	// missing its path or address.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid vault-level settings (for
	// example, a missing master password).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidSyncConfigs indicates an invalid sync interval or conflict
	// policy.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidWorkerConfigs indicates invalid worker pool settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or a
	// negative timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
