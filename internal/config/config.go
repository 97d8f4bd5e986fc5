// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage kinds accepted in [Storage.Kind].
const (
	StorageKindFS     = "fs"
	StorageKindMemory = "memory"
	StorageKindHTTP   = "http"
)

// Conflict policies accepted in [Sync.ConflictPolicy].
const (
	ConflictPolicyNewest = "newest"
	ConflictPolicyFail   = "fail"
)

// DefaultKDFIterations is used for new vaults and key generations when no
// iteration count is configured.
const DefaultKDFIterations = 100_000

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from
// command-line flags, environment variables and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds vault-level settings: the master password, KDF cost and
	// the transport integrity key.
	App App `envPrefix:"APP_"`

	// Local is the storage replica the sync client treats as its own, and
	// the replica the storage server exposes.
	Local Storage `envPrefix:"LOCAL_"`

	// Remote is the replica the sync client reconciles Local with.
	Remote Storage `envPrefix:"REMOTE_"`

	// DB holds the sync metadata database settings.
	DB DB `envPrefix:"DB_"`

	// Server holds network address and timeout settings for the storage
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Sync holds settings of the periodic sync job.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds settings of the key derivation worker pool.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds vault-level configuration values.
type App struct {
	// MasterPassword unlocks both replicas. It is only read from the
	// environment or the JSON file, never from flags.
	// Env: APP_MASTER_PASSWORD
	MasterPassword string `env:"MASTER_PASSWORD"`

	// PasswordHint is stored in plaintext next to a newly created vault.
	// Env: APP_PASSWORD_HINT
	PasswordHint string `env:"PASSWORD_HINT"`

	// KDFIterations is the PBKDF2 iteration count for new key generations.
	// Env: APP_KDF_ITERATIONS
	KDFIterations int `env:"KDF_ITERATIONS"`

	// HashKey is the HMAC key used for payload integrity between the http
	// storage adapter and the storage server.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`
}

// Storage selects and configures one byte-storage backend.
type Storage struct {
	// Kind is one of "fs", "memory" or "http".
	// Env: LOCAL_KIND / REMOTE_KIND
	Kind string `env:"KIND"`

	// Path is the root directory of an "fs" storage.
	// Env: LOCAL_PATH / REMOTE_PATH
	Path string `env:"PATH"`

	// Address is the base URL of an "http" storage.
	// Env: LOCAL_ADDRESS / REMOTE_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single request of an "http" storage.
	// Env: LOCAL_REQUEST_TIMEOUT / REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the sync metadata database.
type DB struct {
	// DSN is the SQLite data source name. Empty keeps sync metadata in
	// memory for the lifetime of the process.
	// Env: DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the storage server.
type Server struct {
	// HTTPAddress is the TCP address the server listens on, in "host:port"
	// format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Sync holds settings of the sync driver.
type Sync struct {
	// Interval between two sync runs. Zero runs a single sync and exits.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// StoreID names the remote replica in the sync metadata.
	// Env: SYNC_STORE_ID
	StoreID string `env:"STORE_ID"`

	// ConflictPolicy is "newest" or "fail".
	// Env: SYNC_CONFLICT_POLICY
	ConflictPolicy string `env:"CONFLICT_POLICY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PoolSize is the number of key derivation goroutines. Zero means one
	// per CPU.
	// Env: WORKERS_POOL_SIZE
	PoolSize int `env:"POOL_SIZE"`
}

// GetStructuredConfig loads and merges the configuration from all sources.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(commandLineArgs()).
		withEnv().
		withJSON().
		build()
}
