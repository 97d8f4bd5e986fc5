// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

func (cfg *SyncConfig) validate() error {
	if cfg.App.MasterPassword == "" || cfg.App.KDFIterations < 0 {
		return ErrInvalidAppConfigs
	}

	if err := cfg.Local.validate(); err != nil {
		return fmt.Errorf("local: %w", err)
	}
	if err := cfg.Remote.validate(); err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	if cfg.Sync.Interval < 0 {
		return ErrInvalidSyncConfigs
	}
	switch cfg.Sync.ConflictPolicy {
	case ConflictPolicyNewest, ConflictPolicyFail:
	default:
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.PoolSize < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	// serving a remote replica over http would only proxy it
	if cfg.Storage.Kind == StorageKindHTTP {
		return ErrInvalidStorageConfigs
	}
	return cfg.Storage.validate()
}

func (s Storage) validate() error {
	switch s.Kind {
	case StorageKindMemory:
		return nil
	case StorageKindFS:
		if s.Path == "" {
			return ErrInvalidStorageConfigs
		}
		return nil
	case StorageKindHTTP:
		if s.Address == "" || s.RequestTimeout < 0 {
			return ErrInvalidStorageConfigs
		}
		return nil
	default:
		return ErrInvalidStorageConfigs
	}
}
