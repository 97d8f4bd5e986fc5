// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault is the item store: an encrypted set of items rooted at a
// byte-storage adapter and unlocked with a master password.
//
// A Vault owns one key agent. Unlock derives a password key per stored key
// generation and installs every generation that validates; content is
// encrypted and decrypted with those keys only. Items are saved with a
// content-addressed revision so replicas holding the same state agree on
// it, and removal writes a tombstone instead of deleting the file.
//
// Layout under the storage root:
//
//	data/default/encryptionKeys.js          wrapped key generations
//	data/default/.password.hint             plaintext hint
//	data/default/contents.js                overview index (a cache)
//	data/default/<UUID>.1password           current item file
//	data/default/history/<REV>.1password    every saved revision
package vault

import (
	"sync"
	"time"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/crypto"
	"github.com/MKhiriev/keychain-vault/internal/keyagent"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/store"
	"github.com/MKhiriev/keychain-vault/internal/validators"
	"github.com/MKhiriev/keychain-vault/internal/workers"
)

// Options configures a Vault. Every field is optional.
type Options struct {
	// Codec defaults to crypto.NewCodec().
	Codec crypto.Codec
	// Pool runs key derivation; nil derives on the calling goroutine.
	Pool *workers.Pool
	// SyncRevisions defaults to an in-memory repository.
	SyncRevisions store.SyncRevisionRepository
	// Logger defaults to a no-op logger.
	Logger *logger.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Vault is an item store over one storage adapter.
type Vault struct {
	storage       adapter.Storage
	codec         crypto.Codec
	agent         *keyagent.Agent
	syncRevisions store.SyncRevisionRepository
	itemValidator validators.Validator
	keyValidator  validators.Validator
	logger        *logger.Logger
	now           func() time.Time

	mu           sync.RWMutex
	defaultKeyID string

	// indexMu serialises read-modify-write cycles of the index.
	indexMu sync.Mutex
}

// Open returns a locked vault over storage. Nothing is read until Unlock.
func Open(storage adapter.Storage, opts Options) *Vault {
	if opts.Codec == nil {
		opts.Codec = crypto.NewCodec()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.SyncRevisions == nil {
		opts.SyncRevisions = store.NewMemorySyncRevisionRepository()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Vault{
		storage:       storage,
		codec:         opts.Codec,
		agent:         keyagent.New(opts.Codec, opts.Pool, opts.Logger),
		syncRevisions: opts.SyncRevisions,
		itemValidator: validators.NewItemValidator(),
		keyValidator:  validators.NewKeyValidator(),
		logger:        opts.Logger,
		now:           opts.Clock,
	}
}

// Lock forgets every held key.
func (v *Vault) Lock() {
	v.agent.Forget()

	v.mu.Lock()
	v.defaultKeyID = ""
	v.mu.Unlock()

	v.logger.Debug().Msg("vault locked")
}

// IsLocked reports whether the vault holds no keys.
func (v *Vault) IsLocked() bool {
	return v.agent.State() != keyagent.Unlocked
}

// KeyIDs returns the identifiers of the keys currently held.
func (v *Vault) KeyIDs() []string {
	return v.agent.KeyIDs()
}

// DefaultKeyID returns the identifier new items are encrypted with, or ""
// while locked.
func (v *Vault) DefaultKeyID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.defaultKeyID
}

func (v *Vault) setDefaultKeyID(id string) {
	v.mu.Lock()
	v.defaultKeyID = id
	v.mu.Unlock()
}
