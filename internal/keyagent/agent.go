// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keyagent holds unwrapped master keys in memory for the lifetime of
// an unlocked vault.
//
// An Agent is the only place raw key material lives. Vaults ask it to derive
// password keys (on a worker pool), to unwrap and validate key generations,
// and to encrypt or decrypt item blobs with a key identified by its ID. The
// key table belongs to the Agent instance; two agents never share keys.
package keyagent

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/keychain-vault/internal/crypto"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/workers"
)

// UnlockFunc collects validated keys for Unlock, keyed by identifier.
type UnlockFunc func(ctx context.Context) (map[string][]byte, error)

// Agent is the in-memory custodian of unwrapped keys.
type Agent struct {
	codec  crypto.Codec
	pool   *workers.Pool
	logger *logger.Logger

	mu    sync.RWMutex
	state State
	keys  map[string][]byte
}

// New creates a locked Agent. Key derivation is dispatched to pool; a nil
// pool derives on the calling goroutine.
func New(codec crypto.Codec, pool *workers.Pool, log *logger.Logger) *Agent {
	if log == nil {
		log = logger.Nop()
	}
	return &Agent{
		codec:  codec,
		pool:   pool,
		logger: log,
		state:  Locked,
		keys:   make(map[string][]byte),
	}
}

// State returns the current lifecycle state.
func (a *Agent) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// DeriveKey runs the codec KDF on the worker pool and waits for it.
func (a *Agent) DeriveKey(ctx context.Context, password string, salt []byte, iterations int) ([]byte, error) {
	if a.pool == nil {
		return a.codec.DeriveKey(password, salt, iterations)
	}

	type result struct {
		key []byte
		err error
	}
	out := make(chan result, 1)

	err := a.pool.Submit(ctx, workers.WorkerFunc(func() {
		key, err := a.codec.DeriveKey(password, salt, iterations)
		out <- result{key: key, err: err}
	}))
	if err != nil {
		return nil, fmt.Errorf("dispatch key derivation: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-out:
		return r.key, r.err
	}
}

// DecryptKey unwraps a key generation with passwordKey and checks it against
// its validation block. A key that does not reproduce validation is never
// returned.
func (a *Agent) DecryptKey(ctx context.Context, passwordKey, wrapped, validation []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	raw, err := a.codec.DecryptItemBlob(passwordKey, wrapped)
	if err != nil {
		log.Debug().Err(crypto.DecryptionCause(err)).Msg("unwrap key failed")
		return nil, err
	}

	salt, err := crypto.BlobSalt(validation)
	if err != nil {
		log.Debug().Err(err).Msg("malformed validation block")
		return nil, crypto.ErrDecryption
	}

	check, err := a.codec.SealWithSalt(raw, raw, salt)
	if err != nil {
		log.Debug().Err(err).Msg("reseal candidate key failed")
		return nil, crypto.ErrDecryption
	}

	if subtle.ConstantTimeCompare(check, validation) != 1 {
		log.Debug().Msg("validation block mismatch")
		return nil, crypto.ErrDecryption
	}
	return raw, nil
}

// WrapKey encrypts raw under passwordKey and builds its validation block.
func (a *Agent) WrapKey(passwordKey, raw []byte) (wrapped, validation []byte, err error) {
	wrapped, err = a.codec.EncryptItemBlob(passwordKey, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("wrap key: %w", err)
	}

	salt, err := a.codec.GenerateSalt()
	if err != nil {
		return nil, nil, fmt.Errorf("wrap key: %w", err)
	}

	validation, err = a.codec.SealWithSalt(raw, raw, salt)
	if err != nil {
		return nil, nil, fmt.Errorf("build validation block: %w", err)
	}
	return wrapped, validation, nil
}

// Unlock runs fn and installs every key it returns in one step. On failure
// the agent returns to the state it had before the call.
func (a *Agent) Unlock(ctx context.Context, fn UnlockFunc) error {
	a.mu.Lock()
	if a.state == Unlocking {
		a.mu.Unlock()
		return ErrUnlockInProgress
	}
	prev := a.state
	a.state = Unlocking
	a.mu.Unlock()

	keys, err := fn(ctx)
	if err == nil && len(keys) == 0 {
		err = ErrNoKeys
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.state = prev
		return err
	}

	for id, raw := range keys {
		a.keys[id] = slices.Clone(raw)
	}
	a.state = Unlocked

	a.logger.Debug().Int("keys", len(a.keys)).Msg("key agent unlocked")
	return nil
}

// AddKey registers raw under id, replacing any key with the same id.
func (a *Agent) AddKey(id string, raw []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.keys[id] = slices.Clone(raw)
	if a.state == Locked {
		a.state = Unlocked
	}
}

// HasKey reports whether a key with the given id is held.
func (a *Agent) HasKey(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.keys[id]
	return ok
}

// KeyIDs returns the identifiers of all held keys, sorted.
func (a *Agent) KeyIDs() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]string, 0, len(a.keys))
	for id := range a.keys {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Encrypt seals plaintext with the key identified by keyID.
func (a *Agent) Encrypt(keyID string, plaintext []byte) ([]byte, error) {
	key, err := a.key(keyID)
	if err != nil {
		return nil, err
	}
	return a.codec.EncryptItemBlob(key, plaintext)
}

// Decrypt opens blob with the key identified by keyID.
func (a *Agent) Decrypt(keyID string, blob []byte) ([]byte, error) {
	key, err := a.key(keyID)
	if err != nil {
		return nil, err
	}
	return a.codec.DecryptItemBlob(key, blob)
}

// Forget drops every held key and locks the agent. The old buffers are
// zeroed, although copies made by the runtime may survive.
func (a *Agent) Forget() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, raw := range a.keys {
		clear(raw)
		delete(a.keys, id)
	}
	a.state = Locked
}

func (a *Agent) key(id string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	key, ok := a.keys[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	return slices.Clone(key), nil
}
