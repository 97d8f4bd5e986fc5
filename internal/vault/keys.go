package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/crypto"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/utils"
	"github.com/MKhiriev/keychain-vault/models"
)

// Create initialises an empty vault on storage with one key generation
// protected by password, and returns it unlocked.
func Create(ctx context.Context, storage adapter.Storage, password, hint string, iterations int, opts Options) (*Vault, error) {
	v := Open(storage, opts)
	log := logger.FromContext(ctx)

	if _, err := storage.Read(ctx, keyFilePath); err == nil {
		return nil, ErrVaultExists
	} else if !errors.Is(err, adapter.ErrNotFound) {
		return nil, fmt.Errorf("check key file: %w", err)
	}

	record, raw, err := v.newGeneration(ctx, password, iterations)
	if err != nil {
		return nil, err
	}

	if err = storage.Write(ctx, hintFilePath, []byte(hint)); err != nil {
		return nil, fmt.Errorf("write password hint: %w", err)
	}
	if err = v.writeIndex(ctx, nil); err != nil {
		return nil, err
	}
	// the key file marks the vault as existing, so it goes last
	file := models.KeyFile{List: []models.KeyRecord{record}, Default: record.Identifier}
	if err = v.writeKeyFile(ctx, file); err != nil {
		return nil, err
	}

	v.agent.AddKey(record.Identifier, raw)
	v.setDefaultKeyID(record.Identifier)

	log.Info().
		Str("func", "vault.Create").
		Str("key_id", record.Identifier).
		Int("iterations", iterations).
		Msg("vault created")
	return v, nil
}

// Unlock derives a password key for every stored generation and installs
// all generations that validate. It fails with crypto.ErrDecryption when
// none does. Unlock never writes to storage.
func (v *Vault) Unlock(ctx context.Context, password string) error {
	log := logger.FromContext(ctx)

	file, err := v.readKeyFile(ctx)
	if err != nil {
		return err
	}

	err = v.agent.Unlock(ctx, func(ctx context.Context) (map[string][]byte, error) {
		keys, err := v.openGenerations(ctx, password, file.List)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, crypto.ErrDecryption
		}
		return keys, nil
	})
	if err != nil {
		log.Debug().Err(err).Str("func", "vault.Unlock").Msg("unlock failed")
		return err
	}

	v.setDefaultKeyID(file.Default)
	log.Info().
		Str("func", "vault.Unlock").
		Int("generations", len(file.List)).
		Int("unlocked", len(v.agent.KeyIDs())).
		Msg("vault unlocked")
	return nil
}

// openGenerations returns the raw keys of every record that validates under
// password. Records are tried concurrently; a wrong password for one record
// is not an error.
func (v *Vault) openGenerations(ctx context.Context, password string, records []models.KeyRecord) (map[string][]byte, error) {
	var (
		mu   sync.Mutex
		keys = make(map[string][]byte)
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, record := range records {
		g.Go(func() error {
			raw, err := v.openGeneration(gctx, password, record)
			if errors.Is(err, crypto.ErrDecryption) || errors.Is(err, crypto.ErrValidation) {
				logger.FromContext(ctx).Debug().
					Str("func", "vault.openGenerations").
					Str("key_id", record.Identifier).
					Msg("key generation does not validate")
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			keys[record.Identifier] = raw
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (v *Vault) openGeneration(ctx context.Context, password string, record models.KeyRecord) ([]byte, error) {
	passwordKey, err := v.agent.DeriveKey(ctx, password, record.Salt, record.Iterations)
	if err != nil {
		return nil, err
	}
	return v.agent.DecryptKey(ctx, passwordKey, record.Data, record.Validation)
}

// newGeneration creates a fresh master key wrapped under password.
func (v *Vault) newGeneration(ctx context.Context, password string, iterations int) (models.KeyRecord, []byte, error) {
	raw, err := v.codec.GenerateKey()
	if err != nil {
		return models.KeyRecord{}, nil, err
	}

	record, err := v.wrapGeneration(ctx, utils.NewVaultUUID(), raw, password, iterations)
	if err != nil {
		return models.KeyRecord{}, nil, err
	}
	return record, raw, nil
}

// wrapGeneration wraps raw under a key derived from password with a fresh
// salt.
func (v *Vault) wrapGeneration(ctx context.Context, id string, raw []byte, password string, iterations int) (models.KeyRecord, error) {
	salt, err := v.codec.GenerateSalt()
	if err != nil {
		return models.KeyRecord{}, err
	}

	passwordKey, err := v.agent.DeriveKey(ctx, password, salt, iterations)
	if err != nil {
		return models.KeyRecord{}, fmt.Errorf("derive password key: %w", err)
	}

	wrapped, validation, err := v.agent.WrapKey(passwordKey, raw)
	if err != nil {
		return models.KeyRecord{}, err
	}

	return models.KeyRecord{
		Identifier: id,
		Level:      models.DefaultSecurityLevel,
		Data:       wrapped,
		Validation: validation,
		Salt:       salt,
		Iterations: iterations,
	}, nil
}

// AddKeyGeneration creates a new key generation under password and makes it
// the default for new items. password must validate at least one existing
// generation. It returns the new key identifier.
func (v *Vault) AddKeyGeneration(ctx context.Context, password string, iterations int) (string, error) {
	log := logger.FromContext(ctx)

	file, err := v.readKeyFile(ctx)
	if err != nil {
		return "", err
	}

	existing, err := v.openGenerations(ctx, password, file.List)
	if err != nil {
		return "", err
	}
	if len(existing) == 0 {
		return "", crypto.ErrDecryption
	}

	record, raw, err := v.newGeneration(ctx, password, iterations)
	if err != nil {
		return "", err
	}

	file.List = append(file.List, record)
	file.Default = record.Identifier
	if err = v.writeKeyFile(ctx, file); err != nil {
		return "", err
	}

	for id, key := range existing {
		v.agent.AddKey(id, key)
	}
	v.agent.AddKey(record.Identifier, raw)
	v.setDefaultKeyID(record.Identifier)

	log.Info().Str("func", "vault.AddKeyGeneration").Str("key_id", record.Identifier).Msg("key generation added")
	return record.Identifier, nil
}

// ChangePassword re-wraps every generation that validates under oldPassword
// with a key derived from newPassword. Generations that do not validate are
// kept as they are. Raw keys do not change, so items are not re-encrypted.
func (v *Vault) ChangePassword(ctx context.Context, oldPassword, newPassword string, iterations int) error {
	log := logger.FromContext(ctx)

	file, err := v.readKeyFile(ctx)
	if err != nil {
		return err
	}

	keys, err := v.openGenerations(ctx, oldPassword, file.List)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return crypto.ErrDecryption
	}

	for i, record := range file.List {
		raw, ok := keys[record.Identifier]
		if !ok {
			continue
		}
		rewrapped, err := v.wrapGeneration(ctx, record.Identifier, raw, newPassword, iterations)
		if err != nil {
			return err
		}
		rewrapped.Level = record.Level
		file.List[i] = rewrapped
	}

	if err = v.writeKeyFile(ctx, file); err != nil {
		return err
	}

	log.Info().Str("func", "vault.ChangePassword").Int("rewrapped", len(keys)).Msg("password changed")
	return nil
}

// PasswordHint returns the plaintext hint, or "" if the vault has none.
func (v *Vault) PasswordHint(ctx context.Context) (string, error) {
	data, err := v.storage.Read(ctx, hintFilePath)
	if errors.Is(err, adapter.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read password hint: %w", err)
	}
	return string(data), nil
}

// SetPasswordHint replaces the plaintext hint.
func (v *Vault) SetPasswordHint(ctx context.Context, hint string) error {
	if err := v.storage.Write(ctx, hintFilePath, []byte(hint)); err != nil {
		return fmt.Errorf("write password hint: %w", err)
	}
	return nil
}

func (v *Vault) readKeyFile(ctx context.Context) (models.KeyFile, error) {
	data, err := v.storage.Read(ctx, keyFilePath)
	if errors.Is(err, adapter.ErrNotFound) {
		return models.KeyFile{}, fmt.Errorf("%w: no key file", ErrInvalidVault)
	}
	if err != nil {
		return models.KeyFile{}, fmt.Errorf("read key file: %w", err)
	}

	var file models.KeyFile
	if err = json.Unmarshal(data, &file); err != nil {
		return models.KeyFile{}, fmt.Errorf("%w: decode key file: %w", ErrInvalidVault, err)
	}
	if err = v.keyValidator.Validate(ctx, file); err != nil {
		return models.KeyFile{}, fmt.Errorf("%w: %w", ErrInvalidVault, err)
	}
	return file, nil
}

func (v *Vault) writeKeyFile(ctx context.Context, file models.KeyFile) error {
	if err := v.keyValidator.Validate(ctx, file); err != nil {
		return err
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode key file: %w", err)
	}
	if err = v.storage.Write(ctx, keyFilePath, data); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	return nil
}
