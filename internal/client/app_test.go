package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/crypto"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/vault"
	"github.com/MKhiriev/keychain-vault/models"
)

func testConfig(t *testing.T) *config.SyncConfig {
	t.Helper()
	return &config.SyncConfig{
		App:     config.App{MasterPassword: "logMEin", PasswordHint: "usual one", KDFIterations: 100},
		Local:   config.Storage{Kind: config.StorageKindFS, Path: t.TempDir()},
		Remote:  config.Storage{Kind: config.StorageKindFS, Path: t.TempDir()},
		Sync:    config.Sync{StoreID: "remote", ConflictPolicy: config.ConflictPolicyNewest},
		Workers: config.Workers{PoolSize: 2},
	}
}

func TestApp_CreatesVaultsAndSyncs(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	app, err := NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)

	item := vault.NewItem(models.TypeLogin, "Facebook")
	item.SetContent(models.ItemContent{URLs: []models.ItemURL{{Label: "website", URL: "facebook.com"}}})
	require.NoError(t, app.local.SaveItem(ctx, item, models.SourceLocal))

	require.NoError(t, app.Run(ctx))

	pushed, err := app.remote.LoadItem(ctx, item.UUID(), "")
	require.NoError(t, err)
	assert.Equal(t, "Facebook", pushed.Title)

	hint, err := app.remote.PasswordHint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "usual one", hint)
	app.Close()

	// Reopening unlocks the existing vaults instead of creating new ones.
	reopened, err := NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.local.LoadItem(ctx, item.UUID(), "")
	require.NoError(t, err)
	assert.Equal(t, item.Revision(), got.Revision())
}

func TestApp_WrongPassword(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	app, err := NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	app.Close()

	cfg.App.MasterPassword = "not it"
	_, err = NewApp(ctx, cfg, logger.Nop())
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

func TestApp_UnknownConflictPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sync.ConflictPolicy = "coinflip"

	_, err := NewApp(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunPeriodicallyUntilCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sync.Interval = 10 * time.Millisecond

	app, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_CloseTwice(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logger.Nop())
	require.NoError(t, err)

	app.Close()
	assert.NotPanics(t, app.Close)
}
