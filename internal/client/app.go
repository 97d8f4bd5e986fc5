package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/service"
	"github.com/MKhiriev/keychain-vault/internal/store"
	"github.com/MKhiriev/keychain-vault/internal/vault"
	"github.com/MKhiriev/keychain-vault/internal/workers"
)

// App reconciles the local replica with the remote one.
type App struct {
	cfg *config.SyncConfig

	pool     *workers.Pool
	storages *store.Storages
	local    *vault.Vault
	remote   *vault.Vault
	syncer   service.Syncer
	job      service.SyncJob

	logger *logger.Logger
}

// NewApp opens and unlocks both replicas described by cfg. A replica
// without a vault gets a new one protected by the master password.
func NewApp(ctx context.Context, cfg *config.SyncConfig, log *logger.Logger) (*App, error) {
	policy, err := service.ParseConflictPolicy(cfg.Sync.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		pool:   workers.NewPool(cfg.Workers.PoolSize),
		logger: log,
	}

	if err = app.open(ctx); err != nil {
		app.Close()
		return nil, err
	}

	app.syncer = service.NewSyncer(app.local, app.remote, cfg.Sync.StoreID, policy, log)
	app.job = service.NewSyncJob(app.syncer, log)
	return app, nil
}

func (a *App) open(ctx context.Context) error {
	var err error
	if a.storages, err = store.NewStorages(ctx, a.cfg.DB, a.logger); err != nil {
		return fmt.Errorf("create sync metadata storage: %w", err)
	}

	localStorage, err := adapter.Open(a.cfg.Local, a.cfg.App.HashKey, a.logger)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}
	remoteStorage, err := adapter.Open(a.cfg.Remote, a.cfg.App.HashKey, a.logger)
	if err != nil {
		return fmt.Errorf("open remote storage: %w", err)
	}

	a.local, err = a.unlockOrCreate(ctx, localStorage, vault.Options{
		Pool:          a.pool,
		SyncRevisions: a.storages.SyncRevisions,
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("local vault: %w", err)
	}

	// sync metadata lives with the local replica only
	a.remote, err = a.unlockOrCreate(ctx, remoteStorage, vault.Options{
		Pool:   a.pool,
		Logger: a.logger,
	})
	if err != nil {
		return fmt.Errorf("remote vault: %w", err)
	}
	return nil
}

func (a *App) unlockOrCreate(ctx context.Context, storage adapter.Storage, opts vault.Options) (*vault.Vault, error) {
	v := vault.Open(storage, opts)

	err := v.Unlock(ctx, a.cfg.App.MasterPassword)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, vault.ErrInvalidVault) {
		return nil, err
	}

	created, createErr := vault.Create(ctx, storage, a.cfg.App.MasterPassword, a.cfg.App.PasswordHint, a.cfg.App.KDFIterations, opts)
	if errors.Is(createErr, vault.ErrVaultExists) {
		// a key file exists but is unreadable
		return nil, err
	}
	if createErr != nil {
		return nil, createErr
	}
	a.logger.Info().Msg("created new vault")
	return created, nil
}

// Run syncs once. With a positive sync interval it keeps syncing in the
// background until ctx is cancelled; a failed first run is then only
// logged.
func (a *App) Run(ctx context.Context) error {
	_, err := a.syncer.Sync(ctx)
	if a.cfg.Sync.Interval <= 0 {
		return err
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed")
	}

	a.job.Start(ctx, a.cfg.Sync.Interval)
	<-ctx.Done()
	a.job.Stop()
	return nil
}

// Close stops the sync job, forgets the keys and closes the metadata
// database. It is safe on a partially opened App.
func (a *App) Close() {
	var shutdown []workers.Worker
	if a.job != nil {
		shutdown = append(shutdown, workers.WorkerFunc(a.job.Stop))
	}
	for _, v := range []*vault.Vault{a.local, a.remote} {
		if v != nil {
			shutdown = append(shutdown, workers.WorkerFunc(v.Lock))
		}
	}
	shutdown = append(shutdown,
		workers.WorkerFunc(a.pool.Close),
		workers.WorkerFunc(func() {
			if err := a.storages.Close(); err != nil {
				a.logger.Err(err).Msg("close sync metadata storage")
			}
		}),
	)

	workers.NewWorkers(shutdown...).Run()
}
