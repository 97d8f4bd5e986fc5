// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service drives synchronisation between two vaults.
//
// The planner compares the item states of a local and a remote vault with
// the revision pairs recorded at the last sync and classifies every item;
// the syncer executes the plan by copying items between the vaults and
// recording the new agreements; the sync job runs the syncer periodically.
// Conflict policy lives here, never in the vault.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/keychain-vault/internal/vault"
	"github.com/MKhiriev/keychain-vault/models"
)

// ItemStore is the part of the vault contract the sync driver uses.
// *vault.Vault implements it.
type ItemStore interface {
	ListItemStates(ctx context.Context) ([]models.ItemState, error)
	FetchItem(ctx context.Context, uuid, revision string) (*vault.Item, error)
	GetContent(ctx context.Context, item *vault.Item) (models.ItemContent, error)
	SaveItem(ctx context.Context, item *vault.Item, source models.ChangeSource) error

	LastSyncRevisions(ctx context.Context, storeID string) (map[string]models.RevisionPair, error)
	SetLastSyncedRevision(ctx context.Context, item *vault.Item, storeID string, pair models.RevisionPair) error
}

// SyncPlanner classifies items of two replicas into sync actions.
type SyncPlanner interface {
	// BuildSyncPlan compares local and remote states with the pairs
	// recorded at the last sync (keyed by uuid). It has no side effects.
	BuildSyncPlan(ctx context.Context, local, remote []models.ItemState, last map[string]models.RevisionPair) (models.SyncPlan, error)
}

// Syncer reconciles a local vault with one remote replica.
type Syncer interface {
	Sync(ctx context.Context) (models.SyncResult, error)
}

// SyncJob runs a Syncer in the background.
type SyncJob interface {
	// Start stops any running job and syncs every interval until ctx is
	// cancelled or Stop is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the running job and waits for it to exit.
	Stop()
}
