// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/vault"
	"github.com/MKhiriev/keychain-vault/models"
)

// syncer is the concrete implementation of Syncer.
type syncer struct {
	local   ItemStore
	remote  ItemStore
	storeID string
	policy  ConflictPolicy
	planner SyncPlanner
	logger  *logger.Logger
}

// NewSyncer constructs a Syncer that reconciles local with remote. storeID
// names the remote replica in the local sync metadata. Both stores must be
// unlocked before Sync is called.
func NewSyncer(local, remote ItemStore, storeID string, policy ConflictPolicy, log *logger.Logger) Syncer {
	if log == nil {
		log = logger.Nop()
	}
	return &syncer{
		local:   local,
		remote:  remote,
		storeID: storeID,
		policy:  policy,
		planner: NewSyncPlanner(),
		logger:  log,
	}
}

// Sync implements Syncer.
//
// It builds a plan from the current item states of both replicas and the
// revision pairs recorded for storeID, then:
//
//  1. copies remote revisions that only changed remotely;
//  2. copies local revisions that only changed locally;
//  3. records agreements for items that already match;
//  4. resolves conflicts according to the policy.
//
// Every completed copy records the new pair immediately, so an interrupted
// run resumes where it stopped. With FailOnConflict the conflicting items
// stay untouched and the returned error wraps ErrConflict.
func (s *syncer) Sync(ctx context.Context) (models.SyncResult, error) {
	var result models.SyncResult
	log := s.logger.With().Str("store_id", s.storeID).Logger()

	localStates, err := s.local.ListItemStates(ctx)
	if err != nil {
		return result, fmt.Errorf("list local items: %w", err)
	}
	remoteStates, err := s.remote.ListItemStates(ctx)
	if err != nil {
		return result, fmt.Errorf("list remote items: %w", err)
	}
	last, err := s.local.LastSyncRevisions(ctx, s.storeID)
	if err != nil {
		return result, fmt.Errorf("read sync metadata: %w", err)
	}

	plan, err := s.planner.BuildSyncPlan(ctx, localStates, remoteStates, last)
	if err != nil {
		return result, err
	}
	if plan.Empty() {
		log.Debug().Msg("replicas already in sync")
		return result, nil
	}

	for _, action := range plan.Pull {
		if err = s.pull(ctx, action.UUID, action.Remote.Revision); err != nil {
			return result, err
		}
		result.Pulled++
	}

	for _, action := range plan.Push {
		if err = s.push(ctx, action.UUID, action.Local.Revision); err != nil {
			return result, err
		}
		result.Pushed++
	}

	for _, action := range plan.Record {
		item, fetchErr := s.local.FetchItem(ctx, action.UUID, action.Local.Revision)
		if fetchErr != nil {
			return result, fmt.Errorf("record %s: %w", action.UUID, fetchErr)
		}
		pair := models.RevisionPair{Local: action.Local.Revision, External: action.Remote.Revision}
		if err = s.record(ctx, item, pair); err != nil {
			return result, err
		}
		result.Recorded++
	}

	if len(plan.Conflicts) > 0 && s.policy == FailOnConflict {
		for _, action := range plan.Conflicts {
			result.Conflicts = append(result.Conflicts, action.UUID)
		}
		log.Warn().Strs("uuids", result.Conflicts).Msg("conflicting items left untouched")
		return result, fmt.Errorf("%w: %s", ErrConflict, strings.Join(result.Conflicts, ", "))
	}

	for _, action := range plan.Conflicts {
		if err = s.resolve(ctx, action); err != nil {
			return result, err
		}
		result.Resolved++
	}

	log.Info().
		Int("pulled", result.Pulled).
		Int("pushed", result.Pushed).
		Int("resolved", result.Resolved).
		Int("recorded", result.Recorded).
		Msg("sync finished")
	return result, nil
}

func (s *syncer) pull(ctx context.Context, uuid, revision string) error {
	item, err := copyItem(ctx, s.remote, s.local, uuid, revision)
	if err != nil {
		return fmt.Errorf("pull %s: %w", uuid, err)
	}
	return s.record(ctx, item, models.RevisionPair{Local: item.Revision(), External: revision})
}

func (s *syncer) push(ctx context.Context, uuid, revision string) error {
	item, err := copyItem(ctx, s.local, s.remote, uuid, revision)
	if err != nil {
		return fmt.Errorf("push %s: %w", uuid, err)
	}
	return s.record(ctx, item, models.RevisionPair{Local: revision, External: item.Revision()})
}

// resolve keeps the revision with the later updatedAt. Ties go to the
// remote so that every replica settles on the same winner.
func (s *syncer) resolve(ctx context.Context, action models.SyncAction) error {
	localItem, err := s.local.FetchItem(ctx, action.UUID, action.Local.Revision)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", action.UUID, err)
	}
	remoteItem, err := s.remote.FetchItem(ctx, action.UUID, action.Remote.Revision)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", action.UUID, err)
	}

	event := s.logger.Info().
		Str("uuid", action.UUID).
		Str("local_revision", action.Local.Revision).
		Str("remote_revision", action.Remote.Revision)

	if localItem.UpdatedAt().After(remoteItem.UpdatedAt()) {
		event.Str("winner", "local").Msg("conflict resolved")
		return s.push(ctx, action.UUID, action.Local.Revision)
	}
	event.Str("winner", "remote").Msg("conflict resolved")
	return s.pull(ctx, action.UUID, action.Remote.Revision)
}

func (s *syncer) record(ctx context.Context, item *vault.Item, pair models.RevisionPair) error {
	if err := s.local.SetLastSyncedRevision(ctx, item, s.storeID, pair); err != nil {
		return fmt.Errorf("record %s: %w", item.UUID(), err)
	}
	return nil
}

// copyItem saves one revision of src into dst as a sync copy and returns
// the saved item. Content is decrypted with src keys and re-encrypted by dst.
func copyItem(ctx context.Context, src, dst ItemStore, uuid, revision string) (*vault.Item, error) {
	item, err := src.FetchItem(ctx, uuid, revision)
	if err != nil {
		return nil, err
	}
	if !item.IsTombstone() {
		if _, err = src.GetContent(ctx, item); err != nil {
			return nil, err
		}
	}

	copied := item.Clone()
	if err = dst.SaveItem(ctx, copied, models.SourceSync); err != nil {
		return nil, err
	}
	return copied, nil
}
