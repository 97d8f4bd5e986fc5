package service

import (
	"context"
	"sort"

	"github.com/MKhiriev/keychain-vault/models"
)

// syncPlanner is the concrete implementation of SyncPlanner. It compares
// states in memory and needs no storage or logger.
type syncPlanner struct{}

// NewSyncPlanner constructs a SyncPlanner ready for use.
func NewSyncPlanner() SyncPlanner {
	return &syncPlanner{}
}

// BuildSyncPlan implements SyncPlanner.
//
// It indexes both sides by uuid and makes two passes:
//
//   - Pass 1 (over remote): items present on the remote, with or without a
//     local copy.
//   - Pass 2 (over local): items that exist only locally.
//
// An item is considered changed on a side when its revision differs from
// the one recorded for that side at the last sync. Actions in every group
// are ordered by uuid.
func (s *syncPlanner) BuildSyncPlan(
	ctx context.Context,
	local, remote []models.ItemState,
	last map[string]models.RevisionPair,
) (models.SyncPlan, error) {
	var plan models.SyncPlan

	localIndex := make(map[string]models.ItemState, len(local))
	for _, ls := range local {
		localIndex[ls.UUID] = ls
	}

	remoteIndex := make(map[string]models.ItemState, len(remote))
	for _, rs := range remote {
		remoteIndex[rs.UUID] = rs
	}

	// ── Pass 1: iterate over remote items ───────────────────────────────────
	for _, rs := range remote {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		pair := last[rs.UUID]
		ls, existsLocally := localIndex[rs.UUID]
		action := models.SyncAction{UUID: rs.UUID, Local: ls, Remote: rs, Last: pair}

		if !existsLocally {
			// A tombstone nobody here ever knew about carries nothing to pull.
			if !rs.Deleted || !pair.IsZero() {
				plan.Pull = append(plan.Pull, action)
			}
			continue
		}

		if ls.Revision == rs.Revision {
			if pair.Local != ls.Revision || pair.External != rs.Revision {
				plan.Record = append(plan.Record, action)
			}
			continue
		}

		localChanged := pair.IsZero() || ls.Revision != pair.Local
		remoteChanged := pair.IsZero() || rs.Revision != pair.External

		switch {
		case localChanged && remoteChanged:
			plan.Conflicts = append(plan.Conflicts, action)
		case remoteChanged:
			plan.Pull = append(plan.Pull, action)
		case localChanged:
			plan.Push = append(plan.Push, action)
		}
		// Neither side moved since an agreement on differing revisions:
		// already in sync.
	}

	// ── Pass 2: find local-only items ───────────────────────────────────────
	for _, ls := range local {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}

		if _, existsRemotely := remoteIndex[ls.UUID]; existsRemotely {
			continue
		}

		pair := last[ls.UUID]
		if ls.Deleted && pair.IsZero() {
			// Created and removed before the first sync.
			continue
		}
		plan.Push = append(plan.Push, models.SyncAction{UUID: ls.UUID, Local: ls, Last: pair})
	}

	for _, group := range [][]models.SyncAction{plan.Pull, plan.Push, plan.Conflicts, plan.Record} {
		sort.Slice(group, func(i, j int) bool { return group[i].UUID < group[j].UUID })
	}

	return plan, nil
}
