package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keychain-vault/models"
)

func live(uuid, rev string) models.ItemState {
	return models.ItemState{UUID: uuid, Revision: rev}
}

func tomb(uuid, rev string) models.ItemState {
	return models.ItemState{UUID: uuid, Revision: rev, Deleted: true}
}

func uuids(actions []models.SyncAction) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.UUID)
	}
	return out
}

func TestBuildSyncPlan(t *testing.T) {
	tests := []struct {
		name      string
		local     []models.ItemState
		remote    []models.ItemState
		last      map[string]models.RevisionPair
		pull      []string
		push      []string
		conflicts []string
		record    []string
	}{
		{
			name: "empty replicas",
		},
		{
			name:   "remote only item is pulled",
			remote: []models.ItemState{live("A", "r1")},
			pull:   []string{"A"},
		},
		{
			name:  "local only item is pushed",
			local: []models.ItemState{live("A", "r1")},
			push:  []string{"A"},
		},
		{
			name:   "unknown remote tombstone is skipped",
			remote: []models.ItemState{tomb("A", "r1")},
		},
		{
			name:  "unknown local tombstone is skipped",
			local: []models.ItemState{tomb("A", "r1")},
		},
		{
			name:   "known remote tombstone is pulled",
			remote: []models.ItemState{tomb("A", "r2")},
			last:   map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			pull:   []string{"A"},
		},
		{
			name:   "in sync and recorded",
			local:  []models.ItemState{live("A", "r1")},
			remote: []models.ItemState{live("A", "r1")},
			last:   map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
		},
		{
			name:   "equal but never recorded",
			local:  []models.ItemState{live("A", "r1")},
			remote: []models.ItemState{live("A", "r1")},
			record: []string{"A"},
		},
		{
			name:   "both moved to the same revision",
			local:  []models.ItemState{live("A", "r2")},
			remote: []models.ItemState{live("A", "r2")},
			last:   map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			record: []string{"A"},
		},
		{
			name:   "remote changed",
			local:  []models.ItemState{live("A", "r1")},
			remote: []models.ItemState{live("A", "r2")},
			last:   map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			pull:   []string{"A"},
		},
		{
			name:   "agreement on differing revisions",
			local:  []models.ItemState{live("A", "r2")},
			remote: []models.ItemState{live("A", "r1")},
			last:   map[string]models.RevisionPair{"A": {Local: "r2", External: "r1"}},
		},
		{
			name:   "local edit after agreement",
			local:  []models.ItemState{live("A", "r3")},
			remote: []models.ItemState{live("A", "r1")},
			last:   map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			push:   []string{"A"},
		},
		{
			name:   "local tombstone after agreement",
			local:  []models.ItemState{tomb("A", "r2")},
			remote: []models.ItemState{live("A", "r1")},
			last:   map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			push:   []string{"A"},
		},
		{
			name:      "both changed differently",
			local:     []models.ItemState{live("A", "r2")},
			remote:    []models.ItemState{live("A", "r3")},
			last:      map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			conflicts: []string{"A"},
		},
		{
			name:      "never recorded and different",
			local:     []models.ItemState{live("A", "r1")},
			remote:    []models.ItemState{live("A", "r2")},
			conflicts: []string{"A"},
		},
		{
			name:  "local item missing remotely after agreement is pushed again",
			local: []models.ItemState{live("A", "r1")},
			last:  map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}},
			push:  []string{"A"},
		},
		{
			name:   "mixed plan is ordered by uuid",
			local:  []models.ItemState{live("D", "d1"), live("B", "b2"), live("C", "c1")},
			remote: []models.ItemState{live("E", "e1"), live("B", "b1"), live("C", "c1"), live("A", "a1")},
			last:   map[string]models.RevisionPair{"B": {Local: "b1", External: "b1"}},
			pull:   []string{"A", "E"},
			push:   []string{"B", "D"},
			record: []string{"C"},
		},
	}

	planner := NewSyncPlanner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planner.BuildSyncPlan(context.Background(), tt.local, tt.remote, tt.last)
			require.NoError(t, err)

			assert.ElementsMatch(t, tt.pull, uuids(plan.Pull), "pull")
			assert.ElementsMatch(t, tt.push, uuids(plan.Push), "push")
			assert.ElementsMatch(t, tt.conflicts, uuids(plan.Conflicts), "conflicts")
			assert.ElementsMatch(t, tt.record, uuids(plan.Record), "record")

			for _, group := range [][]models.SyncAction{plan.Pull, plan.Push, plan.Conflicts, plan.Record} {
				assert.IsNonDecreasing(t, uuids(group))
			}
		})
	}
}

func TestBuildSyncPlan_ActionCarriesStates(t *testing.T) {
	last := map[string]models.RevisionPair{"A": {Local: "r1", External: "r1"}}
	plan, err := NewSyncPlanner().BuildSyncPlan(context.Background(),
		[]models.ItemState{live("A", "r1")},
		[]models.ItemState{live("A", "r2")},
		last,
	)
	require.NoError(t, err)
	require.Len(t, plan.Pull, 1)

	assert.Equal(t, models.SyncAction{
		UUID:   "A",
		Local:  live("A", "r1"),
		Remote: live("A", "r2"),
		Last:   last["A"],
	}, plan.Pull[0])
}

func TestBuildSyncPlan_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan, err := NewSyncPlanner().BuildSyncPlan(ctx, nil, []models.ItemState{live("A", "r1")}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, plan.Empty())
}
