package store

import (
	"context"
	"maps"
	"sync"

	"github.com/MKhiriev/keychain-vault/models"
)

// memorySyncRevisionRepository keeps sync metadata for the lifetime of the
// process.
type memorySyncRevisionRepository struct {
	mu     sync.RWMutex
	stores map[string]map[string]models.RevisionPair
}

// NewMemorySyncRevisionRepository returns an empty in-memory
// [SyncRevisionRepository].
func NewMemorySyncRevisionRepository() SyncRevisionRepository {
	return &memorySyncRevisionRepository{
		stores: make(map[string]map[string]models.RevisionPair),
	}
}

func (m *memorySyncRevisionRepository) SetLastSyncedRevision(_ context.Context, storeID, uuid string, pair models.RevisionPair) error {
	if err := checkKey(storeID, uuid); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	revisions, ok := m.stores[storeID]
	if !ok {
		revisions = make(map[string]models.RevisionPair)
		m.stores[storeID] = revisions
	}
	revisions[uuid] = pair
	return nil
}

func (m *memorySyncRevisionRepository) GetLastSyncedRevision(_ context.Context, storeID, uuid string) (models.RevisionPair, error) {
	if err := checkKey(storeID, uuid); err != nil {
		return models.RevisionPair{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	pair, ok := m.stores[storeID][uuid]
	if !ok {
		return models.RevisionPair{}, ErrSyncRevisionNotFound
	}
	return pair, nil
}

func (m *memorySyncRevisionRepository) LastSyncRevisions(_ context.Context, storeID string) (map[string]models.RevisionPair, error) {
	if storeID == "" {
		return nil, ErrEmptyStoreID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	revisions := make(map[string]models.RevisionPair, len(m.stores[storeID]))
	maps.Copy(revisions, m.stores[storeID])
	return revisions, nil
}

func (m *memorySyncRevisionRepository) ClearSyncRevisions(_ context.Context, storeID string) error {
	if storeID == "" {
		return ErrEmptyStoreID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, storeID)
	return nil
}
