package store

import (
	"context"

	"github.com/MKhiriev/keychain-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SyncRevisionRepository records, per remote store, the last revision pair
// both replicas agreed on for each item. It records agreement only and
// never resolves conflicts.
type SyncRevisionRepository interface {
	SetLastSyncedRevision(ctx context.Context, storeID, uuid string, pair models.RevisionPair) error
	GetLastSyncedRevision(ctx context.Context, storeID, uuid string) (models.RevisionPair, error)
	LastSyncRevisions(ctx context.Context, storeID string) (map[string]models.RevisionPair, error)
	ClearSyncRevisions(ctx context.Context, storeID string) error
}
