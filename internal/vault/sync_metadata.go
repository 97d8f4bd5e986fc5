package vault

import (
	"context"

	"github.com/MKhiriev/keychain-vault/models"
)

// SetLastSyncedRevision records the revision pair item last agreed on with
// the replica storeID.
func (v *Vault) SetLastSyncedRevision(ctx context.Context, item *Item, storeID string, pair models.RevisionPair) error {
	return v.syncRevisions.SetLastSyncedRevision(ctx, storeID, item.UUID(), pair)
}

// GetLastSyncedRevision returns the recorded pair of uuid for storeID, or
// store.ErrSyncRevisionNotFound.
func (v *Vault) GetLastSyncedRevision(ctx context.Context, uuid, storeID string) (models.RevisionPair, error) {
	return v.syncRevisions.GetLastSyncedRevision(ctx, storeID, uuid)
}

// LastSyncRevisions returns every recorded pair for storeID keyed by uuid.
func (v *Vault) LastSyncRevisions(ctx context.Context, storeID string) (map[string]models.RevisionPair, error) {
	return v.syncRevisions.LastSyncRevisions(ctx, storeID)
}

// ClearSyncRevisions forgets every recorded pair for storeID, forcing the
// next sync with it to compare all items.
func (v *Vault) ClearSyncRevisions(ctx context.Context, storeID string) error {
	return v.syncRevisions.ClearSyncRevisions(ctx, storeID)
}
