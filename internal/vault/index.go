package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/models"
)

// readIndex returns the index keyed by uuid. A missing index is empty.
func (v *Vault) readIndex(ctx context.Context) (map[string]models.ItemOverview, error) {
	data, err := v.storage.Read(ctx, indexPath)
	if errors.Is(err, adapter.ErrNotFound) {
		return map[string]models.ItemOverview{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var entries []models.ItemOverview
	if err = json.Unmarshal(data, &entries); err != nil {
		// the index is a cache; a damaged one is rebuilt from item files
		logger.FromContext(ctx).Warn().Err(err).Str("func", "vault.readIndex").Msg("ignoring malformed index")
		return map[string]models.ItemOverview{}, nil
	}

	index := make(map[string]models.ItemOverview, len(entries))
	for _, e := range entries {
		index[e.UUID] = e
	}
	return index, nil
}

func (v *Vault) writeIndex(ctx context.Context, index map[string]models.ItemOverview) error {
	entries := make([]models.ItemOverview, 0, len(index))
	for _, e := range index {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b models.ItemOverview) int {
		return strings.Compare(a.UUID, b.UUID)
	})

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err = v.storage.Write(ctx, indexPath, data); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// putIndexEntry replaces the entry of o.UUID.
func (v *Vault) putIndexEntry(ctx context.Context, o models.ItemOverview) error {
	v.indexMu.Lock()
	defer v.indexMu.Unlock()

	index, err := v.readIndex(ctx)
	if err != nil {
		return err
	}
	index[o.UUID] = o
	return v.writeIndex(ctx, index)
}
