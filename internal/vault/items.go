package vault

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/crypto"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/validators"
	"github.com/MKhiriev/keychain-vault/models"
)

// readConcurrency bounds parallel item file reads while listing.
const readConcurrency = 8

// ListOptions tunes ListItems.
type ListOptions struct {
	IncludeTombstones bool
}

// ListItemStates enumerates every item, tombstones included, without
// decrypting anything. Revisions are read from the item files themselves,
// never from the index, so a stale index entry cannot hide a save from
// the sync driver.
func (v *Vault) ListItemStates(ctx context.Context) ([]models.ItemState, error) {
	overviews, err := v.overviews(ctx, false)
	if err != nil {
		return nil, err
	}

	states := make([]models.ItemState, 0, len(overviews))
	for _, o := range overviews {
		states = append(states, o.State())
	}
	return states, nil
}

// ListItems returns the overview of every item, sorted by title. Tombstones
// are excluded unless opts.IncludeTombstones. Content is not loaded.
func (v *Vault) ListItems(ctx context.Context, opts ListOptions) ([]*Item, error) {
	overviews, err := v.overviews(ctx, true)
	if err != nil {
		return nil, err
	}

	items := make([]*Item, 0, len(overviews))
	for _, o := range overviews {
		if o.Deleted() && !opts.IncludeTombstones {
			continue
		}
		items = append(items, itemFromOverview(o))
	}

	slices.SortFunc(items, func(a, b *Item) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.uuid, b.uuid))
	})
	return items, nil
}

// overviews returns one overview per item file present in storage. Item
// files decide what exists: index entries without a file are dropped and
// files missing from the index are read directly. With useIndex false
// every item file is read.
func (v *Vault) overviews(ctx context.Context, useIndex bool) ([]models.ItemOverview, error) {
	log := logger.FromContext(ctx)

	uuids, err := v.storedUUIDs(ctx)
	if err != nil {
		return nil, err
	}

	index := map[string]models.ItemOverview{}
	if useIndex {
		if index, err = v.readIndex(ctx); err != nil {
			return nil, err
		}
	}

	result := make([]models.ItemOverview, len(uuids))
	found := make([]bool, len(uuids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, uuid := range uuids {
		if o, ok := index[uuid]; ok {
			result[i], found[i] = o, true
			continue
		}

		g.Go(func() error {
			f, err := v.readItemFile(gctx, itemPath(uuid))
			if errors.Is(err, adapter.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			result[i], found[i] = f.ItemOverview, true
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	overviews := make([]models.ItemOverview, 0, len(uuids))
	for i, o := range result {
		if found[i] {
			overviews = append(overviews, o)
		}
	}

	if stale := staleEntries(index, uuids); stale > 0 {
		log.Debug().Str("func", "vault.overviews").Int("stale_entries", stale).Msg("index entries without item file skipped")
	}
	return overviews, nil
}

// staleEntries counts index entries whose item file is gone.
func staleEntries(index map[string]models.ItemOverview, uuids []string) int {
	n := len(index)
	for _, uuid := range uuids {
		if _, ok := index[uuid]; ok {
			n--
		}
	}
	return n
}

// storedUUIDs lists the uuids of the item files in storage.
func (v *Vault) storedUUIDs(ctx context.Context) ([]string, error) {
	entries, err := v.storage.List(ctx, dataDir)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	uuids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		if uuid, ok := itemUUIDFromName(e.Name); ok {
			uuids = append(uuids, uuid)
		}
	}
	return uuids, nil
}

func (v *Vault) readItemFile(ctx context.Context, path string) (models.ItemFile, error) {
	data, err := v.storage.Read(ctx, path)
	if err != nil {
		return models.ItemFile{}, err
	}

	var f models.ItemFile
	if err = json.Unmarshal(data, &f); err != nil {
		return models.ItemFile{}, fmt.Errorf("%w: decode %s: %w", validators.ErrInvalidItem, path, err)
	}
	return f, nil
}

// FetchItem reads an item without decrypting it. Tombstones are returned
// too. An empty revision selects the current one.
func (v *Vault) FetchItem(ctx context.Context, uuid, revision string) (*Item, error) {
	path := itemPath(uuid)
	if revision != "" {
		path = historyPath(revision)
	}

	f, err := v.readItemFile(ctx, path)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, uuid)
	}
	if err != nil {
		return nil, err
	}
	if f.UUID != uuid {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, uuid)
	}
	return itemFromFile(f), nil
}

// LoadItem reads and decrypts an item. Tombstoned and absent items fail
// with ErrItemNotFound; content needs the item's key.
func (v *Vault) LoadItem(ctx context.Context, uuid, revision string) (*Item, error) {
	item, err := v.FetchItem(ctx, uuid, revision)
	if err != nil {
		return nil, err
	}
	if item.IsTombstone() {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, uuid)
	}
	if _, err = v.GetContent(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetContent returns the decrypted content of item, caching it on the
// instance. Tombstones have empty content and unsaved items return what
// SetContent attached. For a stored item the key it is encrypted with must
// be held, even when the content is already cached; otherwise the result
// is ErrLockedStore.
func (v *Vault) GetContent(ctx context.Context, item *Item) (models.ItemContent, error) {
	if item.IsTombstone() {
		item.content = &models.ItemContent{}
		return models.ItemContent{}, nil
	}
	if item.revision == "" {
		if item.content == nil {
			item.content = &models.ItemContent{}
		}
		return cloneContent(*item.content), nil
	}
	if item.content != nil {
		if !v.agent.HasKey(item.KeyID) {
			return models.ItemContent{}, fmt.Errorf("%w: key %s is not held", ErrLockedStore, item.KeyID)
		}
		return cloneContent(*item.content), nil
	}

	raw, err := v.GetRawDecryptedData(ctx, item)
	if err != nil {
		return models.ItemContent{}, err
	}

	var content models.ItemContent
	if err = json.Unmarshal(raw, &content); err != nil {
		return models.ItemContent{}, fmt.Errorf("%w: decode content: %w", validators.ErrInvalidItem, err)
	}
	item.content = &content
	return cloneContent(content), nil
}

// GetRawDecryptedData returns the decrypted content JSON of item without
// caching it. Items listed from the index fetch their blob first.
func (v *Vault) GetRawDecryptedData(ctx context.Context, item *Item) ([]byte, error) {
	log := logger.FromContext(ctx)

	if item.IsTombstone() {
		return []byte("{}"), nil
	}
	if item.encrypted == nil {
		if item.revision == "" {
			return nil, fmt.Errorf("%w: %s is not saved", ErrItemNotFound, item.uuid)
		}
		stored, err := v.FetchItem(ctx, item.uuid, item.revision)
		if err != nil {
			return nil, err
		}
		item.encrypted = stored.encrypted
		if item.KeyID == "" {
			item.KeyID = stored.KeyID
		}
	}

	if !v.agent.HasKey(item.KeyID) {
		return nil, fmt.Errorf("%w: key %s is not held", ErrLockedStore, item.KeyID)
	}

	raw, err := v.agent.Decrypt(item.KeyID, item.encrypted)
	if err != nil {
		log.Debug().
			Err(crypto.DecryptionCause(err)).
			Str("func", "vault.GetRawDecryptedData").
			Str("uuid", item.uuid).
			Msg("content decryption failed")
		return nil, err
	}
	return raw, nil
}

// SaveItem persists item and assigns its new revision.
//
// A local save bumps updatedAt by at least one second and chains the
// parent revision to the previous one. A sync save keeps both as received,
// so the copy gets the revision it has on its source replica; content is
// re-encrypted with the default key when the item's key is not held here.
//
// Every save, removal included, needs an unlocked vault.
//
// Saves of the same uuid must be serialised by the caller.
func (v *Vault) SaveItem(ctx context.Context, item *Item, source models.ChangeSource) error {
	log := logger.FromContext(ctx)

	if v.IsLocked() {
		return fmt.Errorf("%w: cannot save %s", ErrLockedStore, item.uuid)
	}
	content, err := v.saveContent(ctx, item)
	if err != nil {
		return err
	}

	tombstone := item.IsTombstone()
	keyID := item.KeyID
	if keyID == "" || (source == models.SourceSync && !v.agent.HasKey(keyID)) {
		keyID = v.DefaultKeyID()
	}
	if !tombstone && !v.agent.HasKey(keyID) {
		return fmt.Errorf("%w: no key to encrypt %s", ErrLockedStore, item.uuid)
	}

	o := item.overview()
	o.KeyID = keyID
	o.Locations = nil
	if !tombstone {
		o.Locations = content.Locations()
	}

	switch source {
	case models.SourceLocal:
		now := v.now().Unix()
		if prev := unixOrZero(item.updatedAt); now <= prev {
			now = prev + 1
		}
		o.UpdatedAt = now
		if o.CreatedAt == 0 {
			o.CreatedAt = now
		}
		o.ParentRevision = item.revision
	case models.SourceSync:
		if o.UpdatedAt == 0 {
			o.UpdatedAt = v.now().Unix()
		}
		if o.CreatedAt == 0 {
			o.CreatedAt = o.UpdatedAt
		}
	}

	revision, err := computeRevision(o, content)
	if err != nil {
		return err
	}
	if source == models.SourceSync && item.revision != "" && item.revision != revision {
		log.Warn().
			Str("func", "vault.SaveItem").
			Str("uuid", item.uuid).
			Str("received", item.revision).
			Str("computed", revision).
			Msg("synced item revision differs from its source")
	}
	o.Revision = revision

	var blob []byte
	if !tombstone {
		plaintext, err := json.Marshal(content)
		if err != nil {
			return fmt.Errorf("encode content: %w", err)
		}
		if blob, err = v.agent.Encrypt(keyID, plaintext); err != nil {
			return fmt.Errorf("encrypt content: %w", err)
		}
	}

	f := models.ItemFile{ItemOverview: o, Encrypted: blob}
	if err = v.itemValidator.Validate(ctx, f); err != nil {
		return err
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode item file: %w", err)
	}
	if err = v.storage.Write(ctx, historyPath(revision), data); err != nil {
		return fmt.Errorf("write item history: %w", err)
	}
	if err = v.storage.Write(ctx, itemPath(o.UUID), data); err != nil {
		return fmt.Errorf("write item: %w", err)
	}

	if err = v.putIndexEntry(ctx, o); err != nil {
		// the item file is authoritative; ListItemStates never reads the index
		log.Warn().Err(err).Str("func", "vault.SaveItem").Str("uuid", o.UUID).Msg("index update failed")
	}

	item.KeyID = keyID
	item.revision = revision
	item.parentRevision = o.ParentRevision
	item.createdAt = unixTime(o.CreatedAt)
	item.updatedAt = unixTime(o.UpdatedAt)
	item.locations = o.Locations
	item.encrypted = blob
	item.content = &content

	log.Debug().
		Str("func", "vault.SaveItem").
		Str("uuid", o.UUID).
		Str("revision", revision).
		Stringer("source", source).
		Bool("tombstone", tombstone).
		Msg("item saved")
	return nil
}

// saveContent returns the content to persist for item. Content cached on
// the instance is taken as is: a sync copy carries plaintext decrypted with
// the source replica's key, which this vault may not hold.
func (v *Vault) saveContent(ctx context.Context, item *Item) (models.ItemContent, error) {
	if item.IsTombstone() {
		return models.ItemContent{}, nil
	}
	if item.content != nil {
		return cloneContent(*item.content), nil
	}
	return v.GetContent(ctx, item)
}

// RemoveItem turns item into a tombstone and saves it. The uuid and the
// revision chain survive; title, content, locations and folder are cleared.
func (v *Vault) RemoveItem(ctx context.Context, item *Item) error {
	tomb := item.Clone()
	tomb.TypeName = models.TypeTombstone
	tomb.Trashed = true
	tomb.Title = ""
	tomb.FolderUUID = ""
	tomb.FaveIndex = 0
	tomb.OpenContents = models.OpenContents{}
	tomb.locations = nil
	tomb.encrypted = nil
	tomb.content = &models.ItemContent{}

	if err := v.SaveItem(ctx, tomb, models.SourceLocal); err != nil {
		return err
	}
	*item = *tomb
	return nil
}
