package vault

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/models"
)

func TestRevisionDeterminism(t *testing.T) {
	base := models.ItemOverview{
		UUID:           "0123456789ABCDEF0123456789ABCDEF",
		ParentRevision: "parent",
		Title:          "Facebook",
		UpdatedAt:      1700000100,
		CreatedAt:      1700000000,
		TypeName:       models.TypeLogin,
		OpenContents:   models.OpenContents{Tags: []string{"social"}},
		FolderUUID:     "",
		FaveIndex:      1,
	}
	content := facebookContent()

	r1, err := computeRevision(base, content)
	require.NoError(t, err)
	r2, err := computeRevision(base, cloneContent(content))
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.Len(t, r1, 64)

	// fields outside the hashed set do not matter
	other := base
	other.KeyID = "FEDCBA9876543210FEDCBA9876543210"
	other.Locations = []string{"elsewhere"}
	r3, err := computeRevision(other, content)
	require.NoError(t, err)
	assert.Equal(t, r1, r3)

	mutations := map[string]func(o *models.ItemOverview, c *models.ItemContent){
		"uuid":         func(o *models.ItemOverview, _ *models.ItemContent) { o.UUID = "1123456789ABCDEF0123456789ABCDEF" },
		"parent":       func(o *models.ItemOverview, _ *models.ItemContent) { o.ParentRevision = "other" },
		"title":        func(o *models.ItemOverview, _ *models.ItemContent) { o.Title = "Facebook2" },
		"updatedAt":    func(o *models.ItemOverview, _ *models.ItemContent) { o.UpdatedAt++ },
		"createdAt":    func(o *models.ItemOverview, _ *models.ItemContent) { o.CreatedAt++ },
		"typeName":     func(o *models.ItemOverview, _ *models.ItemContent) { o.TypeName = models.TypePassword },
		"openContents": func(o *models.ItemOverview, _ *models.ItemContent) { o.OpenContents.ScopeType = "Never" },
		"folder":       func(o *models.ItemOverview, _ *models.ItemContent) { o.FolderUUID = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA" },
		"faveIndex":    func(o *models.ItemOverview, _ *models.ItemContent) { o.FaveIndex = 2 },
		"trashed":      func(o *models.ItemOverview, _ *models.ItemContent) { o.Trashed = true },
		"content":      func(_ *models.ItemOverview, c *models.ItemContent) { c.FormFields[1].Value = "changed" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			o := base
			c := cloneContent(content)
			mutate(&o, &c)

			r, err := computeRevision(o, c)
			require.NoError(t, err)
			assert.NotEqual(t, r1, r)
		})
	}
}

func TestSaveItem_RevisionChain(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	v, err := Create(ctx, adapter.NewMemoryStorage(), testPassword, "", testIterations, testOptions(clock))
	require.NoError(t, err)

	item := saveFacebook(t, v)
	first := item.Revision()
	require.NotEmpty(t, first)
	assert.Empty(t, item.ParentRevision())
	assert.Equal(t, v.DefaultKeyID(), item.KeyID)

	clock.Advance(time.Minute)
	item.Title = "Facebook (work)"
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	assert.NotEqual(t, first, item.Revision())
	assert.Equal(t, first, item.ParentRevision())

	// history keeps the old revision
	old, err := v.LoadItem(ctx, item.UUID(), first)
	require.NoError(t, err)
	assert.Equal(t, "Facebook", old.Title)
	assert.Equal(t, first, old.Revision())

	current, err := v.LoadItem(ctx, item.UUID(), "")
	require.NoError(t, err)
	assert.Equal(t, "Facebook (work)", current.Title)

	_, err = v.LoadItem(ctx, item.UUID(), "no-such-revision")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestSaveItem_SyncCopiesConverge(t *testing.T) {
	ctx := context.Background()
	a := newTestVault(t, adapter.NewMemoryStorage())
	b, err := Create(ctx, adapter.NewMemoryStorage(), "another password", "", testIterations, testOptions(nil))
	require.NoError(t, err)

	src := saveFacebook(t, a)

	dst := src.Clone()
	require.NoError(t, b.SaveItem(ctx, dst, models.SourceSync))

	assert.Equal(t, src.Revision(), dst.Revision())
	assert.Equal(t, src.UpdatedAt(), dst.UpdatedAt())
	assert.Equal(t, b.DefaultKeyID(), dst.KeyID)
	assert.NotEqual(t, src.KeyID, dst.KeyID)

	loaded, err := b.LoadItem(ctx, src.UUID(), "")
	require.NoError(t, err)
	content, _ := loaded.CachedContent()
	assert.Equal(t, "Wwk-ZWc-T9MO", content.Password())
}

func TestTimestampMonotonicity(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	v, err := Create(ctx, adapter.NewMemoryStorage(), testPassword, "", testIterations, testOptions(clock))
	require.NoError(t, err)

	item := saveFacebook(t, v)
	first := item.UpdatedAt()
	assert.Equal(t, item.CreatedAt(), first)

	// same instant
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	second := item.UpdatedAt()
	assert.GreaterOrEqual(t, second.Sub(first), time.Second)

	// clock moved by less than a second
	clock.Advance(300 * time.Millisecond)
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	assert.GreaterOrEqual(t, item.UpdatedAt().Sub(second), time.Second)

	// clock went backwards
	clock.Advance(-time.Hour)
	prev := item.UpdatedAt()
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	assert.GreaterOrEqual(t, item.UpdatedAt().Sub(prev), time.Second)

	assert.Equal(t, first, item.CreatedAt())
}

func TestRemoveItem_Tombstone(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t, adapter.NewMemoryStorage())

	item := saveFacebook(t, v)
	item.FolderUUID = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	uuid, liveRevision := item.UUID(), item.Revision()
	keep := saveFacebook(t, v)

	require.NoError(t, v.RemoveItem(ctx, item))

	assert.Equal(t, uuid, item.UUID())
	assert.Equal(t, models.TypeTombstone, item.TypeName)
	assert.True(t, item.Trashed)
	assert.True(t, item.IsTombstone())
	assert.Empty(t, item.FolderUUID)
	assert.Empty(t, item.Locations())
	assert.Equal(t, liveRevision, item.ParentRevision())
	assert.NotEqual(t, liveRevision, item.Revision())

	content, err := v.GetContent(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, models.ItemContent{}, content)

	_, err = v.LoadItem(ctx, uuid, "")
	require.ErrorIs(t, err, ErrItemNotFound)

	fetched, err := v.FetchItem(ctx, uuid, "")
	require.NoError(t, err)
	assert.True(t, fetched.IsTombstone())
	assert.Equal(t, item.Revision(), fetched.Revision())

	items, err := v.ListItems(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.UUID(), items[0].UUID())

	all, err := v.ListItems(ctx, ListOptions{IncludeTombstones: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	states, err := v.ListItemStates(ctx)
	require.NoError(t, err)
	assert.Contains(t, states, models.ItemState{UUID: uuid, Revision: item.Revision(), Deleted: true})
}

func TestListItems_SelfHealing(t *testing.T) {
	ctx := context.Background()
	storage := adapter.NewMemoryStorage()
	v := newTestVault(t, storage)

	gone := saveFacebook(t, v)
	kept := saveFacebook(t, v)

	// content file removed out of band
	require.NoError(t, storage.Remove(ctx, itemPath(gone.UUID())))

	items, err := v.ListItems(ctx, ListOptions{IncludeTombstones: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.UUID(), items[0].UUID())

	states, err := v.ListItemStates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ItemState{kept.State()}, states)

	_, err = v.LoadItem(ctx, gone.UUID(), "")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestListItems_FilesMissingFromIndex(t *testing.T) {
	ctx := context.Background()
	storage := adapter.NewMemoryStorage()
	v := newTestVault(t, storage)

	a := saveFacebook(t, v)
	b := saveFacebook(t, v)

	// index lost every entry
	require.NoError(t, storage.Write(ctx, indexPath, []byte("[]")))

	states, err := v.ListItemStates(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.ItemState{a.State(), b.State()}, states)

	// a damaged index is ignored too
	require.NoError(t, storage.Write(ctx, indexPath, []byte("garbage")))
	items, err := v.ListItems(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListItemStates_StaleIndexEntry(t *testing.T) {
	ctx := context.Background()
	storage := newFlakyStorage(adapter.NewMemoryStorage())
	v := newTestVault(t, storage)

	item := NewItem(models.TypeSecureNote, "note")
	item.SetContent(models.ItemContent{Notes: "v1"})
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	first := item.Revision()

	storage.failWrites(indexPath, true)
	item.SetContent(models.ItemContent{Notes: "v2"})
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))
	require.NotEqual(t, first, item.Revision())

	states, err := v.ListItemStates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ItemState{{UUID: item.UUID(), Revision: item.Revision()}}, states)

	loaded, err := v.LoadItem(ctx, item.UUID(), "")
	require.NoError(t, err)
	assert.Equal(t, item.Revision(), loaded.Revision())
}

func TestListItems_LazyContent(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t, adapter.NewMemoryStorage())
	saved := saveFacebook(t, v)

	items, err := v.ListItems(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	_, cached := item.CachedContent()
	assert.False(t, cached)
	assert.Equal(t, []string{"facebook.com"}, item.Locations())

	content, err := v.GetContent(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@gmail.com", content.Username())
	assert.Equal(t, saved.Revision(), item.Revision())

	raw, err := v.GetRawDecryptedData(ctx, item)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "john.doe@gmail.com")

	// a listed item can be edited and saved without loading it first
	item.Title = "Facebook renamed"
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))

	loaded, err := v.LoadItem(ctx, item.UUID(), "")
	require.NoError(t, err)
	assert.Equal(t, "Facebook renamed", loaded.Title)
	reloaded, _ := loaded.CachedContent()
	assert.Equal(t, "Wwk-ZWc-T9MO", reloaded.Password())
}

func TestListItems_EmptyStorage(t *testing.T) {
	v := Open(adapter.NewMemoryStorage(), testOptions(nil))

	items, err := v.ListItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveItem_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t, adapter.NewMemoryStorage())

	item := NewItem("unknown.Type", "x")
	item.SetContent(models.ItemContent{Notes: "n"})
	err := v.SaveItem(ctx, item, models.SourceLocal)
	require.Error(t, err)
	assert.Empty(t, item.Revision())

	states, err := v.ListItemStates(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestItemClone(t *testing.T) {
	item := NewItem(models.TypeLogin, "Facebook")
	item.OpenContents.Tags = []string{"a"}
	item.SetContent(facebookContent())

	c := item.Clone()
	c.OpenContents.Tags[0] = "b"
	c.content.FormFields[0].Value = "changed"

	assert.Equal(t, "a", item.OpenContents.Tags[0])
	content, _ := item.CachedContent()
	assert.Equal(t, "john.doe@gmail.com", content.Username())
	assert.Equal(t, item.UUID(), c.UUID())
}
