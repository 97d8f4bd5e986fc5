package vault

import (
	"slices"
	"time"

	"github.com/MKhiriev/keychain-vault/internal/utils"
	"github.com/MKhiriev/keychain-vault/models"
)

// Item is one vault entry. Identity, revision chain and timestamps are
// managed by the vault; the exported fields are free to edit before a save.
//
// Decrypted content is cached on the instance that loaded it. Each LoadItem
// returns a fresh instance, so the cache is owned by the caller holding it.
type Item struct {
	FolderUUID   string
	FaveIndex    int
	Trashed      bool
	TypeName     models.ItemType
	Title        string
	OpenContents models.OpenContents

	// KeyID names the key the content is encrypted with. Empty selects the
	// vault's default key on save.
	KeyID string

	uuid           string
	revision       string
	parentRevision string
	createdAt      time.Time
	updatedAt      time.Time
	locations      []string

	// encrypted is the content blob as read from storage; nil for new items
	// and for items listed from the index only.
	encrypted []byte
	content   *models.ItemContent
}

// NewItem returns a fresh, unsaved item with a random uuid.
func NewItem(typeName models.ItemType, title string) *Item {
	return &Item{
		TypeName: typeName,
		Title:    title,
		uuid:     utils.NewVaultUUID(),
	}
}

func (it *Item) UUID() string           { return it.uuid }
func (it *Item) Revision() string       { return it.revision }
func (it *Item) ParentRevision() string { return it.parentRevision }
func (it *Item) CreatedAt() time.Time   { return it.createdAt }
func (it *Item) UpdatedAt() time.Time   { return it.updatedAt }

// Locations returns the URLs mirrored from the content on the last save or
// SetContent.
func (it *Item) Locations() []string {
	return slices.Clone(it.locations)
}

// IsTombstone reports whether the item has been removed.
func (it *Item) IsTombstone() bool {
	return it.TypeName == models.TypeTombstone
}

// State returns the cheap projection of the item.
func (it *Item) State() models.ItemState {
	return models.ItemState{UUID: it.uuid, Revision: it.revision, Deleted: it.IsTombstone()}
}

// SetContent attaches content to the item and mirrors its URLs into
// Locations. Nothing is persisted until the item is saved.
func (it *Item) SetContent(content models.ItemContent) {
	c := content
	it.content = &c
	it.locations = content.Locations()
}

// CachedContent returns the content held by this instance, if any.
func (it *Item) CachedContent() (models.ItemContent, bool) {
	if it.content == nil {
		return models.ItemContent{}, false
	}
	return *it.content, true
}

// Clone returns a deep copy of the item, including its content cache.
func (it *Item) Clone() *Item {
	c := *it
	c.OpenContents.Tags = slices.Clone(it.OpenContents.Tags)
	c.locations = slices.Clone(it.locations)
	c.encrypted = slices.Clone(it.encrypted)
	if it.content != nil {
		content := cloneContent(*it.content)
		c.content = &content
	}
	return &c
}

func (it *Item) overview() models.ItemOverview {
	return models.ItemOverview{
		UUID:           it.uuid,
		Revision:       it.revision,
		ParentRevision: it.parentRevision,
		FolderUUID:     it.FolderUUID,
		FaveIndex:      it.FaveIndex,
		Trashed:        it.Trashed,
		CreatedAt:      unixOrZero(it.createdAt),
		UpdatedAt:      unixOrZero(it.updatedAt),
		TypeName:       it.TypeName,
		Title:          it.Title,
		OpenContents:   it.OpenContents,
		Locations:      it.locations,
		KeyID:          it.KeyID,
	}
}

func itemFromOverview(o models.ItemOverview) *Item {
	return &Item{
		FolderUUID:     o.FolderUUID,
		FaveIndex:      o.FaveIndex,
		Trashed:        o.Trashed,
		TypeName:       o.TypeName,
		Title:          o.Title,
		OpenContents:   o.OpenContents,
		KeyID:          o.KeyID,
		uuid:           o.UUID,
		revision:       o.Revision,
		parentRevision: o.ParentRevision,
		createdAt:      unixTime(o.CreatedAt),
		updatedAt:      unixTime(o.UpdatedAt),
		locations:      o.Locations,
	}
}

func itemFromFile(f models.ItemFile) *Item {
	it := itemFromOverview(f.ItemOverview)
	it.encrypted = f.Encrypted
	return it
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func cloneContent(c models.ItemContent) models.ItemContent {
	out := c
	out.URLs = slices.Clone(c.URLs)
	out.FormFields = slices.Clone(c.FormFields)
	if c.Sections != nil {
		out.Sections = make([]models.ItemSection, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s
			out.Sections[i].Fields = slices.Clone(s.Fields)
		}
	}
	return out
}
