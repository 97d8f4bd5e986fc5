package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/keychain-vault/models"
)

// revisionInput is the canonical form hashed into a revision. Field order is
// fixed by the struct and slices marshal in order, so identical item state
// always encodes to identical bytes.
type revisionInput struct {
	UUID           string              `json:"uuid"`
	ParentRevision string              `json:"parentRevision"`
	Title          string              `json:"title"`
	UpdatedAt      int64               `json:"updatedAt"`
	CreatedAt      int64               `json:"createdAt"`
	TypeName       models.ItemType     `json:"typeName"`
	OpenContents   models.OpenContents `json:"openContents"`
	FolderUUID     string              `json:"folderUuid"`
	FaveIndex      int                 `json:"faveIndex"`
	Trashed        bool                `json:"trashed"`
	Content        models.ItemContent  `json:"content"`
}

// computeRevision returns the hex SHA-256 of the canonical item state.
// Ciphertext and key ids are not part of it, so replicas holding the same
// plaintext under different keys agree on the revision.
func computeRevision(o models.ItemOverview, content models.ItemContent) (string, error) {
	data, err := json.Marshal(revisionInput{
		UUID:           o.UUID,
		ParentRevision: o.ParentRevision,
		Title:          o.Title,
		UpdatedAt:      o.UpdatedAt,
		CreatedAt:      o.CreatedAt,
		TypeName:       o.TypeName,
		OpenContents:   o.OpenContents,
		FolderUUID:     o.FolderUUID,
		FaveIndex:      o.FaveIndex,
		Trashed:        o.Trashed,
		Content:        content,
	})
	if err != nil {
		return "", fmt.Errorf("encode revision input: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
