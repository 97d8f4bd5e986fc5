// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ItemOverview holds the plaintext-safe fields of an item. The vault index
// (contents.js) is a list of overviews and may lag behind the item files.
type ItemOverview struct {
	UUID           string       `json:"uuid"`
	Revision       string       `json:"revision"`
	ParentRevision string       `json:"parentRevision,omitempty"`
	FolderUUID     string       `json:"folderUuid,omitempty"`
	FaveIndex      int          `json:"faveIndex,omitempty"`
	Trashed        bool         `json:"trashed,omitempty"`
	CreatedAt      int64        `json:"createdAt"`
	UpdatedAt      int64        `json:"updatedAt"`
	TypeName       ItemType     `json:"typeName"`
	Title          string       `json:"title,omitempty"`
	OpenContents   OpenContents `json:"openContents"`
	Locations      []string     `json:"locations,omitempty"`
	KeyID          string       `json:"keyID,omitempty"`
}

// Deleted reports whether the overview describes a tombstone.
func (o ItemOverview) Deleted() bool {
	return o.TypeName == TypeTombstone
}

// State projects the overview to its [ItemState].
func (o ItemOverview) State() ItemState {
	return ItemState{
		UUID:     o.UUID,
		Revision: o.Revision,
		Deleted:  o.Deleted(),
	}
}

// ItemFile is the persisted form of an item, stored as
// data/default/<UUID>.1password and, per revision, under history/.
type ItemFile struct {
	ItemOverview

	// Encrypted is the item blob holding the JSON of [ItemContent].
	// Tombstones carry none.
	Encrypted []byte `json:"encrypted,omitempty"`
}
