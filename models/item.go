// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ItemType is the type name of a vault item. The values follow the
// keychain naming scheme so vaults stay readable by other clients of the
// same layout.
type ItemType string

const (
	// TypeLogin is a website login (web form credentials).
	TypeLogin ItemType = "webforms.WebForm"

	// TypeSecureNote is a free-form secret note.
	TypeSecureNote ItemType = "securenotes.SecureNote"

	// TypeCreditCard is a payment card.
	TypeCreditCard ItemType = "wallet.financial.CreditCard"

	// TypePassword is a standalone generated password.
	TypePassword ItemType = "passwords.Password"

	// TypeIdentity is a personal identity record.
	TypeIdentity ItemType = "identities.Identity"

	// TypeSoftwareLicense is a software licence key.
	TypeSoftwareLicense ItemType = "wallet.computer.License"

	// TypeFolder is a folder grouping other items.
	TypeFolder ItemType = "system.folder.Regular"

	// TypeTombstone marks a removed item. Tombstones keep the uuid and the
	// revision chain so removals propagate through sync.
	TypeTombstone ItemType = "system.Tombstone"
)

// KnownItemTypes lists every type name a vault accepts on save.
var KnownItemTypes = []ItemType{
	TypeLogin,
	TypeSecureNote,
	TypeCreditCard,
	TypePassword,
	TypeIdentity,
	TypeSoftwareLicense,
	TypeFolder,
	TypeTombstone,
}

// Field designations used by login form fields.
const (
	DesignationUsername = "username"
	DesignationPassword = "password"
)

// ItemContent is the decrypted payload of an item. It is serialised to JSON
// and encrypted as a whole; it never reaches storage in plaintext.
type ItemContent struct {
	// Sections groups additional typed fields (card numbers, identity data).
	Sections []ItemSection `json:"sections,omitempty"`

	// URLs are the locations the item applies to. The item's overview
	// Locations are mirrored from this list on save.
	URLs []ItemURL `json:"URLs,omitempty"`

	// Notes is the free-form notes text.
	Notes string `json:"notesPlain,omitempty"`

	// FormFields are the fields captured from a login form.
	FormFields []WebFormField `json:"fields,omitempty"`

	HTMLMethod string `json:"htmlMethod,omitempty"`
	HTMLAction string `json:"htmlAction,omitempty"`
	HTMLID     string `json:"htmlID,omitempty"`
}

// ItemSection is a named group of fields.
type ItemSection struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Fields []ItemField `json:"fields,omitempty"`
}

// ItemField is one typed value inside a section.
type ItemField struct {
	Kind  string `json:"k"`
	Name  string `json:"n"`
	Title string `json:"t"`
	Value string `json:"v"`
}

// ItemURL is one location an item applies to.
type ItemURL struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// WebFormField is a field captured from an HTML login form.
type WebFormField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Designation string `json:"designation"`
	Value       string `json:"value"`
}

// Username returns the value of the first form field designated as the
// account name, or "" if there is none.
func (c ItemContent) Username() string {
	return c.fieldByDesignation(DesignationUsername)
}

// Password returns the value of the first form field designated as the
// password, or "" if there is none.
func (c ItemContent) Password() string {
	return c.fieldByDesignation(DesignationPassword)
}

func (c ItemContent) fieldByDesignation(designation string) string {
	for _, f := range c.FormFields {
		if f.Designation == designation {
			return f.Value
		}
	}
	return ""
}

// Locations returns the URLs of the content as plain strings.
func (c ItemContent) Locations() []string {
	locations := make([]string, 0, len(c.URLs))
	for _, u := range c.URLs {
		locations = append(locations, u.URL)
	}
	return locations
}

// OpenContents holds the unencrypted item metadata (tags, autofill scope).
type OpenContents struct {
	Tags      []string `json:"tags,omitempty"`
	ScopeType string   `json:"scope,omitempty"`
}

// ItemState is a cheap projection of an item used to enumerate and diff a
// vault without decrypting anything.
type ItemState struct {
	UUID     string `json:"uuid"`
	Revision string `json:"revision"`
	Deleted  bool   `json:"deleted"`
}

// ChangeSource tells the vault where a save originates.
type ChangeSource int

const (
	// SourceLocal is an edit made on this replica: updatedAt is bumped and
	// the parent revision chains to the previous revision.
	SourceLocal ChangeSource = iota

	// SourceSync is a copy received from another replica: updatedAt and
	// the parent revision are kept as received so both replicas compute
	// the same revision.
	SourceSync
)

// String implements fmt.Stringer.
func (s ChangeSource) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceSync:
		return "sync"
	default:
		return "unknown"
	}
}
