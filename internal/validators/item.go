package validators

import (
	"context"
	"slices"

	"github.com/MKhiriev/keychain-vault/models"
)

// Field names accepted by [ItemValidator].
const (
	FieldUUID       = "uuid"
	FieldRevision   = "revision"
	FieldType       = "type"
	FieldTitle      = "title"
	FieldTimestamps = "timestamps"
	FieldFolder     = "folder"
	FieldKeyID      = "key_id"
	FieldContent    = "content"
	FieldTombstone  = "tombstone"
)

var defaultItemFields = []string{
	FieldUUID, FieldRevision, FieldType, FieldTitle, FieldTimestamps,
	FieldFolder, FieldKeyID, FieldContent, FieldTombstone,
}

// ItemValidator validates item files before they are written.
type ItemValidator struct{}

// NewItemValidator returns an [ItemValidator] as a [Validator].
func NewItemValidator() Validator {
	return &ItemValidator{}
}

// Validate accepts models.ItemFile by value or pointer.
func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ItemFile:
		return v.validateItemFile(ctx, value, fields...)
	case *models.ItemFile:
		return v.validateItemFile(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateItemFile(_ context.Context, item models.ItemFile, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultItemFields
	}

	tombstone := item.Deleted()

	for _, f := range fields {
		switch f {
		case FieldUUID:
			if !IsIdentifier(item.UUID) {
				return ErrInvalidUUID
			}
		case FieldRevision:
			if item.Revision == "" {
				return ErrInvalidRevision
			}
		case FieldType:
			if !slices.Contains(models.KnownItemTypes, item.TypeName) {
				return ErrInvalidType
			}
		case FieldTitle:
			if !tombstone && item.Title == "" {
				return ErrEmptyTitle
			}
		case FieldTimestamps:
			if item.UpdatedAt < item.CreatedAt {
				return ErrInvalidTimestamps
			}
		case FieldFolder:
			if item.FolderUUID != "" && !IsIdentifier(item.FolderUUID) {
				return ErrInvalidFolder
			}
		case FieldKeyID:
			if !tombstone && item.KeyID == "" {
				return ErrEmptyKeyID
			}
		case FieldContent:
			if !tombstone && len(item.Encrypted) == 0 {
				return ErrEmptyContent
			}
		case FieldTombstone:
			if tombstone && (!item.Trashed || len(item.Encrypted) != 0 || len(item.Locations) != 0 || item.FolderUUID != "") {
				return ErrMalformedTombstone
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// IsIdentifier reports whether s is a vault identifier: 32 uppercase hex
// characters.
func IsIdentifier(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
