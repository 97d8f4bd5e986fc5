package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/keychain-vault/models"
)

// Field names accepted by [KeyValidator].
const (
	FieldIdentifier = "identifier"
	FieldData       = "data"
	FieldValidation = "validation"
	FieldSalt       = "salt"
	FieldIterations = "iterations"
	FieldList       = "list"
	FieldDefault    = "default"
)

// KeyValidator validates key records and the key file.
type KeyValidator struct{}

// NewKeyValidator returns a [KeyValidator] as a [Validator].
func NewKeyValidator() Validator {
	return &KeyValidator{}
}

// Validate accepts models.KeyRecord and models.KeyFile by value or
// pointer.
func (v *KeyValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.KeyRecord:
		return v.validateKeyRecord(ctx, value, fields...)
	case *models.KeyRecord:
		return v.validateKeyRecord(ctx, *value, fields...)
	case models.KeyFile:
		return v.validateKeyFile(ctx, value, fields...)
	case *models.KeyFile:
		return v.validateKeyFile(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *KeyValidator) validateKeyRecord(_ context.Context, key models.KeyRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentifier, FieldData, FieldValidation, FieldSalt, FieldIterations}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentifier:
			if !IsIdentifier(key.Identifier) {
				return ErrInvalidIdentifier
			}
		case FieldData:
			if len(key.Data) == 0 {
				return ErrEmptyWrappedKey
			}
		case FieldValidation:
			if len(key.Validation) == 0 {
				return ErrEmptyValidation
			}
		case FieldSalt:
			if len(key.Salt) == 0 {
				return ErrInvalidSalt
			}
		case FieldIterations:
			if key.Iterations <= 0 {
				return ErrInvalidIterations
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateKeyFile checks the list and default identifier. With FieldList
// every record is validated in full.
func (v *KeyValidator) validateKeyFile(ctx context.Context, file models.KeyFile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldList, FieldDefault}
	}

	for _, f := range fields {
		switch f {
		case FieldList:
			if len(file.List) == 0 {
				return ErrEmptyKeyList
			}
			seen := make(map[string]struct{}, len(file.List))
			for i, key := range file.List {
				if err := v.validateKeyRecord(ctx, key); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				if _, ok := seen[key.Identifier]; ok {
					return ErrDuplicateKey
				}
				seen[key.Identifier] = struct{}{}
			}
		case FieldDefault:
			found := false
			for _, key := range file.List {
				if key.Identifier == file.Default {
					found = true
					break
				}
			}
			if !found {
				return ErrUnknownDefaultKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
