package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidItem = errors.New("invalid item")
	ErrInvalidKey  = errors.New("invalid key record")
)

var (
	ErrInvalidUUID        = fmt.Errorf("%w: uuid must be 32 uppercase hex characters", ErrInvalidItem)
	ErrInvalidRevision    = fmt.Errorf("%w: revision is required", ErrInvalidItem)
	ErrInvalidType        = fmt.Errorf("%w: unknown type name", ErrInvalidItem)
	ErrEmptyTitle         = fmt.Errorf("%w: title is required", ErrInvalidItem)
	ErrInvalidTimestamps  = fmt.Errorf("%w: updatedAt must not precede createdAt", ErrInvalidItem)
	ErrInvalidFolder      = fmt.Errorf("%w: folder uuid is malformed", ErrInvalidItem)
	ErrEmptyKeyID         = fmt.Errorf("%w: key id is required", ErrInvalidItem)
	ErrEmptyContent       = fmt.Errorf("%w: encrypted content is required", ErrInvalidItem)
	ErrMalformedTombstone = fmt.Errorf("%w: tombstone must be trashed and carry no content", ErrInvalidItem)
)

var (
	ErrInvalidIdentifier = fmt.Errorf("%w: identifier must be 32 uppercase hex characters", ErrInvalidKey)
	ErrEmptyWrappedKey   = fmt.Errorf("%w: wrapped key data is required", ErrInvalidKey)
	ErrEmptyValidation   = fmt.Errorf("%w: validation block is required", ErrInvalidKey)
	ErrInvalidSalt       = fmt.Errorf("%w: salt is required", ErrInvalidKey)
	ErrInvalidIterations = fmt.Errorf("%w: iteration count must be positive", ErrInvalidKey)
	ErrEmptyKeyList      = fmt.Errorf("%w: key file holds no keys", ErrInvalidKey)
	ErrDuplicateKey      = fmt.Errorf("%w: duplicate identifier", ErrInvalidKey)
	ErrUnknownDefaultKey = fmt.Errorf("%w: default identifier is not in the key list", ErrInvalidKey)
)
