package vault

import "errors"

// Sentinel errors returned by the vault. Callers should match them with
// [errors.Is]. Decryption failures are reported as crypto.ErrDecryption and
// storage failures pass through as the adapter sentinels.
var (
	// ErrItemNotFound is returned when an item or the requested revision
	// does not exist, or the item is a tombstone.
	ErrItemNotFound = errors.New("item not found")

	// ErrLockedStore is returned when content is requested without the key
	// the item refers to.
	ErrLockedStore = errors.New("vault is locked")

	// ErrInvalidVault is returned when the key file is missing or
	// malformed.
	ErrInvalidVault = errors.New("invalid vault")

	// ErrVaultExists is returned by Create when the storage already holds a
	// key file.
	ErrVaultExists = errors.New("vault already exists")
)
