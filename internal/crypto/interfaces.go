package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec is the keychain codec: password-based key derivation, the raw block
// cipher, and the self-describing encrypted blob format used for item
// content and wrapped master keys. It knows nothing about storage or items.
//
// Flow:
//
//	PwKey  = DeriveKey(password, salt, iterations)
//	Master = GenerateKey()
//	Data   = EncryptItemBlob(PwKey, Master)           (wrapped master key)
//	Check  = SealWithSalt(Master, Master, salt')       (validation block)
//	Blob   = EncryptItemBlob(Master, itemJSON)         (item content)
type Codec interface {
	// DeriveKey derives a 256-bit key from password and salt with PBKDF2.
	// iterations must be positive; the count is stored per key generation
	// so older vaults keep decrypting with the count they were created with.
	DeriveKey(password string, salt []byte, iterations int) ([]byte, error)

	// BlockEncrypt encrypts block-aligned plaintext with AES-CBC.
	// Key must be 16, 24 or 32 bytes and iv one block long.
	BlockEncrypt(key, plaintext, iv []byte) ([]byte, error)

	// BlockDecrypt is the inverse of BlockEncrypt.
	BlockDecrypt(key, ciphertext, iv []byte) ([]byte, error)

	// EncryptItemBlob seals plaintext under keyMaterial with a fresh random
	// salt. Two calls with the same input never return the same blob.
	EncryptItemBlob(keyMaterial, plaintext []byte) ([]byte, error)

	// SealWithSalt is EncryptItemBlob with a caller-supplied salt. The
	// result is deterministic for a given (keyMaterial, plaintext, salt).
	SealWithSalt(keyMaterial, plaintext, salt []byte) ([]byte, error)

	// DecryptItemBlob opens a blob produced by EncryptItemBlob. Every
	// failure, whether a wrong key or a damaged blob, is reported as
	// ErrDecryption.
	DecryptItemBlob(keyMaterial, blob []byte) ([]byte, error)

	// GenerateKey returns fresh random master-key material.
	GenerateKey() ([]byte, error)

	// GenerateSalt returns a fresh random salt.
	GenerateSalt() ([]byte, error)
}
