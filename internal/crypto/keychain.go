// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// Blob layout: magic ‖ salt ‖ ciphertext ‖ tag.
const (
	blobMagic   = "KCHAIN01"
	SaltSize    = 16
	tagSize     = sha256.Size
	blobHeader  = len(blobMagic) + SaltSize
	blobMinSize = blobHeader + aes.BlockSize + tagSize

	// blobInfo domain-separates item blob keys from any other use of the
	// same key material.
	blobInfo = "keychain-vault item blob v1"

	blobKeySize = 32
	blobMACSize = 32
)

// keyChainCodec is the private implementation of [Codec].
type keyChainCodec struct {
	// derivedKeyLen is the PBKDF2 output length.
	derivedKeyLen int
	// masterKeyLen is the length of generated master keys.
	masterKeyLen int
	// random is the entropy source for salts and keys.
	random io.Reader
}

// NewCodec constructs a [Codec] with:
//   - PBKDF2-HMAC-SHA1 producing 32-byte password keys;
//   - 32-byte master keys;
//   - crypto/rand as entropy source.
func NewCodec() Codec {
	return &keyChainCodec{
		derivedKeyLen: 32,
		masterKeyLen:  32,
		random:        rand.Reader,
	}
}

// DeriveKey implements [Codec].
func (k *keyChainCodec) DeriveKey(password string, salt []byte, iterations int) ([]byte, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: iteration count must be positive, got %d", ErrValidation, iterations)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrValidation)
	}
	return pbkdf2.Key([]byte(password), salt, iterations, k.derivedKeyLen, sha1.New), nil
}

// BlockEncrypt implements [Codec].
func (k *keyChainCodec) BlockEncrypt(key, plaintext, iv []byte) ([]byte, error) {
	block, err := newBlock(key, iv, len(plaintext))
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plaintext)
	return out, nil
}

// BlockDecrypt implements [Codec].
func (k *keyChainCodec) BlockDecrypt(key, ciphertext, iv []byte) ([]byte, error) {
	block, err := newBlock(key, iv, len(ciphertext))
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

// EncryptItemBlob implements [Codec].
func (k *keyChainCodec) EncryptItemBlob(keyMaterial, plaintext []byte) ([]byte, error) {
	salt, err := k.GenerateSalt()
	if err != nil {
		return nil, err
	}
	return k.SealWithSalt(keyMaterial, plaintext, salt)
}

// SealWithSalt implements [Codec].
func (k *keyChainCodec) SealWithSalt(keyMaterial, plaintext, salt []byte) ([]byte, error) {
	if len(keyMaterial) == 0 {
		return nil, fmt.Errorf("%w: empty key material", ErrValidation)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrValidation, SaltSize, len(salt))
	}

	encKey, iv, macKey, err := blobKeys(keyMaterial, salt)
	if err != nil {
		return nil, err
	}

	ciphertext, err := k.BlockEncrypt(encKey, pad(plaintext), iv)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, blobHeader+len(ciphertext)+tagSize)
	blob = append(blob, blobMagic...)
	blob = append(blob, salt...)
	blob = append(blob, ciphertext...)
	return append(blob, blobTag(macKey, blob)...), nil
}

// DecryptItemBlob implements [Codec].
func (k *keyChainCodec) DecryptItemBlob(keyMaterial, blob []byte) ([]byte, error) {
	if len(keyMaterial) == 0 {
		return nil, newDecryptionError("empty key material")
	}
	if len(blob) < blobMinSize {
		return nil, newDecryptionError("blob truncated")
	}
	if !bytes.Equal(blob[:len(blobMagic)], []byte(blobMagic)) {
		return nil, newDecryptionError("bad header magic")
	}

	body, tag := blob[:len(blob)-tagSize], blob[len(blob)-tagSize:]
	salt := body[len(blobMagic):blobHeader]
	ciphertext := body[blobHeader:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, newDecryptionError("ciphertext not block aligned")
	}

	encKey, iv, macKey, err := blobKeys(keyMaterial, salt)
	if err != nil {
		return nil, newDecryptionError("key expansion failed")
	}

	// A tag mismatch almost always means the wrong key.
	if !hmac.Equal(tag, blobTag(macKey, body)) {
		return nil, newDecryptionError("authentication tag mismatch")
	}

	padded, err := k.BlockDecrypt(encKey, ciphertext, iv)
	if err != nil {
		return nil, newDecryptionError("block decrypt failed")
	}

	plaintext, ok := unpad(padded)
	if !ok {
		return nil, newDecryptionError("invalid padding")
	}
	return plaintext, nil
}

// GenerateKey implements [Codec].
func (k *keyChainCodec) GenerateKey() ([]byte, error) {
	key := make([]byte, k.masterKeyLen)
	if _, err := io.ReadFull(k.random, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// GenerateSalt implements [Codec].
func (k *keyChainCodec) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.random, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// BlobSalt returns the salt embedded in blob.
func BlobSalt(blob []byte) ([]byte, error) {
	if len(blob) < blobHeader || !bytes.Equal(blob[:len(blobMagic)], []byte(blobMagic)) {
		return nil, fmt.Errorf("%w: not a keychain blob", ErrValidation)
	}
	salt := make([]byte, SaltSize)
	copy(salt, blob[len(blobMagic):blobHeader])
	return salt, nil
}

func newBlock(key, iv []byte, n int) (cipher.Block, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrCrypto, block.BlockSize(), len(iv))
	}
	if n%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: input length %d is not a multiple of the block size", ErrCrypto, n)
	}
	return block, nil
}

// blobKeys expands key material and salt into the AES key, the CBC iv and
// the HMAC key of one blob.
func blobKeys(keyMaterial, salt []byte) (encKey, iv, macKey []byte, err error) {
	okm := make([]byte, blobKeySize+aes.BlockSize+blobMACSize)
	if _, err = io.ReadFull(hkdf.New(sha256.New, keyMaterial, salt, []byte(blobInfo)), okm); err != nil {
		return nil, nil, nil, fmt.Errorf("expand blob keys: %w", err)
	}
	return okm[:blobKeySize], okm[blobKeySize : blobKeySize+aes.BlockSize], okm[blobKeySize+aes.BlockSize:], nil
}

func blobTag(macKey, data []byte) []byte {
	m := hmac.New(sha256.New, macKey)
	m.Write(data)
	return m.Sum(nil)
}

// pad applies PKCS#7 padding.
func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad strips PKCS#7 padding, reporting false if it is malformed.
func unpad(data []byte) ([]byte, bool) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
