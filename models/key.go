// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// KeyRecord is one wrapped master-key generation as stored in the vault's
// key file. Data and Validation are codec blobs; Salt and Iterations
// parametrise the password-based key derivation for this generation.
type KeyRecord struct {
	// Identifier is the key id referenced by items (32 uppercase hex chars).
	Identifier string `json:"identifier"`

	// Level is the security level label of the generation.
	Level string `json:"level"`

	// Data is the master key wrapped under the password-derived key.
	Data []byte `json:"data"`

	// Validation is the master key sealed under itself; it proves that an
	// unwrapped candidate key is the right one.
	Validation []byte `json:"validation"`

	// Salt is the password-derivation salt of this generation.
	Salt []byte `json:"salt"`

	// Iterations is the PBKDF2 iteration count used for this generation.
	Iterations int `json:"iterations"`
}

// KeyFile is the content of the vault-level key file.
type KeyFile struct {
	// List holds every key generation of the vault.
	List []KeyRecord `json:"list"`

	// Default is the identifier used to encrypt newly created items.
	Default string `json:"default"`
}

// DefaultSecurityLevel is the level label written for new key generations.
const DefaultSecurityLevel = "SL5"
