// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the byte-storage abstraction a vault is rooted
// at.
//
// The primary abstraction is [Storage], a flat namespace of slash-separated
// relative paths holding opaque bytes. Three variants ship with the package
// and are selected from configuration by [Open]:
//   - fs: a local directory, writes are atomic (temp file + rename);
//   - memory: a map, for tests and ephemeral replicas;
//   - http: a remote storage server reached with resty.
//
// Errors are reported as the sentinels in errors.go so that callers can use
// [errors.Is] regardless of the variant (e.g. [ErrNotFound] for a missing
// file, [ErrIO] for any other backend failure).
package adapter

import (
	"context"

	"github.com/MKhiriev/keychain-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// Storage is the byte-storage contract a vault is rooted at. Paths are
// relative, slash-separated and must not contain "." or ".." segments.
type Storage interface {
	// Read returns the content of the file at path. Returns [ErrNotFound]
	// (wrapped) if the file does not exist.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write replaces the content of the file at path, creating parent
	// directories as needed. A reader never observes a partially written
	// file.
	Write(ctx context.Context, path string, data []byte) error

	// List returns the entries directly under dir, sorted by name. The
	// root is listed with dir == "". Returns [ErrNotFound] (wrapped) if dir
	// does not exist.
	List(ctx context.Context, dir string) ([]models.FileInfo, error)

	// Remove deletes the file at path. Returns [ErrNotFound] (wrapped) if
	// the file does not exist.
	Remove(ctx context.Context, path string) error
}
