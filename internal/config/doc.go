// Package config provides configuration loading, merging, and validation
// facilities for the vault sync client and the storage server.
//
// Configuration is assembled from multiple sources. For every field the
// first source that sets a non-zero value wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file (path taken from -c/-config or CONFIG)
//
// The entry points are [GetSyncConfig] for cmd/vault-sync and
// [GetServerConfig] for cmd/vfs-server. Both return a view over the merged
// [StructuredConfig] holding only the fields that program needs.
package config
