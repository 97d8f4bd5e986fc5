// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault-sync process: it opens the local and
// remote replicas, unlocks them with the master password and keeps them in
// sync, once or periodically.
package client
