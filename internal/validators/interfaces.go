// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault records before they are persisted.
//
// Two validators are provided:
//   - ItemValidator for models.ItemFile (item files written on save);
//   - KeyValidator for models.KeyRecord and models.KeyFile (the key file).
//
// Both accept an optional list of field names restricting validation to a
// subset of checks; with no names a default set runs.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
