// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle of a runnable client application.
type Client interface {
	// Run blocks until the work is done or ctx is cancelled.
	Run(ctx context.Context) error
	// Close releases every resource the client holds.
	Close()
}
