package server

import "context"

// Server defines the lifecycle of the storage server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then shuts down.
	RunServer()
	// Serve serves until ctx is cancelled, then shuts down gracefully.
	Serve(ctx context.Context) error
	// Shutdown gracefully stops the server.
	Shutdown()
}
