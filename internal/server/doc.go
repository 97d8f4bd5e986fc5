// Package server runs the storage server: it listens on the configured
// address, serves the HTTP handler and shuts down gracefully on signals.
package server
