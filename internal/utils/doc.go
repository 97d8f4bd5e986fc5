// Package utils provides small helpers shared by the storage server and its
// clients: keyed payload hashing, JSON responses, the resty client wrapper
// and vault identifier generation.
package utils
