package keyagent

import "errors"

var (
	// ErrKeyNotFound is returned when the agent holds no key with the
	// requested identifier.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnlockInProgress is returned by Unlock while another Unlock on the
	// same agent has not finished.
	ErrUnlockInProgress = errors.New("unlock already in progress")

	// ErrNoKeys is returned by Unlock when the unlock function succeeded but
	// produced no keys.
	ErrNoKeys = errors.New("no keys to install")
)
