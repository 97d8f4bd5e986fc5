package service

import "errors"

var (
	// ErrConflict is returned by a sync run with the FailOnConflict policy
	// when items changed on both replicas. The message lists their uuids.
	ErrConflict = errors.New("sync conflict")

	// ErrUnknownConflictPolicy is returned for a policy name that is not
	// supported.
	ErrUnknownConflictPolicy = errors.New("unknown conflict policy")
)
