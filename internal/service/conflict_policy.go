package service

import (
	"fmt"

	"github.com/MKhiriev/keychain-vault/internal/config"
)

// ConflictPolicy decides what a sync run does with items changed on both
// replicas.
type ConflictPolicy int

const (
	// PreferNewest keeps the revision with the later updatedAt. Ties go to
	// the remote.
	PreferNewest ConflictPolicy = iota

	// FailOnConflict leaves both sides untouched and reports ErrConflict.
	FailOnConflict
)

// ParseConflictPolicy maps a configuration value to a ConflictPolicy. An
// empty name selects PreferNewest.
func ParseConflictPolicy(name string) (ConflictPolicy, error) {
	switch name {
	case "", config.ConflictPolicyNewest:
		return PreferNewest, nil
	case config.ConflictPolicyFail:
		return FailOnConflict, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConflictPolicy, name)
	}
}

func (p ConflictPolicy) String() string {
	switch p {
	case PreferNewest:
		return config.ConflictPolicyNewest
	case FailOnConflict:
		return config.ConflictPolicyFail
	default:
		return fmt.Sprintf("ConflictPolicy(%d)", int(p))
	}
}
