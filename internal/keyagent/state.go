package keyagent

// State is the lifecycle state of an Agent.
type State int

const (
	// Locked means the agent holds no keys.
	Locked State = iota
	// Unlocking means an Unlock call is collecting keys.
	Unlocking
	// Unlocked means at least one key is held.
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}
