package models

// RevisionPair is the last revision pair both replicas agreed on for one
// item: Local is the revision in this vault, External the revision in the
// remote replica.
type RevisionPair struct {
	Local    string `json:"local"`
	External string `json:"external"`
}

// IsZero reports whether no agreement was recorded.
func (p RevisionPair) IsZero() bool {
	return p.Local == "" && p.External == ""
}

// SyncAction is one planned step for a single item.
type SyncAction struct {
	UUID string

	// Local and Remote are the current states on each side. A zero
	// state (empty UUID) means the item does not exist on that side.
	Local  ItemState
	Remote ItemState

	// Last is the recorded agreement, zero if the item was never synced.
	Last RevisionPair
}

// SyncPlan groups the actions required to reconcile a local vault with one
// remote replica.
type SyncPlan struct {
	// Pull lists items whose remote revision must be copied locally.
	Pull []SyncAction

	// Push lists items whose local revision must be copied to the remote.
	Push []SyncAction

	// Conflicts lists items changed on both sides to different revisions.
	Conflicts []SyncAction

	// Record lists items that already agree but whose agreement is not
	// recorded yet.
	Record []SyncAction
}

// Empty reports whether the plan contains no actions.
func (p SyncPlan) Empty() bool {
	return len(p.Pull) == 0 && len(p.Push) == 0 && len(p.Conflicts) == 0 && len(p.Record) == 0
}

// SyncResult summarises an executed sync plan.
type SyncResult struct {
	Pulled    int      `json:"pulled"`
	Pushed    int      `json:"pushed"`
	Resolved  int      `json:"resolved"`
	Recorded  int      `json:"recorded"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// FileInfo describes one entry returned by a storage listing.
type FileInfo struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}
