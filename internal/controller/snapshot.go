package controller

import (
	"time"

	"github.com/facetdev/facet/internal/api"
)

// State identifies the controller's position in the fetch/edit/update
// lifecycle. Exactly one state holds at a time.
type State int

const (
	// StateIdle means no identity is bound yet (or a failure with no
	// entity was dismissed).
	StateIdle State = iota
	// StateLoading means a fetch is in flight. The entity may still be
	// present when the fetch is a refetch of already-displayed data.
	StateLoading
	// StateReady means an entity is present and no operation is in flight.
	StateReady
	// StateEditing means the edit overlay is active on a present entity.
	StateEditing
	// StateSubmitting means an update is in flight for the edited entity.
	StateSubmitting
	// StateFailed means the last operation errored. The entity may be
	// absent (failed initial fetch) or stale-present (failed refetch or
	// update).
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is the immutable view of controller state published to
// subscribers. Profile is nil when no entity is held; Err is empty when the
// last operation succeeded.
type Snapshot struct {
	State               State
	BoundID             string
	Profile             *api.Profile
	Loading             bool
	Editing             bool
	Err                 string
	LastUpdated         time.Time
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the service has been unreachable for
// multiple consecutive fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}
