// Package controller keeps one displayed profile synchronized with the
// remote profile service and layers an interactive edit flow on top of the
// last-known-good entity.
//
// # Overview
//
// The Controller is the single owner of canonical state for a bound
// identity: the current entity, the lifecycle state, the surfaced error,
// and the edit flag. The presentation layer never mutates any of this
// directly; it invokes operations and observes the immutable Snapshots the
// controller publishes.
//
// # State Machine
//
// The lifecycle is a closed set of states:
//
//	Idle ──bind──> Loading ──success──> Ready ──beginEdit──> Editing
//	                  │                   ^                     │
//	                  │ failure           │ cancelEdit          │ submitEdit
//	                  v                   │                     v
//	               Failed <──failure── Submitting <─────────────┘
//	                  │                   │
//	                  └──dismissError──── └──success──> Ready
//
// dismissError returns to Ready when an entity is still held and to Idle
// when there is none. Failed may hold a stale entity (failed refetch or
// update) or none at all (failed initial fetch).
//
// # Staleness Discard
//
// The central correctness property: the visible state always reflects the
// result of the last issued operation for the bound identity, never an
// earlier one that resolves later. Every issued operation captures the
// controller's generation counter; Bind and Refetch increment it. When a
// remote call settles, its captured generation is compared against the
// current one and mismatches are discarded silently. The underlying HTTP
// call is never hard-cancelled; only its effect is suppressed.
//
// This handles the classic rebind race:
//
//	Bind("u1")        issues fetch #1
//	Bind("u2")        issues fetch #2, supersedes #1
//	fetch #2 settles  applied, Ready shows u2
//	fetch #1 settles  generation mismatch, dropped on the floor
//
// # Guards
//
//   - SubmitEdit with no entity held is a silent no-op: no state change,
//     no remote call.
//   - SubmitEdit while an update is already in flight is a silent no-op:
//     at most one update per identity at a time, enforced here rather than
//     trusted to the presentation layer's disabled button.
//   - BeginEdit outside Ready is a no-op.
//
// # Publication
//
// Subscribe delivers the current snapshot synchronously and then every
// committed snapshot, in commit order, serialized by a publish lock.
// Callbacks run on the committing goroutine; they must not call back into
// the controller and should hand the snapshot off to their own queue.
// OnSaved hooks fire exactly once per successful update, after the commit
// has been published.
//
// # Concurrency Model
//
// Mutators hold a mutex for every transition, preserving the single-writer
// invariant under real parallelism. Remote calls run on goroutines spawned
// per operation; they re-enter the controller only through the apply
// methods, which take the same locks. Snapshots carry defensive copies of
// the entity so no caller ever aliases controller-owned memory.
//
// # Error Surface
//
// Remote failures are never fatal: every failure lands in Failed with a
// human-readable message and the controller stays fully usable via
// DismissError, Refetch, or Bind. There is no automatic retry; retry is a
// user-initiated operation.
package controller
