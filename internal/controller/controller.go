package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/facetdev/facet/internal/api"
)

// Controller owns the canonical state for one displayed profile and
// arbitrates concurrent fetch/update operations against the service.
//
// All transitions are serialized through the controller (single writer).
// Results of remote calls are applied only when their generation token
// still matches the controller's: a rebind or refetch bumps the
// generation, so older in-flight calls settle into silence instead of
// clobbering newer state. There is no hard cancellation of the underlying
// HTTP call.
type Controller struct {
	service api.ProfileService

	// pubMu serializes commit+publish so subscribers observe snapshots
	// in commit order. Always acquired before mu.
	pubMu sync.Mutex
	mu    sync.Mutex

	id         string
	gen        uint64
	state      State
	profile    *api.Profile
	errMsg     string
	editing    bool
	fetching   bool
	submitting bool
	failures   int
	updatedAt  time.Time

	subs    map[int]func(Snapshot)
	nextSub int
	onSaved []func(api.Profile)
}

// New builds a Controller bound to no identity.
func New(service api.ProfileService) *Controller {
	return &Controller{
		service: service,
		state:   StateIdle,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to receive the current snapshot synchronously and
// every committed snapshot afterwards, in commit order. The returned func
// cancels the subscription. Callbacks run on the committing goroutine and
// must not call back into the controller; hand snapshots off to your own
// queue (the UI bridges through its program's message loop).
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.pubMu.Lock()
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	snap := c.snapshotLocked()
	c.mu.Unlock()
	fn(snap)
	c.pubMu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// OnSaved registers fn to be invoked exactly once per successful update,
// after the new entity has been committed and published.
func (c *Controller) OnSaved(fn func(api.Profile)) {
	c.mu.Lock()
	c.onSaved = append(c.onSaved, fn)
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Bind points the controller at an identity and issues a fetch for it. Any
// operation still in flight for a previous binding is abandoned: its result
// will fail the generation check at apply time. Binding the same identity
// again refetches it.
func (c *Controller) Bind(ctx context.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	c.pubMu.Lock()
	c.mu.Lock()
	c.id = id
	c.gen++
	gen := c.gen
	c.profile = nil
	c.errMsg = ""
	c.editing = false
	c.submitting = false
	c.fetching = true
	c.failures = 0
	c.state = StateLoading
	c.publishLocked()

	go c.fetch(ctx, gen, id)
}

// Refetch re-issues the fetch for the currently bound identity. The held
// entity stays visible while the fetch is in flight. No-op when nothing is
// bound.
func (c *Controller) Refetch(ctx context.Context) {
	c.pubMu.Lock()
	c.mu.Lock()
	if c.id == "" {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	id := c.id
	c.errMsg = ""
	c.submitting = false
	c.fetching = true
	c.state = StateLoading
	c.publishLocked()

	go c.fetch(ctx, gen, id)
}

// BeginEdit activates the edit overlay. Only valid from Ready; no network
// effect. The draft itself is owned by the presentation layer.
func (c *Controller) BeginEdit() {
	c.pubMu.Lock()
	c.mu.Lock()
	if c.state != StateReady || c.profile == nil {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	c.editing = true
	c.state = StateEditing
	c.publishLocked()
}

// CancelEdit leaves edit mode without touching the entity.
func (c *Controller) CancelEdit() {
	c.pubMu.Lock()
	c.mu.Lock()
	if !c.editing || c.submitting {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	c.editing = false
	c.state = StateReady
	c.publishLocked()
}

// SubmitEdit sends the finished draft to the service. It is a silent no-op
// when no entity is held (nothing to update) or while another update is
// already in flight (at most one update per identity at a time).
func (c *Controller) SubmitEdit(ctx context.Context, patch api.Patch) {
	c.pubMu.Lock()
	c.mu.Lock()
	if c.profile == nil || c.submitting {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	gen := c.gen
	id := c.id
	c.submitting = true
	c.errMsg = ""
	c.state = StateSubmitting
	c.publishLocked()

	go c.update(ctx, gen, id, patch)
}

// DismissError clears a surfaced failure. With an entity still held the
// controller returns to Ready; with nothing held it returns to the empty
// Idle state. The bound identity is retained so Refetch keeps working.
func (c *Controller) DismissError() {
	c.pubMu.Lock()
	c.mu.Lock()
	if c.errMsg == "" && c.state != StateFailed {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	c.errMsg = ""
	if c.profile != nil {
		c.state = StateReady
	} else {
		c.state = StateIdle
	}
	c.publishLocked()
}

func (c *Controller) fetch(ctx context.Context, gen uint64, id string) {
	profile, err := c.service.FetchProfile(ctx, id)
	c.applyFetch(gen, profile, err)
}

func (c *Controller) update(ctx context.Context, gen uint64, id string, patch api.Patch) {
	profile, err := c.service.UpdateProfile(ctx, id, patch)
	c.applyUpdate(gen, profile, err)
}

// applyFetch commits a settled fetch. Results from a superseded generation
// are discarded without touching state.
func (c *Controller) applyFetch(gen uint64, profile *api.Profile, err error) {
	c.pubMu.Lock()
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	c.fetching = false
	c.updatedAt = time.Now()

	if err != nil {
		// Initial fetch failure leaves no entity; a failed refetch keeps
		// the last-known-good entity visible as stale.
		c.errMsg = failureMessage("fetch", err)
		c.failures++
		c.editing = false
		c.state = StateFailed
		c.publishLocked()
		return
	}

	c.profile = profile
	c.errMsg = ""
	c.failures = 0
	if c.editing {
		c.state = StateEditing
	} else {
		c.state = StateReady
	}
	c.publishLocked()
}

// applyUpdate commits a settled update. A rebind issued while the update
// was in flight supersedes it, so the result is discarded.
func (c *Controller) applyUpdate(gen uint64, profile *api.Profile, err error) {
	c.pubMu.Lock()
	c.mu.Lock()
	if gen != c.gen || !c.submitting {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return
	}
	c.submitting = false
	c.updatedAt = time.Now()

	if err != nil {
		// The entity held before the attempt stays untouched. Edit mode
		// is exited; the user dismisses the error and re-enters edit.
		c.errMsg = failureMessage("update", err)
		c.editing = false
		c.state = StateFailed
		c.publishLocked()
		return
	}

	// Wholesale replacement with the server's authoritative entity, never
	// a field merge with the submitted patch.
	c.profile = profile
	c.errMsg = ""
	c.failures = 0
	c.editing = false
	c.state = StateReady

	hooks := make([]func(api.Profile), len(c.onSaved))
	copy(hooks, c.onSaved)
	saved := *profile

	c.publishLocked()

	// Saved hooks fire after subscribers have seen the committed state.
	c.pubMu.Lock()
	for _, fn := range hooks {
		fn(saved)
	}
	c.pubMu.Unlock()
}

// publishLocked builds a snapshot, releases mu, notifies subscribers, and
// releases pubMu. Callers must hold pubMu then mu.
func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
	c.pubMu.Unlock()
}

// snapshotLocked copies state into an independent Snapshot. mu must be held.
func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:               c.state,
		BoundID:             c.id,
		Loading:             c.fetching || c.submitting,
		Editing:             c.editing,
		Err:                 c.errMsg,
		LastUpdated:         c.updatedAt,
		ConsecutiveFailures: c.failures,
	}
	if c.profile != nil {
		dup := *c.profile
		snap.Profile = &dup
	}
	return snap
}

// failureMessage derives the user-facing error string for a failed
// operation (op is "fetch" or "update"). Structured service failures use
// their status text, other errors surface their message verbatim, and a
// messageless failure falls back to a generic string.
func failureMessage(op string, err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusText != "" {
		return fmt.Sprintf("Failed to %s user: %s", op, apiErr.StatusText)
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fmt.Sprintf("Failed to %s user", op)
}
