// Package reconcile keeps an optimistic local view of rescheduled work
// items until the authoritative store confirms the change. Every item is
// either Confirmed (display the store's interval) or Pending (display the
// staged override); the two never diverge permanently because each refresh
// is compared against the override under an injectable tolerance.
package reconcile

import (
	"sort"
	"sync"
	"time"

	"ganttlane/internal/domain"
)

// State tags an item's reconciliation status.
type State string

const (
	// StateConfirmed means the displayed interval is the authoritative one.
	StateConfirmed State = "confirmed"
	// StatePending means a local override is displayed while the commit is
	// in flight (or has failed and is waiting for a fresh drag or Clear).
	StatePending State = "pending"
)

// Tolerance reports whether two instants are close enough to count as the
// same time. It absorbs clock/timezone normalization done by the store.
type Tolerance func(a, b time.Time) bool

// SameCalendarDay treats two instants as equal when they fall on the same
// calendar day in loc. This is the default: stores that round to midnight
// in their own zone still confirm a sub-day drag.
func SameCalendarDay(loc *time.Location) Tolerance {
	if loc == nil {
		loc = time.UTC
	}
	return func(a, b time.Time) bool {
		ay, am, ad := a.In(loc).Date()
		by, bm, bd := b.In(loc).Date()
		return ay == by && am == bm && ad == bd
	}
}

// WithinEpsilon treats two instants as equal when they differ by at most eps.
func WithinEpsilon(eps time.Duration) Tolerance {
	return func(a, b time.Time) bool {
		d := a.Sub(b)
		if d < 0 {
			d = -d
		}
		return d <= eps
	}
}

// Reconciler tracks per-item interval overrides. All methods are safe for
// concurrent use; the zero map state means everything is Confirmed.
type Reconciler struct {
	mu        sync.Mutex
	tol       Tolerance
	overrides map[string]domain.Interval
}

// New creates a Reconciler with the given tolerance. A nil tolerance falls
// back to same-calendar-day in UTC.
func New(tol Tolerance) *Reconciler {
	if tol == nil {
		tol = SameCalendarDay(time.UTC)
	}
	return &Reconciler{tol: tol, overrides: make(map[string]domain.Interval)}
}

// Stage records a proposed interval for the item. It returns true when the
// proposal differs materially from the interval at drag-start (beyond
// tolerance on either endpoint), meaning a commit should be issued.
// An immaterial drag changes nothing and returns false. A later Stage
// fully supersedes an earlier one.
func (r *Reconciler) Stage(id string, original, proposed domain.Interval) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tol(original.Start, proposed.Start) && r.tol(original.End, proposed.End) {
		return false
	}
	r.overrides[id] = proposed
	return true
}

// State returns the item's reconciliation state.
func (r *Reconciler) State(id string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.overrides[id]; ok {
		return StatePending
	}
	return StateConfirmed
}

// Observe compares a refreshed authoritative interval against the item's
// override. Within tolerance the override is dropped — the item returns to
// Confirmed — and Observe reports true. Otherwise the override is kept and
// the optimistic value keeps winning (the write is presumed still in
// flight, or to have failed).
func (r *Reconciler) Observe(id string, authoritative domain.Interval) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	override, ok := r.overrides[id]
	if !ok {
		return false
	}
	if r.tol(override.Start, authoritative.Start) && r.tol(override.End, authoritative.End) {
		delete(r.overrides, id)
		return true
	}
	return false
}

// ObserveAll runs Observe over a refreshed collection and returns the ids
// that transitioned back to Confirmed, sorted for deterministic handling.
func (r *Reconciler) ObserveAll(spans map[string]domain.Interval) []string {
	var confirmed []string
	for id, span := range spans {
		if r.Observe(id, span) {
			confirmed = append(confirmed, id)
		}
	}
	sort.Strings(confirmed)
	return confirmed
}

// Overlay returns the display interval for the item: the staged override
// while Pending, otherwise the authoritative interval unchanged.
func (r *Reconciler) Overlay(id string, authoritative domain.Interval) domain.Interval {
	r.mu.Lock()
	defer r.mu.Unlock()
	if override, ok := r.overrides[id]; ok {
		return override
	}
	return authoritative
}

// Pending returns a copy of the in-flight override set, keyed by item id.
func (r *Reconciler) Pending() map[string]domain.Interval {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Interval, len(r.overrides))
	for id, span := range r.overrides {
		out[id] = span
	}
	return out
}

// Clear drops the item's override without confirmation. This is the
// caller's explicit abandon path for a commit that failed for good.
func (r *Reconciler) Clear(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, id)
}
