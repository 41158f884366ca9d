package reconcile

import (
	"context"
	"sync"
	"time"

	"ganttlane/internal/domain"
)

// DefaultDebounce is the commit coalescing window used when no delay is
// configured.
const DefaultDebounce = 400 * time.Millisecond

// CommitFunc pushes one interval to the authoritative store.
type CommitFunc func(ctx context.Context, id string, span domain.Interval) error

// Committer coalesces rapid reschedules of the same item into a single
// commit carrying only the latest interval. A new Request before the
// item's timer fires unconditionally clears and replaces both the timer
// and the payload, so intermediate intervals are never sent. A commit that
// already fired is never cancelled; its result is reconciled by tolerance
// compare on the next refresh, not applied blindly.
type Committer struct {
	delay     time.Duration
	commit    CommitFunc
	onFailure func(id string, err error)

	mu      sync.Mutex
	timers  map[string]*time.Timer
	payload map[string]domain.Interval
	stopped bool
}

// Option configures a Committer.
type Option func(*Committer)

// WithFailureHandler installs a callback invoked when a commit fails.
// There is no automatic retry and the item stays Pending either way; the
// handler exists so the surrounding application can surface the failure
// instead of letting it vanish silently.
func WithFailureHandler(fn func(id string, err error)) Option {
	return func(c *Committer) { c.onFailure = fn }
}

// NewCommitter creates a Committer firing commit after delay of quiet time
// per item. A non-positive delay falls back to DefaultDebounce.
func NewCommitter(delay time.Duration, commit CommitFunc, opts ...Option) *Committer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	c := &Committer{
		delay:   delay,
		commit:  commit,
		timers:  make(map[string]*time.Timer),
		payload: make(map[string]domain.Interval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request stages the latest interval for the item and restarts its
// debounce timer. The payload is read at fire time, after all
// supersessions, so the last requested interval always wins.
func (c *Committer) Request(id string, span domain.Interval) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.payload[id] = span
	if t, ok := c.timers[id]; ok {
		t.Stop()
	}
	c.timers[id] = time.AfterFunc(c.delay, func() { c.fire(id) })
}

// Flush fires the item's staged commit immediately, if any.
func (c *Committer) Flush(id string) {
	c.mu.Lock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
	}
	c.mu.Unlock()
	c.fire(id)
}

// FlushAll fires every staged commit immediately. Used on shutdown so a
// drag followed by a quick quit is not lost.
func (c *Committer) FlushAll() {
	c.mu.Lock()
	ids := make([]string, 0, len(c.payload))
	for id := range c.payload {
		ids = append(ids, id)
	}
	for _, t := range c.timers {
		t.Stop()
	}
	c.mu.Unlock()
	for _, id := range ids {
		c.fire(id)
	}
}

// Stop cancels all pending timers and rejects further requests. Staged
// payloads are discarded; call FlushAll first to push them out.
func (c *Committer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = make(map[string]*time.Timer)
	c.payload = make(map[string]domain.Interval)
}

func (c *Committer) fire(id string) {
	c.mu.Lock()
	span, ok := c.payload[id]
	delete(c.payload, id)
	delete(c.timers, id)
	c.mu.Unlock()
	if !ok {
		return
	}
	if err := c.commit(context.Background(), id, span); err != nil && c.onFailure != nil {
		c.onFailure(id, err)
	}
}
