package scheduler

import (
	"time"

	"ganttlane/internal/domain"
)

// DurationPolicy controls how items with missing or degenerate dates are
// widened into a well-defined display interval. It is injected by the
// caller; lane assignment itself is agnostic to defaulting rules.
type DurationPolicy struct {
	// Unit is the minimal schedulable unit. Every effective interval is
	// at least one Unit long.
	Unit time.Duration

	// NoStartSpan is the synthesized span, in units, for an item that
	// never had a start date recorded.
	NoStartSpan int

	// NoDueSpan is the span, in units, for an item with an explicit start
	// but no due date.
	NoDueSpan int
}

// DefaultPolicy returns the board defaults: day units, a week-long bar for
// undated items, a single day for open-ended ones.
func DefaultPolicy() DurationPolicy {
	return DurationPolicy{Unit: 24 * time.Hour, NoStartSpan: 7, NoDueSpan: 1}
}

func (p DurationPolicy) unit() time.Duration {
	if p.Unit <= 0 {
		return 24 * time.Hour
	}
	return p.Unit
}

func (p DurationPolicy) spanOf(units, fallback int) time.Duration {
	if units <= 0 {
		units = fallback
	}
	return time.Duration(units) * p.unit()
}

// Span resolves an item to its effective half-open interval [start, end).
// Items with no recorded start are anchored at the supplied reference
// instant. Degenerate intervals (zero length, due before start) are
// normalized to one unit; bad date data never fails.
func (p DurationPolicy) Span(item domain.WorkItem, anchor time.Time) domain.Interval {
	if !item.HasStart() {
		if item.HasDue() {
			// Due only: end the bar at the due date, working back over
			// the no-start span.
			end := *item.Due
			return p.normalize(domain.Interval{
				Start: end.Add(-p.spanOf(p.NoStartSpan, 7)),
				End:   end,
			})
		}
		return p.normalize(domain.Interval{
			Start: anchor,
			End:   anchor.Add(p.spanOf(p.NoStartSpan, 7)),
		})
	}

	start := *item.Start
	if !item.HasDue() {
		return p.normalize(domain.Interval{
			Start: start,
			End:   start.Add(p.spanOf(p.NoDueSpan, 1)),
		})
	}
	return p.normalize(domain.Interval{Start: start, End: *item.Due})
}

// normalize widens degenerate intervals to a single unit.
func (p DurationPolicy) normalize(iv domain.Interval) domain.Interval {
	if !iv.End.After(iv.Start) {
		iv.End = iv.Start.Add(p.unit())
	}
	return iv
}
