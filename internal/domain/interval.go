package domain

import "time"

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints (a.End == b.Start) are not an overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Shift returns the interval translated by d.
func (iv Interval) Shift(d time.Duration) Interval {
	return Interval{Start: iv.Start.Add(d), End: iv.End.Add(d)}
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Equal reports exact equality of both endpoints.
func (iv Interval) Equal(other Interval) bool {
	return iv.Start.Equal(other.Start) && iv.End.Equal(other.End)
}

// IsZero reports whether both endpoints are unset.
func (iv Interval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}
