package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Start: day(1), End: day(3)}
	b := Interval{Start: day(2), End: day(4)}
	c := Interval{Start: day(3), End: day(5)}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))

	// Half-open semantics: a ends exactly when c starts.
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))

	assert.True(t, b.Overlaps(c))
}

func TestInterval_ShiftAndDuration(t *testing.T) {
	iv := Interval{Start: day(1), End: day(3)}
	shifted := iv.Shift(48 * time.Hour)

	assert.Equal(t, day(3), shifted.Start)
	assert.Equal(t, day(5), shifted.End)
	assert.Equal(t, 48*time.Hour, iv.Duration())
	// Shift does not mutate the receiver.
	assert.Equal(t, day(1), iv.Start)
}

func TestInterval_Equal(t *testing.T) {
	iv := Interval{Start: day(1), End: day(3)}

	assert.True(t, iv.Equal(Interval{Start: day(1), End: day(3)}))
	assert.False(t, iv.Equal(Interval{Start: day(1), End: day(4)}))
	assert.True(t, Interval{}.IsZero())
	assert.False(t, iv.IsZero())
}
