package drag

import (
	"math"
	"time"
)

// Granularity selects the active display time scale.
type Granularity string

const (
	GranHour    Granularity = "hour"
	GranDay     Granularity = "day"
	GranWeek    Granularity = "week"
	GranMonth   Granularity = "month"
	GranQuarter Granularity = "quarter"
)

var granOrder = []Granularity{GranHour, GranDay, GranWeek, GranMonth, GranQuarter}

// ValidGranularities is the canonical set of accepted granularity strings.
var ValidGranularities = map[string]bool{
	"hour": true, "day": true, "week": true, "month": true, "quarter": true,
}

// UnitDuration returns the duration of one unit at this granularity.
// Month and quarter use fixed civil approximations; the reconcile
// tolerance absorbs the resulting sub-day drift.
func (g Granularity) UnitDuration() time.Duration {
	switch g {
	case GranHour:
		return time.Hour
	case GranWeek:
		return 7 * 24 * time.Hour
	case GranMonth:
		return 30 * 24 * time.Hour
	case GranQuarter:
		return 91 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Zoom returns the granularity delta steps away in the fixed
// hour→day→week→month→quarter order, clamped at both ends.
func (g Granularity) Zoom(delta int) Granularity {
	idx := 1 // day
	for i, o := range granOrder {
		if o == g {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(granOrder) {
		idx = len(granOrder) - 1
	}
	return granOrder[idx]
}

// Scale converts horizontal display distance to time. The display cell is
// a terminal column here; a graphical frontend would feed pixels.
type Scale struct {
	Granularity Granularity

	// CellsPerUnit is how many display cells one unit occupies.
	CellsPerUnit float64
}

func (s Scale) cellsPerUnit() float64 {
	if s.CellsPerUnit <= 0 {
		return 1
	}
	return s.CellsPerUnit
}

// TimeDelta converts a horizontal cell delta to a time delta.
func (s Scale) TimeDelta(cells int) time.Duration {
	units := float64(cells) / s.cellsPerUnit()
	return time.Duration(units * float64(s.Granularity.UnitDuration()))
}

// Cells converts a duration to a cell count, rounded to nearest.
func (s Scale) Cells(d time.Duration) int {
	units := float64(d) / float64(s.Granularity.UnitDuration())
	return int(math.Round(units * s.cellsPerUnit()))
}

// Table is the per-granularity cell-width configuration, supplied by the
// application's config layer.
type Table map[Granularity]float64

// DefaultTable returns cell widths tuned for a terminal board.
func DefaultTable() Table {
	return Table{
		GranHour:    3,
		GranDay:     4,
		GranWeek:    9,
		GranMonth:   12,
		GranQuarter: 14,
	}
}

// Scale resolves the scale for a granularity, falling back to the default
// table when the granularity is missing from this one.
func (t Table) Scale(g Granularity) Scale {
	if w, ok := t[g]; ok && w > 0 {
		return Scale{Granularity: g, CellsPerUnit: w}
	}
	return Scale{Granularity: g, CellsPerUnit: DefaultTable()[g]}
}
