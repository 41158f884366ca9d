package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScale_TimeDelta(t *testing.T) {
	s := Scale{Granularity: GranDay, CellsPerUnit: 4}

	assert.Equal(t, 24*time.Hour, s.TimeDelta(4))
	assert.Equal(t, -48*time.Hour, s.TimeDelta(-8))
	assert.Equal(t, 6*time.Hour, s.TimeDelta(1), "sub-unit deltas stay proportional")
	assert.Zero(t, s.TimeDelta(0))
}

func TestScale_Cells(t *testing.T) {
	s := Scale{Granularity: GranDay, CellsPerUnit: 4}

	assert.Equal(t, 12, s.Cells(3*24*time.Hour))
	assert.Equal(t, 2, s.Cells(12*time.Hour))
}

func TestScale_RoundTripsPerGranularity(t *testing.T) {
	table := DefaultTable()
	for _, g := range []Granularity{GranHour, GranDay, GranWeek, GranMonth, GranQuarter} {
		s := table.Scale(g)
		unit := g.UnitDuration()
		cells := s.Cells(unit)
		assert.InDelta(t, float64(unit), float64(s.TimeDelta(cells)), float64(unit)/2,
			"granularity %s: one unit must survive a cells round trip", g)
	}
}

func TestScale_ZeroCellsPerUnitFallsBack(t *testing.T) {
	s := Scale{Granularity: GranDay}

	assert.Equal(t, 24*time.Hour, s.TimeDelta(1))
}

func TestTable_MissingGranularityFallsBack(t *testing.T) {
	table := Table{GranDay: 6}

	assert.Equal(t, 6.0, table.Scale(GranDay).CellsPerUnit)
	assert.Equal(t, DefaultTable()[GranWeek], table.Scale(GranWeek).CellsPerUnit)
}

func TestGranularity_Zoom(t *testing.T) {
	assert.Equal(t, GranWeek, GranDay.Zoom(1))
	assert.Equal(t, GranHour, GranDay.Zoom(-1))
	assert.Equal(t, GranHour, GranHour.Zoom(-1), "clamped at the fine end")
	assert.Equal(t, GranQuarter, GranQuarter.Zoom(1), "clamped at the coarse end")
	assert.Equal(t, GranQuarter, GranDay.Zoom(10))
}

func TestGranularity_UnitDuration(t *testing.T) {
	assert.Equal(t, time.Hour, GranHour.UnitDuration())
	assert.Equal(t, 24*time.Hour, GranDay.UnitDuration())
	assert.Equal(t, 7*24*time.Hour, GranWeek.UnitDuration())
	assert.Equal(t, 24*time.Hour, Granularity("bogus").UnitDuration(), "unknown falls back to day")
}
