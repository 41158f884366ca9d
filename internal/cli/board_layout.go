package cli

import (
	"time"

	"ganttlane/internal/domain"
	"ganttlane/internal/drag"
	"ganttlane/internal/reconcile"
	"ganttlane/internal/scheduler"
	"ganttlane/internal/service"
)

// bar is one rendered item bar with its cell geometry.
type bar struct {
	item    domain.WorkItem
	span    domain.Interval
	group   string
	row     int // board row index within the lane area
	x       int // left cell
	width   int
	pending bool
}

// boardLayout is the computed geometry of the lane area: every bar's cell
// rectangle plus the vertical group bands used for drag reassignment.
type boardLayout struct {
	origin   time.Time // time at cell 0
	scale    drag.Scale
	rowsUsed int

	// groupRows maps board row index to the group section it belongs to,
	// "" for group header rows and gaps.
	bars  []bar
	bands []drag.GroupBand

	// headerRows marks rows occupied by group name headers.
	headerRows map[int]string
}

// buildLayout packs items into per-group lanes and assigns cell geometry.
// Pending overrides from the reconciler replace the authoritative interval
// before packing, so an in-flight drag re-packs the lanes immediately.
func buildLayout(
	items []*domain.WorkItem,
	rec *reconcile.Reconciler,
	mode domain.GroupMode,
	policy scheduler.DurationPolicy,
	anchor time.Time,
	scale drag.Scale,
) *boardLayout {
	l := &boardLayout{
		scale:      scale,
		headerRows: make(map[int]string),
	}

	// Effective display interval per item: policy span with any staged
	// override layered on top.
	effective := make(map[string]domain.Interval, len(items))
	pending := make(map[string]bool, len(items))
	for _, it := range items {
		base := policy.Span(*it, anchor)
		eff := rec.Overlay(it.ID, base)
		effective[it.ID] = eff
		pending[it.ID] = rec.State(it.ID) == reconcile.StatePending
	}

	l.origin = originFor(items, effective, anchor, scale.Granularity)

	row := 0
	for _, g := range service.GroupItems(items, mode) {
		top := row
		if mode != domain.GroupNone {
			l.headerRows[row] = g.Name
			row++
		}

		// Materialize the effective interval onto copies so lane packing
		// sees exactly what will be drawn.
		packed := make([]domain.WorkItem, len(g.Items))
		for i, it := range g.Items {
			w := *it
			eff := effective[it.ID]
			start, end := eff.Start, eff.End
			w.Start, w.Due = &start, &end
			packed[i] = w
		}

		for _, lane := range scheduler.AssignLanes(packed, policy, anchor) {
			for _, p := range lane.Items {
				span := p.Span
				x := scale.Cells(span.Start.Sub(l.origin))
				width := scale.Cells(span.Duration())
				if width < 1 {
					width = 1
				}
				l.bars = append(l.bars, bar{
					item:    p.Item,
					span:    span,
					group:   g.Name,
					row:     row,
					x:       x,
					width:   width,
					pending: pending[p.Item.ID],
				})
			}
			row++
		}

		l.bands = append(l.bands, drag.GroupBand{ID: g.Name, Top: top, Bottom: row})
	}
	l.rowsUsed = row
	return l
}

// originFor picks the time rendered at cell 0: the earliest effective
// start, floored to a unit boundary so the axis ticks line up.
func originFor(items []*domain.WorkItem, effective map[string]domain.Interval, anchor time.Time, g drag.Granularity) time.Time {
	origin := anchor
	first := true
	for _, it := range items {
		s := effective[it.ID].Start
		if first || s.Before(origin) {
			origin = s
			first = false
		}
	}
	return floorTo(origin, g)
}

// floorTo truncates t down to the granularity's natural boundary.
func floorTo(t time.Time, g drag.Granularity) time.Time {
	switch g {
	case drag.GranHour:
		return t.Truncate(time.Hour)
	case drag.GranWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		// Back up to Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case drag.GranMonth, drag.GranQuarter:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// barAt returns the bar whose cell rectangle contains (x, row), or nil.
func (l *boardLayout) barAt(x, row int) *bar {
	for i := range l.bars {
		b := &l.bars[i]
		if b.row == row && x >= b.x && x < b.x+b.width {
			return b
		}
	}
	return nil
}

// barOf returns the bar for the given item id, or nil.
func (l *boardLayout) barOf(id string) *bar {
	for i := range l.bars {
		if l.bars[i].item.ID == id {
			return &l.bars[i]
		}
	}
	return nil
}
