// Package drag interprets pointer gestures over rendered item bars:
// where a press lands selects move vs resize, horizontal travel converts
// to a time delta through the active scale, and vertical travel during a
// move hit-tests group bands for reassignment.
package drag

import (
	"time"

	"ganttlane/internal/domain"
)

// Mode classifies which part of the bar a drag manipulates.
type Mode int

const (
	ModeMove Mode = iota
	ModeResizeStart
	ModeResizeEnd
)

func (m Mode) String() string {
	switch m {
	case ModeResizeStart:
		return "resize-start"
	case ModeResizeEnd:
		return "resize-end"
	default:
		return "move"
	}
}

// ClassifyMode maps a press offset within a bar of the given width to a
// drag mode. A fixed margin at each edge selects the resize modes; the
// interior selects move. Bars too narrow to hold two margins always move.
func ClassifyMode(offset, width, edgeMargin int) Mode {
	if edgeMargin <= 0 || width <= 2*edgeMargin {
		return ModeMove
	}
	if offset < edgeMargin {
		return ModeResizeStart
	}
	if offset >= width-edgeMargin {
		return ModeResizeEnd
	}
	return ModeMove
}

// GroupBand is the half-open vertical slice [Top, Bottom) of the board
// occupied by one group.
type GroupBand struct {
	ID     string
	Top    int
	Bottom int
}

// HitGroup returns the id of the band containing row y, or "".
func HitGroup(bands []GroupBand, y int) string {
	for _, b := range bands {
		if y >= b.Top && y < b.Bottom {
			return b.ID
		}
	}
	return ""
}

// Result is the outcome of a finished drag.
type Result struct {
	ID   string
	Span domain.Interval

	// Changed reports a material pointer displacement: the preview no
	// longer equals the original interval.
	Changed bool

	// Group is non-nil when a move drag ended over a different group
	// band. Reported only on drag-end, as an effect distinct from the
	// date change.
	Group *string
}

// Drag tracks one in-progress gesture. It is a pure interpreter: nothing
// is committed until the caller acts on End's result.
type Drag struct {
	id      string
	mode    Mode
	origin  domain.Interval
	scale   Scale
	minSpan time.Duration

	bands       []GroupBand
	originGroup string

	cur      domain.Interval
	curGroup string
}

// Begin starts a gesture on the item's current display interval. The
// minimal span during resizes is one unit of the active granularity.
func Begin(id string, origin domain.Interval, mode Mode, scale Scale) *Drag {
	return &Drag{
		id:      id,
		mode:    mode,
		origin:  origin,
		scale:   scale,
		minSpan: scale.Granularity.UnitDuration(),
		cur:     origin,
	}
}

// WithGroups enables vertical group reassignment during move drags.
func (d *Drag) WithGroups(bands []GroupBand, current string) *Drag {
	d.bands = bands
	d.originGroup = current
	d.curGroup = current
	return d
}

// ID returns the dragged item's id.
func (d *Drag) ID() string { return d.id }

// Mode returns the gesture's mode.
func (d *Drag) Mode() Mode { return d.mode }

// Preview returns the current preview interval.
func (d *Drag) Preview() domain.Interval { return d.cur }

// MoveTo applies the horizontal cell delta since the press and the
// pointer's absolute row, returning the preview interval. Move shifts
// both endpoints; resize-start clamps so start never passes end minus one
// unit; resize-end is symmetric.
func (d *Drag) MoveTo(dx, y int) domain.Interval {
	delta := d.scale.TimeDelta(dx)

	switch d.mode {
	case ModeMove:
		d.cur = d.origin.Shift(delta)
		if len(d.bands) > 0 {
			if g := HitGroup(d.bands, y); g != "" {
				d.curGroup = g
			}
		}
	case ModeResizeStart:
		start := d.origin.Start.Add(delta)
		if limit := d.origin.End.Add(-d.minSpan); start.After(limit) {
			start = limit
		}
		d.cur = domain.Interval{Start: start, End: d.origin.End}
	case ModeResizeEnd:
		end := d.origin.End.Add(delta)
		if limit := d.origin.Start.Add(d.minSpan); end.Before(limit) {
			end = limit
		}
		d.cur = domain.Interval{Start: d.origin.Start, End: end}
	}
	return d.cur
}

// End finishes the gesture and reports its final effect.
func (d *Drag) End() Result {
	res := Result{
		ID:      d.id,
		Span:    d.cur,
		Changed: !d.cur.Equal(d.origin),
	}
	if d.mode == ModeMove && d.curGroup != "" && d.curGroup != d.originGroup {
		g := d.curGroup
		res.Group = &g
	}
	return res
}
