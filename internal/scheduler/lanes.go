package scheduler

import (
	"sort"
	"time"

	"ganttlane/internal/domain"
)

// Placed pairs a work item with its effective display interval.
type Placed struct {
	Item domain.WorkItem
	Span domain.Interval
}

// Lane is one display row of non-overlapping placed items, in placement order.
type Lane struct {
	Items []Placed
}

// AssignLanes packs items into display lanes with a greedy sweep.
//
// Items are sorted by effective start, ties broken by ID, so identical
// input always yields the identical partition. Each item lands in the
// first lane that is free at its start; a lane is free when its last
// interval ends at or before the item's start (half-open semantics, so
// back-to-back items share a lane). If no lane is free a new one opens,
// which keeps lane order correlated with ascending first-item start.
//
// The input slice is treated as immutable; a fresh partition is returned
// on every call. O(n·r) over n items and r lanes — r is bounded by the
// overlap depth of the collection, not by n.
func AssignLanes(items []domain.WorkItem, policy DurationPolicy, anchor time.Time) []Lane {
	if len(items) == 0 {
		return nil
	}

	placed := make([]Placed, len(items))
	for i, item := range items {
		placed[i] = Placed{Item: item, Span: policy.Span(item, anchor)}
	}

	sort.SliceStable(placed, func(i, j int) bool {
		a, b := placed[i], placed[j]
		if !a.Span.Start.Equal(b.Span.Start) {
			return a.Span.Start.Before(b.Span.Start)
		}
		return a.Item.ID < b.Item.ID
	})

	var lanes []Lane
	var laneEnds []time.Time

	for _, p := range placed {
		slot := -1
		for i, end := range laneEnds {
			if !end.After(p.Span.Start) {
				slot = i
				break
			}
		}
		if slot == -1 {
			lanes = append(lanes, Lane{})
			laneEnds = append(laneEnds, time.Time{})
			slot = len(lanes) - 1
		}
		lanes[slot].Items = append(lanes[slot].Items, p)
		laneEnds[slot] = p.Span.End
	}

	return lanes
}

// LaneCount returns the number of lanes the partition uses.
func LaneCount(lanes []Lane) int {
	return len(lanes)
}

// FlattenLanes returns all placed items in lane order, top lane first.
func FlattenLanes(lanes []Lane) []Placed {
	var out []Placed
	for _, lane := range lanes {
		out = append(out, lane.Items...)
	}
	return out
}
