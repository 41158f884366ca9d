package service

import (
	"sort"

	"ganttlane/internal/domain"
)

// UnassignedGroup names the trailing bucket for items with no assignee or
// label under the active grouping.
const UnassignedGroup = "unassigned"

// Group is one horizontal band on the board: a named collection of items
// that get their lanes packed independently of every other group.
type Group struct {
	Name  string
	Items []*domain.WorkItem
}

// GroupItems partitions items by the active grouping. Groups come back in
// alphabetical order with the unassigned bucket last; GroupNone yields a
// single anonymous group. Input order is preserved inside each group.
func GroupItems(items []*domain.WorkItem, mode domain.GroupMode) []Group {
	if mode == domain.GroupNone {
		return []Group{{Items: items}}
	}

	keyOf := func(w *domain.WorkItem) string {
		switch mode {
		case domain.GroupAssignee:
			return w.PrimaryAssignee()
		case domain.GroupLabel:
			if len(w.Labels) > 0 {
				return w.Labels[0]
			}
		}
		return ""
	}

	byKey := make(map[string][]*domain.WorkItem)
	for _, w := range items {
		k := keyOf(w)
		byKey[k] = append(byKey[k], w)
	}

	names := make([]string, 0, len(byKey))
	for k := range byKey {
		if k != "" {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names)+1)
	for _, name := range names {
		groups = append(groups, Group{Name: name, Items: byKey[name]})
	}
	if unassigned, ok := byKey[""]; ok {
		groups = append(groups, Group{Name: UnassignedGroup, Items: unassigned})
	}
	return groups
}
