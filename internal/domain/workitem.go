package domain

import "time"

type WorkItem struct {
	ID    string
	Title string
	Kind  ItemKind

	Assignees []string
	Labels    []string

	// Recorded dates. Nil means the date was never set; the scheduling
	// layer synthesizes an effective interval from its duration policy.
	Start *time.Time
	Due   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStart reports whether a start date was ever recorded.
func (w WorkItem) HasStart() bool { return w.Start != nil }

// HasDue reports whether a due date was ever recorded.
func (w WorkItem) HasDue() bool { return w.Due != nil }

// PrimaryAssignee returns the first assignee, or "" when unassigned.
func (w WorkItem) PrimaryAssignee() string {
	if len(w.Assignees) == 0 {
		return ""
	}
	return w.Assignees[0]
}

// HasLabel reports whether the item carries the given label.
func (w WorkItem) HasLabel(name string) bool {
	for _, l := range w.Labels {
		if l == name {
			return true
		}
	}
	return false
}
