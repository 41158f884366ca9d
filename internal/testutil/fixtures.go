package testutil

import (
	"time"

	"github.com/google/uuid"

	"ganttlane/internal/domain"
)

// WorkItem options
type ItemOption func(*domain.WorkItem)

func WithKind(k domain.ItemKind) ItemOption {
	return func(w *domain.WorkItem) {
		w.Kind = k
	}
}

func WithStart(d time.Time) ItemOption {
	return func(w *domain.WorkItem) {
		w.Start = &d
	}
}

func WithDue(d time.Time) ItemOption {
	return func(w *domain.WorkItem) {
		w.Due = &d
	}
}

// WithSpan sets both dates at once.
func WithSpan(start, due time.Time) ItemOption {
	return func(w *domain.WorkItem) {
		w.Start = &start
		w.Due = &due
	}
}

func WithAssignees(names ...string) ItemOption {
	return func(w *domain.WorkItem) {
		w.Assignees = names
	}
}

func WithLabels(labels ...string) ItemOption {
	return func(w *domain.WorkItem) {
		w.Labels = labels
	}
}

// NewTestItem creates an unscheduled task with sensible defaults.
func NewTestItem(title string, opts ...ItemOption) *domain.WorkItem {
	now := time.Now().UTC()
	w := &domain.WorkItem{
		ID:        uuid.New().String(),
		Title:     title,
		Kind:      domain.KindTask,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Day is shorthand for a UTC midnight instant, the granularity the board
// stores dates at.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
