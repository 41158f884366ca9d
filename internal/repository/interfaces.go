package repository

import (
	"context"
	"errors"
	"time"

	"ganttlane/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row. Callers test for it
// with errors.Is since repos wrap it with entity context.
var ErrNotFound = errors.New("not found")

// SpanUpdate carries the scheduled interval written back after a drag commit.
// Either endpoint may be nil to clear the corresponding date.
type SpanUpdate struct {
	Start *time.Time
	Due   *time.Time
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	List(ctx context.Context) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	UpdateSpan(ctx context.Context, id string, span SpanUpdate) error
	Delete(ctx context.Context, id string) error
}
