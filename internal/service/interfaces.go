package service

import (
	"context"

	"ganttlane/internal/domain"
	"ganttlane/internal/repository"
)

// BoardService is the authoritative read/write surface behind the board.
// The TUI keeps optimistic overlays locally; everything that actually
// persists goes through here.
type BoardService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	Items(ctx context.Context) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	CommitSpan(ctx context.Context, id string, span repository.SpanUpdate) error
	Reassign(ctx context.Context, id string, mode domain.GroupMode, group string) error
	Delete(ctx context.Context, id string) error
}
