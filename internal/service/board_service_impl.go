package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ganttlane/internal/domain"
	"ganttlane/internal/repository"
)

type boardService struct {
	items  repository.WorkItemRepo
	logger zerolog.Logger
}

func NewBoardService(items repository.WorkItemRepo, logger zerolog.Logger) BoardService {
	return &boardService{items: items, logger: logger}
}

func (s *boardService) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.Kind == "" {
		w.Kind = domain.KindTask
	}
	if !domain.ValidItemKinds[string(w.Kind)] {
		return fmt.Errorf("invalid item kind %q", w.Kind)
	}
	if err := s.items.Create(ctx, w); err != nil {
		return err
	}
	s.logger.Info().Str("id", w.ID).Str("kind", string(w.Kind)).Msg("item created")
	return nil
}

func (s *boardService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *boardService) Items(ctx context.Context) ([]*domain.WorkItem, error) {
	return s.items.List(ctx)
}

func (s *boardService) Update(ctx context.Context, w *domain.WorkItem) error {
	if !domain.ValidItemKinds[string(w.Kind)] {
		return fmt.Errorf("invalid item kind %q", w.Kind)
	}
	w.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, w); err != nil {
		return err
	}
	s.logger.Info().Str("id", w.ID).Msg("item updated")
	return nil
}

// CommitSpan persists a dragged interval. Both dates are written so that a
// drag on an item that previously had no start materializes one.
func (s *boardService) CommitSpan(ctx context.Context, id string, span repository.SpanUpdate) error {
	if span.Start != nil && span.Due != nil && span.Due.Before(*span.Start) {
		return fmt.Errorf("span for %s: due %s before start %s", id,
			span.Due.Format("2006-01-02"), span.Start.Format("2006-01-02"))
	}
	if err := s.items.UpdateSpan(ctx, id, span); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("span commit failed")
		return err
	}
	evt := s.logger.Info().Str("id", id)
	if span.Start != nil {
		evt = evt.Str("start", span.Start.Format("2006-01-02"))
	}
	if span.Due != nil {
		evt = evt.Str("due", span.Due.Format("2006-01-02"))
	}
	evt.Msg("span committed")
	return nil
}

// Reassign moves an item into a different group row. Under assignee grouping
// the primary assignee is replaced; under label grouping the first label is.
// An empty group drops the item into the unassigned bucket.
func (s *boardService) Reassign(ctx context.Context, id string, mode domain.GroupMode, group string) error {
	w, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch mode {
	case domain.GroupAssignee:
		w.Assignees = replaceHead(w.Assignees, group)
	case domain.GroupLabel:
		w.Labels = replaceHead(w.Labels, group)
	case domain.GroupNone:
		return nil
	default:
		return fmt.Errorf("invalid group mode %q", mode)
	}

	w.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, w); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Str("mode", string(mode)).Str("group", group).Msg("item reassigned")
	return nil
}

func (s *boardService) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("item deleted")
	return nil
}

// replaceHead swaps the first element for the new group value, keeping any
// secondary entries. An empty value removes the head instead.
func replaceHead(vals []string, v string) []string {
	if v == "" {
		if len(vals) <= 1 {
			return nil
		}
		return vals[1:]
	}
	if len(vals) == 0 {
		return []string{v}
	}
	out := make([]string, len(vals))
	copy(out, vals)
	out[0] = v
	return out
}
