package importer

import (
	"time"

	"ganttlane/internal/domain"
)

// Convert transforms a validated BoardImport into work items ready for
// the service layer, which assigns IDs and timestamps on create. Call
// ValidateBoardImport first; Convert assumes the file is valid.
func Convert(board *BoardImport) []domain.WorkItem {
	items := make([]domain.WorkItem, 0, len(board.Items))
	for _, it := range board.Items {
		kind := domain.ItemKind(it.Kind)
		if it.Kind == "" {
			kind = domain.KindTask
		}

		items = append(items, domain.WorkItem{
			Title:     it.Title,
			Kind:      kind,
			Assignees: it.Assignees,
			Labels:    it.Labels,
			Start:     parseImportDate(it.Start),
			Due:       parseImportDate(it.Due),
		})
	}
	return items
}

func parseImportDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
