package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ganttlane/internal/domain"
)

// newSeedCmd loads a small demo data set so the board has something to
// show on first run.
func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			monday := nextMonday(time.Now())

			for _, w := range demoItems(monday) {
				item := w
				if err := app.Board.Create(ctx, &item); err != nil {
					return err
				}
			}
			fmt.Println("Seeded demo items. Run 'ganttlane' to open the board.")
			return nil
		},
	}
}

func demoItems(monday time.Time) []domain.WorkItem {
	day := func(offset int) *time.Time {
		t := monday.AddDate(0, 0, offset)
		return &t
	}

	return []domain.WorkItem{
		{Title: "Design schema migration", Kind: domain.KindTask,
			Assignees: []string{"alice"}, Labels: []string{"backend"},
			Start: day(0), Due: day(3)},
		{Title: "API pagination bug", Kind: domain.KindBug,
			Assignees: []string{"alice"}, Labels: []string{"backend"},
			Start: day(2), Due: day(5)},
		{Title: "Importer throughput", Kind: domain.KindFeature,
			Assignees: []string{"bob"}, Labels: []string{"backend"},
			Start: day(1), Due: day(8)},
		{Title: "Dashboard filters", Kind: domain.KindFeature,
			Assignees: []string{"carol"}, Labels: []string{"frontend"},
			Start: day(4), Due: day(11)},
		{Title: "Flaky login test", Kind: domain.KindBug,
			Assignees: []string{"carol"}, Labels: []string{"frontend"},
			Start: day(4), Due: day(6)},
		{Title: "Release 2.4", Kind: domain.KindMilestone,
			Labels: []string{"release"},
			Start:  day(14), Due: day(15)},
		{Title: "Write onboarding docs", Kind: domain.KindTask,
			Labels: []string{"docs"},
			Due:    day(10)},
		{Title: "Spike: queue backend", Kind: domain.KindTask,
			Assignees: []string{"bob"}},
	}
}

func nextMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	offset := (8 - int(day.Weekday())) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
