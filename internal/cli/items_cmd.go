package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ganttlane/internal/domain"
	"ganttlane/internal/repository"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		kind, start, due  string
		assignees, labels []string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.WorkItem{
				Title:     args[0],
				Kind:      domain.ItemKind(kind),
				Assignees: assignees,
				Labels:    labels,
			}

			var err error
			if w.Start, err = parseDateFlag(start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if w.Due, err = parseDateFlag(due); err != nil {
				return fmt.Errorf("--due: %w", err)
			}

			if err := app.Board.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", w.Title, w.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "task", "Item kind (task|bug|feature|milestone)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&assignees, "assignee", nil, "Assignee (repeatable)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Label (repeatable)")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Board.Items(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No items.")
				return nil
			}

			for _, w := range items {
				span := "unscheduled"
				switch {
				case w.HasStart() && w.HasDue():
					span = w.Start.Format("2006-01-02") + " → " + w.Due.Format("2006-01-02")
				case w.HasStart():
					span = w.Start.Format("2006-01-02") + " → open"
				case w.HasDue():
					span = "due " + w.Due.Format("2006-01-02")
				}

				who := ""
				if len(w.Assignees) > 0 {
					who = "  @" + strings.Join(w.Assignees, " @")
				}
				fmt.Printf("%-36s  %-9s  %-24s  %s%s\n", w.ID, w.Kind, span, w.Title, who)
			}
			return nil
		},
	}
}

// newMoveCmd reschedules an item directly, through the same service path
// a board drag commit takes.
func newMoveCmd(app *App) *cobra.Command {
	var start, due string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Reschedule a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" && due == "" {
				return fmt.Errorf("provide --start and/or --due")
			}

			ctx := context.Background()
			current, err := app.Board.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			span := repository.SpanUpdate{Start: current.Start, Due: current.Due}
			if start != "" {
				if span.Start, err = parseDateFlag(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}
			if due != "" {
				if span.Due, err = parseDateFlag(due); err != nil {
					return fmt.Errorf("--due: %w", err)
				}
			}

			if err := app.Board.CommitSpan(ctx, args[0], span); err != nil {
				return err
			}
			fmt.Printf("Moved %s\n", current.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")

	return cmd
}

// parseDateFlag parses an optional YYYY-MM-DD flag; empty means unset.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return &t, nil
}
