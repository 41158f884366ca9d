package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ganttlane/internal/importer"
)

// newImportCmd loads work items from a YAML file. The whole file is
// validated up front so a partial import never happens on bad input.
func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import work items from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := importer.LoadBoardImport(args[0])
			if err != nil {
				return err
			}

			if errs := importer.ValidateBoardImport(board); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", e)
				}
				return fmt.Errorf("import file has %d error(s)", len(errs))
			}

			ctx := context.Background()
			for _, w := range importer.Convert(board) {
				item := w
				if err := app.Board.Create(ctx, &item); err != nil {
					return fmt.Errorf("creating %q: %w", item.Title, err)
				}
			}

			fmt.Printf("Imported %d items.\n", len(board.Items))
			return nil
		},
	}
}
