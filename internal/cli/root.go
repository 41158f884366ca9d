package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ganttlane/internal/config"
	"ganttlane/internal/service"
)

// App holds the wired services and configuration used by CLI commands.
type App struct {
	Board  service.BoardService
	Config config.Config
	Logger zerolog.Logger

	// IsInteractive reports whether stdin is a terminal; the board view
	// refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "ganttlane" command and registers all
// subcommands against the provided App. Running without a subcommand
// opens the board.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ganttlane",
		Short: "Terminal Gantt board for work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(app)
		},
	}

	root.AddCommand(
		newBoardCmd(app),
		newAddCmd(app),
		newListCmd(app),
		newMoveCmd(app),
		newImportCmd(app),
		newSeedCmd(app),
	)

	return root
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(app)
		},
	}
}

func runBoard(app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("the board needs an interactive terminal; use 'ganttlane list' instead")
	}

	m := newBoardModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.notify = p.Send

	app.Logger.Info().Msg("board started")
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
