package cli

import "github.com/charmbracelet/lipgloss"

// Nord-leaning palette.
var (
	colorBar     = lipgloss.Color("#81a1c1")
	colorPending = lipgloss.Color("#ebcb8b")
	colorSelect  = lipgloss.Color("#a3be8c")
	colorError   = lipgloss.Color("#bf616a")
	colorDim     = lipgloss.Color("#4c566a")
	colorFg      = lipgloss.Color("#eceff4")
	colorAccent  = lipgloss.Color("#88c0d0")
)

var (
	styleBar      = lipgloss.NewStyle().Foreground(colorFg).Background(colorBar)
	stylePending  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e3440")).Background(colorPending)
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e3440")).Background(colorSelect)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleAccent   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleGroupHdr = lipgloss.NewStyle().Foreground(colorAccent)
)

func dim(s string) string { return styleDim.Render(s) }
