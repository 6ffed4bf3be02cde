package picker

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("212")
	Muted       = lipgloss.Color("241")
	BgSecondary = lipgloss.Color("235")
	Border      = lipgloss.Color("240")
)

var (
	Title     = lipgloss.NewStyle().Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(Muted)
	Match     = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(BgSecondary).
		Padding(0, 1)
)

// List styles
var (
	ItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ItemSelected = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)
