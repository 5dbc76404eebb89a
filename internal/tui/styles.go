package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Nikhila-inturi/cartify/internal/order"
)

var (
	// Colors
	colorPrimary = lipgloss.Color("#4361EE")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")
	colorDanger  = lipgloss.Color("#EF4444")

	// Status palette, after the web dashboard's badge colors.
	statusColors = map[order.Status]lipgloss.Color{
		order.StatusPending:    lipgloss.Color("#F59E0B"),
		order.StatusConfirmed:  lipgloss.Color("#3B82F6"),
		order.StatusProcessing: lipgloss.Color("#22C55E"),
		order.StatusShipped:    lipgloss.Color("#06B6D4"),
		order.StatusDelivered:  lipgloss.Color("#16A34A"),
		order.StatusCancelled:  lipgloss.Color("#EF4444"),
	}

	// Base styles
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	// Table styles
	styleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1)

	styleTableRow = lipgloss.NewStyle().
			Padding(0, 1)

	styleTableRowSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("#1F2937")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	// Summary cards
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			Align(lipgloss.Center)

	styleCardValue = lipgloss.NewStyle().Bold(true)

	// Detail / form styles
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(18)
)

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

// StatusBadge renders a colored status label.
func StatusBadge(s order.Status) string {
	color, ok := statusColors[s]
	if !ok {
		return styleMuted().Render(string(s))
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(s))
}
