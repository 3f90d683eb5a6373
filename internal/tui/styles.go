package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// Color constants.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
	infoColor      = "#3B82F6" // Blue
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights the selected list row.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// UpvotedStyle renders the upvote indicator when the viewer has voted.
	UpvotedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor)).
			Bold(true)

	// FilterBarStyle renders the active filter summary above the list.
	FilterBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)
)

// statusColors maps roadmap statuses to badge colors.
var statusColors = map[roadmap.Status]string{
	roadmap.StatusPlanning:   infoColor,
	roadmap.StatusInProgress: warningColor,
	roadmap.StatusCompleted:  secondaryColor,
	roadmap.StatusOnHold:     dimColor,
	roadmap.StatusCancelled:  dimColor,
}

// StatusBadge renders a colored status label.
func StatusBadge(status roadmap.Status) string {
	color, ok := statusColors[status]
	if !ok {
		color = dimColor
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(roadmap.FormatLabel(string(status)))
}

// CategoryBadge renders a dim category label.
func CategoryBadge(category roadmap.Category) string {
	return DimStyle.Render(roadmap.FormatLabel(string(category)))
}
