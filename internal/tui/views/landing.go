// Package views provides TUI view components for the Waymark application.
package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-dev/waymark/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// ChooseLoginMsg is sent when the user picks the login option.
type ChooseLoginMsg struct{}

// ChooseRegisterMsg is sent when the user picks the register option.
type ChooseRegisterMsg struct{}

// ChooseBrowseMsg is sent when the user continues as a guest.
type ChooseBrowseMsg struct{}

// ============================================================================
// LandingModel
// ============================================================================

// LandingModel is the view model for the entry screen shown to visitors
// without a session.
type LandingModel struct {
	cursor int
	width  int
	height int
}

var landingOptions = []string{
	"Log in",
	"Create an account",
	"Browse as guest",
}

// NewLandingModel creates a new LandingModel.
func NewLandingModel(width, height int) LandingModel {
	return LandingModel{width: width, height: height}
}

// Init returns the initial command for the landing view.
func (m LandingModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the landing view.
func (m LandingModel) Update(msg tea.Msg) (LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyUp, "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case tui.KeyDown, "j":
			if m.cursor < len(landingOptions)-1 {
				m.cursor++
			}
		case tui.KeyEnter:
			return m, m.choose(m.cursor)
		case "l":
			return m, m.choose(0)
		case "r":
			return m, m.choose(1)
		case "b":
			return m, m.choose(2)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m LandingModel) choose(index int) tea.Cmd {
	return func() tea.Msg {
		switch index {
		case 0:
			return ChooseLoginMsg{}
		case 1:
			return ChooseRegisterMsg{}
		default:
			return ChooseBrowseMsg{}
		}
	}
}

// View renders the landing view.
func (m LandingModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Waymark - Product Roadmap")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("See what we're building, vote on what matters to you.")
	b.WriteString("\n\n")

	for i, opt := range landingOptions {
		if i == m.cursor {
			b.WriteString(tui.SelectedStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := tui.DimStyle.Render("Enter: Select       l/r/b: Shortcuts       Ctrl+C: Exit")
	b.WriteString(footer)

	boxed := tui.BoxStyle.
		Width(boxWidth(m.width)).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
}

// boxWidth clamps the standard box width to the terminal.
func boxWidth(termWidth int) int {
	const maxBoxWidth = 70
	if termWidth-4 < maxBoxWidth {
		return termWidth - 4
	}
	return maxBoxWidth
}
