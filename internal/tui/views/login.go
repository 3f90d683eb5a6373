package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-dev/waymark/internal/tui"
)

// SubmitLoginMsg is sent when the user submits the login form.
type SubmitLoginMsg struct {
	Username string
	Password string
}

// CancelAuthMsg is sent when the user backs out of an auth form.
type CancelAuthMsg struct{}

// LoginModel is the view model for the login form.
type LoginModel struct {
	inputs  []textinput.Model
	focused int
	busy    bool

	// Err holds the last failed attempt's error, shown inline.
	Err error

	// Notice is an informational line shown above the form, e.g. after
	// the session expired.
	Notice string

	width  int
	height int
}

// NewLoginModel creates a new LoginModel with empty fields.
func NewLoginModel(width, height int) LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 150
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return LoginModel{
		inputs: []textinput.Model{username, password},
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetBusy marks the form as waiting on a login attempt.
func (m *LoginModel) SetBusy(busy bool) {
	m.busy = busy
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return CancelAuthMsg{} }

		case tui.KeyTab, tui.KeyDown:
			m.setFocus((m.focused + 1) % len(m.inputs))
			return m, nil

		case "shift+tab", tui.KeyUp:
			m.setFocus((m.focused + len(m.inputs) - 1) % len(m.inputs))
			return m, nil

		case tui.KeyEnter:
			if m.focused < len(m.inputs)-1 {
				m.setFocus(m.focused + 1)
				return m, nil
			}
			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username == "" || password == "" {
				return m, nil
			}
			m.busy = true
			return m, func() tea.Msg {
				return SubmitLoginMsg{Username: username, Password: password}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *LoginModel) setFocus(index int) {
	m.inputs[m.focused].Blur()
	m.focused = index
	m.inputs[m.focused].Focus()
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Log In"))
	b.WriteString("\n\n")

	if m.Notice != "" {
		b.WriteString(tui.WarningStyle.Render(m.Notice))
		b.WriteString("\n\n")
	}

	labels := []string{"Username", "Password"}
	for i, input := range m.inputs {
		b.WriteString(tui.DimStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(tui.DimStyle.Render("Signing in..."))
		b.WriteString("\n\n")
	} else if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	footer := tui.DimStyle.Render("Enter: Submit       Esc: Back")
	b.WriteString(footer)

	boxed := tui.BoxStyle.
		Width(boxWidth(m.width)).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
}
