package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/tui"
)

// SubmitRegisterMsg is sent when the user submits the registration form.
type SubmitRegisterMsg struct {
	Registration api.Registration
}

// Register form field indices.
const (
	regUsername = iota
	regEmail
	regPassword
	regConfirm
	regFirstName
	regLastName
	regFieldCount
)

var registerLabels = [regFieldCount]string{
	"Username",
	"Email",
	"Password",
	"Confirm password",
	"First name (optional)",
	"Last name (optional)",
}

// RegisterModel is the view model for the registration form.
type RegisterModel struct {
	inputs  []textinput.Model
	focused int
	busy    bool

	// Err holds the last failed attempt's error, shown inline.
	Err error

	width  int
	height int
}

// NewRegisterModel creates a new RegisterModel with empty fields.
func NewRegisterModel(width, height int) RegisterModel {
	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = strings.ToLower(registerLabels[i])
		ti.CharLimit = 150
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regPassword].EchoCharacter = '*'
	inputs[regConfirm].EchoMode = textinput.EchoPassword
	inputs[regConfirm].EchoCharacter = '*'
	inputs[regUsername].Focus()

	return RegisterModel{
		inputs: inputs,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the register view.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetBusy marks the form as waiting on a registration attempt.
func (m *RegisterModel) SetBusy(busy bool) {
	m.busy = busy
}

// Update handles messages for the register view.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
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
			return m.submit()
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

func (m *RegisterModel) setFocus(index int) {
	m.inputs[m.focused].Blur()
	m.focused = index
	m.inputs[m.focused].Focus()
}

// submit validates the form locally and emits SubmitRegisterMsg. The
// backend still applies its own validation; this only catches the cases a
// round trip cannot improve on.
func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	reg := api.Registration{
		Username:        strings.TrimSpace(m.inputs[regUsername].Value()),
		Email:           strings.TrimSpace(m.inputs[regEmail].Value()),
		Password:        m.inputs[regPassword].Value(),
		PasswordConfirm: m.inputs[regConfirm].Value(),
		FirstName:       strings.TrimSpace(m.inputs[regFirstName].Value()),
		LastName:        strings.TrimSpace(m.inputs[regLastName].Value()),
	}

	switch {
	case reg.Username == "" || reg.Email == "" || reg.Password == "":
		m.Err = errors.New("username, email and password are required")
		return m, nil
	case reg.Password != reg.PasswordConfirm:
		m.Err = errors.New("passwords do not match")
		return m, nil
	}

	m.Err = nil
	m.busy = true
	return m, func() tea.Msg {
		return SubmitRegisterMsg{Registration: reg}
	}
}

// View renders the register view.
func (m RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Create an Account"))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		b.WriteString(tui.DimStyle.Render(registerLabels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString(tui.DimStyle.Render("Creating account..."))
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
