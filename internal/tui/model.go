// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/board"
	"github.com/waymark-dev/waymark/internal/config"
	"github.com/waymark-dev/waymark/internal/log"
	"github.com/waymark-dev/waymark/internal/thread"
)

// ViewState represents the current screen of the TUI.
type ViewState int

const (
	StateResolving ViewState = iota // session hydration in flight
	StateLanding
	StateLogin
	StateRegister
	StateBrowse
	StateDetail
)

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	State ViewState
	Err   error

	// Configuration
	Cfg *config.Config

	// HTTP client shared by the controllers.
	Client *api.Client

	// Session and controllers. Board lives for the whole program;
	// Thread is created when a detail screen opens and dropped on exit.
	Session *auth.Session
	Board   *board.Board
	Thread  *thread.Thread

	// Event log (best effort, failures are ignored)
	Logger *log.Logger

	// Session change notifications are delivered through this channel so
	// they enter the program as messages instead of mutating state from
	// the subscriber goroutine.
	SessionCh chan SessionChangedMsg

	// Bubbles components
	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new Model wired to the given session and board.
func NewModel(cfg *config.Config, client *api.Client, sess *auth.Session, brd *board.Board, logger *log.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		State:     StateResolving,
		Cfg:       cfg,
		Client:    client,
		Session:   sess,
		Board:     brd,
		Logger:    logger,
		SessionCh: make(chan SessionChangedMsg, 8),
		Spinner:   sp,
		Width:     80,
		Height:    24,
	}

	sess.Subscribe(func(state auth.State, reason auth.Reason) {
		select {
		case m.SessionCh <- SessionChangedMsg{State: state, Reason: reason}:
		default:
		}
	})

	return m
}

// LogEvent appends an event to the log, ignoring failures.
func (m *Model) LogEvent(ev log.LogEvent) {
	if m.Logger != nil {
		_ = m.Logger.Append(ev)
	}
}
