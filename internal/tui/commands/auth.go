// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/tui"
)

// HydrateSessionCmd resolves the stored session against the backend.
// It runs once at startup and settles the Unresolved state.
func HydrateSessionCmd(sess *auth.Session) tea.Cmd {
	return func() tea.Msg {
		state := sess.Hydrate(context.Background())
		return tui.SessionResolvedMsg{State: state}
	}
}

// WatchSessionCmd waits for the next session change notification. The app
// re-arms it after every delivery so transitions keep flowing in as
// messages.
func WatchSessionCmd(ch chan tui.SessionChangedMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// LoginCmd attempts a credential login.
func LoginCmd(sess *auth.Session, username, password string) tea.Cmd {
	return func() tea.Msg {
		err := sess.Login(context.Background(), username, password)
		return tui.LoginResultMsg{Err: err}
	}
}

// RegisterCmd attempts to create an account and log in.
func RegisterCmd(sess *auth.Session, reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		err := sess.Register(context.Background(), reg)
		return tui.RegisterResultMsg{Err: err}
	}
}

// LogoutCmd ends the session. Local credentials are cleared even when the
// backend call fails, so the result carries no error.
func LogoutCmd(sess *auth.Session) tea.Cmd {
	return func() tea.Msg {
		_ = sess.Logout(context.Background())
		return tui.LogoutDoneMsg{}
	}
}
