// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/roadmap"
)

// ============================================================================
// Session Messages
// ============================================================================

// SessionResolvedMsg signals that the stored session has been hydrated.
type SessionResolvedMsg struct {
	State auth.State
}

// SessionChangedMsg carries a session state transition into the update loop.
type SessionChangedMsg struct {
	State  auth.State
	Reason auth.Reason
}

// LoginResultMsg signals that a login attempt has completed.
type LoginResultMsg struct {
	Err error
}

// RegisterResultMsg signals that a registration attempt has completed.
type RegisterResultMsg struct {
	Err error
}

// LogoutDoneMsg signals that logout has completed.
type LogoutDoneMsg struct{}

// ============================================================================
// Board Messages
// ============================================================================

// ItemsLoadedMsg carries a fetched roadmap item list.
type ItemsLoadedMsg struct {
	Items []roadmap.Item
	Err   error
}

// SearchDebounceMsg fires when a search keystroke's quiet period elapses.
// Seq identifies the keystroke that armed the timer; stale timers carry an
// old Seq and are ignored.
type SearchDebounceMsg struct {
	Seq int
}

// ============================================================================
// Detail Messages
// ============================================================================

// ItemLoadedMsg carries a fetched roadmap item for the detail screen.
type ItemLoadedMsg struct {
	Item roadmap.Item
	Err  error
}

// CommentsLoadedMsg carries a fetched flat comment list.
type CommentsLoadedMsg struct {
	Comments []roadmap.Comment
	Err      error
}

// UpvoteResultMsg carries the server's answer to an upvote toggle.
type UpvoteResultMsg struct {
	ItemID int64
	Result roadmap.UpvoteResult
	Err    error
}

// CommentMutationMsg carries the refetched comment list after a create,
// edit, or delete. On failure Comments is nil and the displayed tree is
// left as it was.
type CommentMutationMsg struct {
	Event    string // log event name for the mutation
	Comments []roadmap.Comment
	Err      error
}
