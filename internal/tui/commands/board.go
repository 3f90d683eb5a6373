package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waymark-dev/waymark/internal/board"
	"github.com/waymark-dev/waymark/internal/roadmap"
	"github.com/waymark-dev/waymark/internal/tui"
)

// lister is the slice of the HTTP client a list fetch needs.
type lister interface {
	ListItems(ctx context.Context, filter roadmap.Filter) ([]roadmap.Item, error)
}

// FetchItemsCmd issues the list call for a filter snapshot taken in the
// update loop; the goroutine never touches board state. The response lands
// back in the loop via ItemsLoadedMsg and Board.Apply; overlapping fetches
// are not cancelled, the last applied response wins.
func FetchItemsCmd(api lister, filter roadmap.Filter) tea.Cmd {
	return func() tea.Msg {
		items, err := api.ListItems(context.Background(), filter)
		return tui.ItemsLoadedMsg{Items: items, Err: err}
	}
}

// DebounceSearchCmd arms the search quiet-period timer for one keystroke.
// seq identifies the keystroke; if a newer one re-arms the timer before
// this fires, Board.DebounceElapsed drops the stale message.
func DebounceSearchCmd(seq int) tea.Cmd {
	return tea.Tick(board.SearchDebounce, func(time.Time) tea.Msg {
		return tui.SearchDebounceMsg{Seq: seq}
	})
}

// upvoter is the slice of the HTTP client an upvote toggle needs.
type upvoter interface {
	ToggleUpvote(ctx context.Context, id int64) (roadmap.UpvoteResult, error)
}

// ToggleUpvoteCmd sends the upvote toggle for an item whose optimistic
// flip has already been applied in the update loop.
func ToggleUpvoteCmd(api upvoter, itemID int64) tea.Cmd {
	return func() tea.Msg {
		res, err := api.ToggleUpvote(context.Background(), itemID)
		return tui.UpvoteResultMsg{ItemID: itemID, Result: res, Err: err}
	}
}
