package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waymark-dev/waymark/internal/log"
	"github.com/waymark-dev/waymark/internal/thread"
	"github.com/waymark-dev/waymark/internal/tui"
)

// FetchItemCmd loads the item for a detail screen.
func FetchItemCmd(t *thread.Thread) tea.Cmd {
	return func() tea.Msg {
		item, err := t.FetchItem(context.Background())
		return tui.ItemLoadedMsg{Item: item, Err: err}
	}
}

// FetchCommentsCmd loads the flat comment list for a detail screen.
func FetchCommentsCmd(t *thread.Thread) tea.Cmd {
	return func() tea.Msg {
		comments, err := t.FetchComments(context.Background())
		return tui.CommentsLoadedMsg{Comments: comments, Err: err}
	}
}

// SubmitCommentCmd posts a comment and refetches the flat list. Gate and
// validation rejections surface through the same message as request
// failures.
func SubmitCommentCmd(t *thread.Thread, content string, parentID *int64) tea.Cmd {
	return func() tea.Msg {
		comments, err := t.SubmitComment(context.Background(), content, parentID)
		return tui.CommentMutationMsg{Event: log.EventCommentPosted, Comments: comments, Err: err}
	}
}

// EditCommentCmd updates a comment's content and refetches the flat list.
func EditCommentCmd(t *thread.Thread, commentID int64, content string) tea.Cmd {
	return func() tea.Msg {
		comments, err := t.EditComment(context.Background(), commentID, content)
		return tui.CommentMutationMsg{Event: log.EventCommentEdited, Comments: comments, Err: err}
	}
}

// RemoveCommentCmd deletes a comment and refetches the flat list.
func RemoveCommentCmd(t *thread.Thread, commentID int64) tea.Cmd {
	return func() tea.Msg {
		comments, err := t.RemoveComment(context.Background(), commentID)
		return tui.CommentMutationMsg{Event: log.EventCommentDeleted, Comments: comments, Err: err}
	}
}
