// Package thread holds the state of the roadmap detail screen: one item,
// its flat comment list, and the forest derived from it. Comment mutations
// never patch the tree locally; they refetch the flat list and rebuild.
package thread

import (
	"context"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// API is the slice of the HTTP client the thread needs.
type API interface {
	GetItem(ctx context.Context, id int64) (roadmap.Item, error)
	ToggleUpvote(ctx context.Context, id int64) (roadmap.UpvoteResult, error)
	ListComments(ctx context.Context, itemID int64) ([]roadmap.Comment, error)
	CreateComment(ctx context.Context, itemID int64, content string, parentID *int64) (roadmap.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, content string) (roadmap.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

// Thread drives the detail screen for a single roadmap item.
type Thread struct {
	api    API
	gate   func() error
	itemID int64

	item     *roadmap.Item
	comments []roadmap.Comment
	forest   []*roadmap.CommentNode
}

// New creates a Thread for the given item id. gate guards every mutating
// operation; it returns an error when no authenticated session exists.
func New(api API, gate func() error, itemID int64) *Thread {
	return &Thread{api: api, gate: gate, itemID: itemID}
}

// ItemID returns the id this thread was opened for.
func (t *Thread) ItemID() int64 { return t.itemID }

// Item returns the loaded item, or nil before the first fetch lands.
func (t *Thread) Item() *roadmap.Item { return t.item }

// Forest returns the derived comment forest.
func (t *Thread) Forest() []*roadmap.CommentNode { return t.forest }

// Comments returns the flat comment list as last fetched.
func (t *Thread) Comments() []roadmap.Comment { return t.comments }

// FetchItem loads the item. The caller lands the result with ApplyItem.
func (t *Thread) FetchItem(ctx context.Context) (roadmap.Item, error) {
	return t.api.GetItem(ctx, t.itemID)
}

// ApplyItem overwrites the displayed item.
func (t *Thread) ApplyItem(item roadmap.Item) {
	t.item = &item
}

// FetchComments loads the flat comment list. The caller lands the result
// with ApplyComments.
func (t *Thread) FetchComments(ctx context.Context) ([]roadmap.Comment, error) {
	return t.api.ListComments(ctx, t.itemID)
}

// ApplyComments overwrites the flat list and re-derives the forest.
func (t *Thread) ApplyComments(comments []roadmap.Comment) {
	t.comments = comments
	t.forest = roadmap.BuildForest(comments)
}

// BeginUpvote applies the optimistic half of the upvote toggle: count and
// flag flip before the network call resolves. Rejected locally, with no
// network call, when the session is not authenticated or the item has not
// loaded. On request failure the optimistic state is deliberately left in
// place until the next full refetch.
func (t *Thread) BeginUpvote() error {
	if err := t.gate(); err != nil {
		return err
	}
	if t.item == nil {
		return nil
	}
	if t.item.UserUpvoted {
		t.item.UpvoteCount--
	} else {
		t.item.UpvoteCount++
	}
	t.item.UserUpvoted = !t.item.UserUpvoted
	return nil
}

// FinishUpvote reconciles the item with the server's authoritative answer.
// Responses for other items are dropped; a toggle sent from the list screen
// can land after the user has opened a different thread.
func (t *Thread) FinishUpvote(id int64, res roadmap.UpvoteResult) {
	if t.item == nil || id != t.itemID {
		return
	}
	t.item.UpvoteCount = res.UpvoteCount
	t.item.UserUpvoted = res.Upvoted
}

// SubmitComment validates and posts a comment (top-level when parentID is
// nil), then refetches the full flat list. Validation failures and a
// missing session reject locally with no network call. The caller lands
// the returned list with ApplyComments.
func (t *Thread) SubmitComment(ctx context.Context, content string, parentID *int64) ([]roadmap.Comment, error) {
	if err := t.gate(); err != nil {
		return nil, err
	}
	if err := roadmap.ValidateContent(content); err != nil {
		return nil, err
	}
	if _, err := t.api.CreateComment(ctx, t.itemID, content, parentID); err != nil {
		return nil, err
	}
	return t.api.ListComments(ctx, t.itemID)
}

// EditComment validates and updates a comment's content, then refetches.
func (t *Thread) EditComment(ctx context.Context, commentID int64, content string) ([]roadmap.Comment, error) {
	if err := t.gate(); err != nil {
		return nil, err
	}
	if err := roadmap.ValidateContent(content); err != nil {
		return nil, err
	}
	if _, err := t.api.UpdateComment(ctx, commentID, content); err != nil {
		return nil, err
	}
	return t.api.ListComments(ctx, t.itemID)
}

// RemoveComment deletes a comment, then refetches.
func (t *Thread) RemoveComment(ctx context.Context, commentID int64) ([]roadmap.Comment, error) {
	if err := t.gate(); err != nil {
		return nil, err
	}
	if err := t.api.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return t.api.ListComments(ctx, t.itemID)
}
