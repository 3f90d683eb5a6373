package thread

import (
	"context"
	"strings"
	"testing"

	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/roadmap"
)

// fakeAPI serves canned data and counts every network call.
type fakeAPI struct {
	item     roadmap.Item
	comments []roadmap.Comment

	getItemCalls int
	upvoteCalls  int
	listCalls    int
	createCalls  int
	updateCalls  int
	deleteCalls  int
}

func (f *fakeAPI) GetItem(ctx context.Context, id int64) (roadmap.Item, error) {
	f.getItemCalls++
	return f.item, nil
}

func (f *fakeAPI) ToggleUpvote(ctx context.Context, id int64) (roadmap.UpvoteResult, error) {
	f.upvoteCalls++
	return roadmap.UpvoteResult{UpvoteCount: f.item.UpvoteCount + 1, Upvoted: true}, nil
}

func (f *fakeAPI) ListComments(ctx context.Context, itemID int64) ([]roadmap.Comment, error) {
	f.listCalls++
	return f.comments, nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, itemID int64, content string, parentID *int64) (roadmap.Comment, error) {
	f.createCalls++
	id := int64(len(f.comments) + 1)
	c := roadmap.Comment{ID: id, Content: content, ParentComment: parentID}
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeAPI) UpdateComment(ctx context.Context, commentID int64, content string) (roadmap.Comment, error) {
	f.updateCalls++
	for i := range f.comments {
		if f.comments[i].ID == commentID {
			f.comments[i].Content = content
			return f.comments[i], nil
		}
	}
	return roadmap.Comment{}, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, commentID int64) error {
	f.deleteCalls++
	kept := f.comments[:0]
	for _, c := range f.comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	f.comments = kept
	return nil
}

func (f *fakeAPI) totalCalls() int {
	return f.getItemCalls + f.upvoteCalls + f.listCalls + f.createCalls + f.updateCalls + f.deleteCalls
}

func allow() error  { return nil }
func reject() error { return auth.ErrNoSession }

func TestUpvoteOptimisticThenReconciled(t *testing.T) {
	api := &fakeAPI{item: roadmap.Item{ID: 1, UpvoteCount: 10, UserUpvoted: false}}
	th := New(api, allow, 1)
	item, err := th.FetchItem(context.Background())
	if err != nil {
		t.Fatalf("FetchItem: %v", err)
	}
	th.ApplyItem(item)

	if err := th.BeginUpvote(); err != nil {
		t.Fatalf("BeginUpvote: %v", err)
	}
	if got := th.Item(); got.UpvoteCount != 11 || !got.UserUpvoted {
		t.Errorf("optimistic: count=%d upvoted=%v, want 11/true", got.UpvoteCount, got.UserUpvoted)
	}

	res, err := api.ToggleUpvote(context.Background(), 1)
	if err != nil {
		t.Fatalf("ToggleUpvote: %v", err)
	}
	th.FinishUpvote(1, res)

	if got := th.Item(); got.UpvoteCount != 11 || !got.UserUpvoted {
		t.Errorf("reconciled: count=%d upvoted=%v, want 11/true", got.UpvoteCount, got.UserUpvoted)
	}
	if api.upvoteCalls != 1 {
		t.Errorf("upvote calls: got %d, want 1", api.upvoteCalls)
	}
}

func TestFinishUpvoteDropsOtherItemsResult(t *testing.T) {
	api := &fakeAPI{item: roadmap.Item{ID: 2, UpvoteCount: 3, UserUpvoted: false}}
	th := New(api, allow, 2)
	th.ApplyItem(api.item)

	// A toggle for item 1, sent from the list screen, resolves after this
	// thread was opened. Item 2's display must keep its own state.
	th.FinishUpvote(1, roadmap.UpvoteResult{UpvoteCount: 99, Upvoted: true})

	if got := th.Item(); got.UpvoteCount != 3 || got.UserUpvoted {
		t.Errorf("item 2 took item 1's result: count=%d upvoted=%v, want 3/false", got.UpvoteCount, got.UserUpvoted)
	}
}

func TestUpvoteRejectedWithoutSession(t *testing.T) {
	api := &fakeAPI{item: roadmap.Item{ID: 1, UpvoteCount: 10}}
	th := New(api, reject, 1)
	th.ApplyItem(api.item)

	if err := th.BeginUpvote(); err != auth.ErrNoSession {
		t.Fatalf("BeginUpvote: got %v, want ErrNoSession", err)
	}
	if got := th.Item(); got.UpvoteCount != 10 || got.UserUpvoted {
		t.Errorf("state must not change: %+v", got)
	}
	if api.totalCalls() != 0 {
		t.Errorf("no network call expected, got %d", api.totalCalls())
	}
}

func TestSubmitCommentRefetchesAndRebuildsForest(t *testing.T) {
	api := &fakeAPI{comments: []roadmap.Comment{{ID: 1}}}
	th := New(api, allow, 1)
	th.ApplyComments(api.comments)

	parent := int64(1)
	comments, err := th.SubmitComment(context.Background(), "agreed!", &parent)
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	th.ApplyComments(comments)

	if api.createCalls != 1 || api.listCalls != 1 {
		t.Errorf("calls: create=%d list=%d, want 1/1 (create then refetch)", api.createCalls, api.listCalls)
	}
	forest := th.Forest()
	if len(forest) != 1 {
		t.Fatalf("roots: got %d, want 1", len(forest))
	}
	if len(forest[0].Children) != 1 || forest[0].Children[0].Comment.Content != "agreed!" {
		t.Errorf("reply not nested under parent: %+v", forest[0])
	}
}

func TestSubmitCommentRejectsOverlongContentLocally(t *testing.T) {
	api := &fakeAPI{}
	th := New(api, allow, 1)

	_, err := th.SubmitComment(context.Background(), strings.Repeat("x", 301), nil)
	if err != roadmap.ErrContentTooLong {
		t.Fatalf("got %v, want ErrContentTooLong", err)
	}
	if api.totalCalls() != 0 {
		t.Errorf("no network call may be made, got %d", api.totalCalls())
	}

	_, err = th.SubmitComment(context.Background(), "   ", nil)
	if err != roadmap.ErrEmptyContent {
		t.Fatalf("got %v, want ErrEmptyContent", err)
	}
	if api.totalCalls() != 0 {
		t.Errorf("no network call may be made, got %d", api.totalCalls())
	}
}

func TestSubmitCommentRejectedWithoutSession(t *testing.T) {
	api := &fakeAPI{}
	th := New(api, reject, 1)

	_, err := th.SubmitComment(context.Background(), "hello", nil)
	if err != auth.ErrNoSession {
		t.Fatalf("got %v, want ErrNoSession", err)
	}
	if api.totalCalls() != 0 {
		t.Errorf("no network call may be made, got %d", api.totalCalls())
	}
}

func TestEditAndRemoveRefetch(t *testing.T) {
	api := &fakeAPI{comments: []roadmap.Comment{{ID: 1, Content: "typo"}, {ID: 2}}}
	th := New(api, allow, 1)
	th.ApplyComments(api.comments)

	comments, err := th.EditComment(context.Background(), 1, "fixed")
	if err != nil {
		t.Fatalf("EditComment: %v", err)
	}
	th.ApplyComments(comments)
	if th.Comments()[0].Content != "fixed" {
		t.Errorf("content after edit: %q", th.Comments()[0].Content)
	}

	comments, err = th.RemoveComment(context.Background(), 2)
	if err != nil {
		t.Fatalf("RemoveComment: %v", err)
	}
	th.ApplyComments(comments)
	if len(th.Forest()) != 1 {
		t.Errorf("roots after delete: got %d, want 1", len(th.Forest()))
	}
	if api.listCalls != 2 {
		t.Errorf("each mutation refetches: got %d list calls, want 2", api.listCalls)
	}
}
