package board

import (
	"testing"

	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/roadmap"
)

func allow() error  { return nil }
func reject() error { return auth.ErrNoSession }

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	b := New(allow)

	// Two keystrokes inside the debounce window: only the second token is
	// still current when its timer fires.
	first := b.SetSearchInput("dar")
	second := b.SetSearchInput("dark mode")

	if b.DebounceElapsed(first) {
		t.Error("stale token must not commit")
	}
	if !b.DebounceElapsed(second) {
		t.Fatal("latest token should commit and request a refetch")
	}

	// Exactly one refetch is due, and its snapshot carries only the final value.
	if got := b.Filter().Search; got != "dark mode" {
		t.Errorf("effective search: got %q, want %q", got, "dark mode")
	}
}

func TestDebounceNoOpWhenValueUnchanged(t *testing.T) {
	b := New(allow)
	seq := b.SetSearchInput("")
	if b.DebounceElapsed(seq) {
		t.Error("unchanged search should not request a refetch")
	}
}

func TestSelectFiltersPropagateImmediately(t *testing.T) {
	b := New(allow)

	if !b.SetStatus(roadmap.StatusInProgress) {
		t.Error("status change should request a refetch")
	}
	if b.SetStatus(roadmap.StatusInProgress) {
		t.Error("same status should not request a refetch")
	}
	if !b.SetCategory(roadmap.CategoryBugFix) {
		t.Error("category change should request a refetch")
	}
	if !b.SetOrdering(roadmap.OrderMostUpvoted) {
		t.Error("ordering change should request a refetch")
	}

	f := b.Filter()
	if f.Status != roadmap.StatusInProgress || f.Category != roadmap.CategoryBugFix || f.Ordering != roadmap.OrderMostUpvoted {
		t.Errorf("effective filter: %+v", f)
	}
}

func TestCycleStatusWrapsThroughAny(t *testing.T) {
	b := New(allow)
	seen := map[roadmap.Status]bool{}
	for range len(roadmap.Statuses) + 1 {
		b.CycleStatus()
		seen[b.Filter().Status] = true
	}
	if b.Filter().Status != "" {
		t.Errorf("after full cycle: got %q, want any", b.Filter().Status)
	}
	if len(seen) != len(roadmap.Statuses)+1 {
		t.Errorf("cycle visited %d values, want %d", len(seen), len(roadmap.Statuses)+1)
	}
}

func TestApplyOverwritesLastWriteWins(t *testing.T) {
	b := New(allow)
	b.Apply([]roadmap.Item{{ID: 1}, {ID: 2}})
	b.Apply([]roadmap.Item{{ID: 3}})

	if len(b.Items()) != 1 || b.Items()[0].ID != 3 {
		t.Errorf("items after second apply: %+v", b.Items())
	}
	if !b.Loaded() {
		t.Error("Loaded should be true after apply")
	}
}

func TestBeginUpvoteFlipsOptimistically(t *testing.T) {
	b := New(allow)
	b.Apply([]roadmap.Item{{ID: 1, UpvoteCount: 10, UserUpvoted: false}})

	if err := b.BeginUpvote(1); err != nil {
		t.Fatalf("BeginUpvote: %v", err)
	}
	got := b.Items()[0]
	if got.UpvoteCount != 11 || !got.UserUpvoted {
		t.Errorf("optimistic state: count=%d upvoted=%v, want 11/true", got.UpvoteCount, got.UserUpvoted)
	}

	// Server confirms; displayed state matches the response.
	b.FinishUpvote(1, roadmap.UpvoteResult{UpvoteCount: 11, Upvoted: true})
	got = b.Items()[0]
	if got.UpvoteCount != 11 || !got.UserUpvoted {
		t.Errorf("reconciled state: count=%d upvoted=%v, want 11/true", got.UpvoteCount, got.UserUpvoted)
	}

	// Toggling again flips back down.
	if err := b.BeginUpvote(1); err != nil {
		t.Fatalf("BeginUpvote: %v", err)
	}
	if got := b.Items()[0]; got.UpvoteCount != 10 || got.UserUpvoted {
		t.Errorf("second toggle: count=%d upvoted=%v, want 10/false", got.UpvoteCount, got.UserUpvoted)
	}
}

func TestBeginUpvoteRejectedWithoutSession(t *testing.T) {
	b := New(reject)
	b.Apply([]roadmap.Item{{ID: 1, UpvoteCount: 10}})

	if err := b.BeginUpvote(1); err != auth.ErrNoSession {
		t.Fatalf("BeginUpvote: got %v, want ErrNoSession", err)
	}
	if got := b.Items()[0]; got.UpvoteCount != 10 || got.UserUpvoted {
		t.Errorf("anonymous upvote must not change state: %+v", got)
	}
}
