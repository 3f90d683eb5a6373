// Package board holds the state of the roadmap list screen: the four
// filter dimensions, the search debounce, and the displayed items.
package board

import (
	"time"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// SearchDebounce is the quiet period a search keystroke must survive before
// the draft value propagates to the effective filter and triggers a refetch.
const SearchDebounce = 500 * time.Millisecond

// Board drives the list screen. Callers mutate it from a single goroutine
// (the TUI update loop); network fetches run outside against a Filter()
// snapshot taken in that loop, and land via Apply.
type Board struct {
	gate func() error // authentication gate for mutating operations

	draft  string // search input as typed, not yet effective
	seq    int    // bumped per keystroke; identifies the latest draft
	filter roadmap.Filter

	items  []roadmap.Item
	loaded bool
}

// New creates a Board with the default filter. gate guards upvotes; it
// returns an error when no authenticated session exists.
func New(gate func() error) *Board {
	return &Board{
		gate:   gate,
		filter: roadmap.DefaultFilter(),
	}
}

// SearchInput returns the draft search text as typed.
func (b *Board) SearchInput() string { return b.draft }

// Filter returns the effective filter set.
func (b *Board) Filter() roadmap.Filter { return b.filter }

// Items returns the currently displayed items.
func (b *Board) Items() []roadmap.Item { return b.items }

// Loaded reports whether at least one fetch has landed.
func (b *Board) Loaded() bool { return b.loaded }

// SetSearchInput records a keystroke and returns a sequence token. The
// caller schedules a SearchDebounce timer carrying the token; only the
// token from the newest keystroke survives DebounceElapsed.
func (b *Board) SetSearchInput(text string) int {
	b.draft = text
	b.seq++
	return b.seq
}

// DebounceElapsed commits the draft search value if seq still identifies
// the latest keystroke and the value actually changed. It reports whether
// a refetch is due.
func (b *Board) DebounceElapsed(seq int) bool {
	if seq != b.seq {
		return false // a newer keystroke re-armed the timer
	}
	if b.draft == b.filter.Search {
		return false
	}
	b.filter.Search = b.draft
	return true
}

// SetStatus changes the status dimension. Unlike search, the change is
// effective immediately. Reports whether a refetch is due.
func (b *Board) SetStatus(status roadmap.Status) bool {
	if b.filter.Status == status {
		return false
	}
	b.filter.Status = status
	return true
}

// SetCategory changes the category dimension, effective immediately.
func (b *Board) SetCategory(category roadmap.Category) bool {
	if b.filter.Category == category {
		return false
	}
	b.filter.Category = category
	return true
}

// SetOrdering changes the sort order, effective immediately.
func (b *Board) SetOrdering(ordering string) bool {
	if b.filter.Ordering == ordering {
		return false
	}
	b.filter.Ordering = ordering
	return true
}

// CycleStatus advances the status dimension through "any" and each status.
func (b *Board) CycleStatus() {
	b.filter.Status = cycle(b.filter.Status, roadmap.Statuses)
}

// CycleCategory advances the category dimension through "any" and each category.
func (b *Board) CycleCategory() {
	b.filter.Category = cycle(b.filter.Category, roadmap.Categories)
}

// CycleOrdering advances the sort order through the supported orderings.
func (b *Board) CycleOrdering() {
	for i, o := range roadmap.Orderings {
		if o == b.filter.Ordering {
			b.filter.Ordering = roadmap.Orderings[(i+1)%len(roadmap.Orderings)]
			return
		}
	}
	b.filter.Ordering = roadmap.Orderings[0]
}

// cycle returns the value after current in values, with the zero value
// ("any") between the last element and the first.
func cycle[T comparable](current T, values []T) T {
	var zero T
	if current == zero {
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i == len(values)-1 {
				return zero
			}
			return values[i+1]
		}
	}
	return zero
}

// Apply overwrites the displayed list with a fetch response.
func (b *Board) Apply(items []roadmap.Item) {
	b.items = items
	b.loaded = true
}

// BeginUpvote applies the optimistic half of an upvote toggle: count and
// flag flip together before the network call. Rejected locally with no
// network call when the session is not authenticated.
func (b *Board) BeginUpvote(id int64) error {
	if err := b.gate(); err != nil {
		return err
	}
	for i := range b.items {
		if b.items[i].ID != id {
			continue
		}
		if b.items[i].UserUpvoted {
			b.items[i].UpvoteCount--
		} else {
			b.items[i].UpvoteCount++
		}
		b.items[i].UserUpvoted = !b.items[i].UserUpvoted
		return nil
	}
	return nil
}

// FinishUpvote reconciles an item with the server's authoritative count and
// flag. On failure the caller simply never calls this; the optimistic value
// stays until the next full refetch.
func (b *Board) FinishUpvote(id int64, res roadmap.UpvoteResult) {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].UpvoteCount = res.UpvoteCount
			b.items[i].UserUpvoted = res.Upvoted
			return
		}
	}
}
