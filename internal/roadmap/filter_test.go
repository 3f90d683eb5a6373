package roadmap

import (
	"strings"
	"testing"
)

func TestFilterValuesSkipsEmptyDimensions(t *testing.T) {
	v := Filter{}.Values()
	if len(v) != 0 {
		t.Errorf("empty filter: got %v, want no parameters", v)
	}

	v = Filter{Search: "dark mode", Status: StatusPlanning, Ordering: OrderNewest}.Values()
	if got := v.Get("search"); got != "dark mode" {
		t.Errorf("search: got %q", got)
	}
	if got := v.Get("status"); got != "planning" {
		t.Errorf("status: got %q", got)
	}
	if got := v.Get("ordering"); got != "-created_at" {
		t.Errorf("ordering: got %q", got)
	}
	if v.Has("category") {
		t.Error("category should be omitted when unset")
	}
}

func TestDefaultFilterOrdersNewestFirst(t *testing.T) {
	f := DefaultFilter()
	if f.Ordering != OrderNewest {
		t.Errorf("default ordering: got %q, want %q", f.Ordering, OrderNewest)
	}
	if f.Search != "" || f.Status != "" || f.Category != "" {
		t.Errorf("default filter should constrain nothing, got %+v", f)
	}
}

func TestFormatLabel(t *testing.T) {
	cases := map[string]string{
		"in_progress": "In Progress",
		"planning":    "Planning",
		"bug_fix":     "Bug Fix",
		"on_hold":     "On Hold",
	}
	for in, want := range cases {
		if got := FormatLabel(in); got != want {
			t.Errorf("FormatLabel(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestValidateContent(t *testing.T) {
	if err := ValidateContent("looks good"); err != nil {
		t.Errorf("valid content rejected: %v", err)
	}
	if err := ValidateContent("   \n\t"); err != ErrEmptyContent {
		t.Errorf("whitespace content: got %v, want ErrEmptyContent", err)
	}
	if err := ValidateContent(strings.Repeat("a", MaxCommentLength)); err != nil {
		t.Errorf("content at limit rejected: %v", err)
	}
	if err := ValidateContent(strings.Repeat("a", MaxCommentLength+1)); err != ErrContentTooLong {
		t.Errorf("301 chars: got %v, want ErrContentTooLong", err)
	}
}
