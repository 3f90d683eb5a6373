package log

import (
	"testing"
)

func TestLoggerAppendAndReadAll(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventLogin, Username: "alice"},
		{Event: EventItemsFetched, Items: 12, Ordering: "-created_at"},
		{Event: EventUpvoteToggled, ItemID: 7, Upvoted: true},
	}
	for _, ev := range events {
		if err := logger.Append(ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Event != EventLogin || got[0].Username != "alice" {
		t.Errorf("first event: %+v", got[0])
	}
	if got[2].ItemID != 7 || !got[2].Upvoted {
		t.Errorf("third event: %+v", got[2])
	}
	if got[0].Time.IsZero() {
		t.Error("Append should stamp zero times")
	}
}

func TestLoggerReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}
