package auth

import (
	"testing"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

func TestCredStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	token, user, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if token != "" || user != nil {
		t.Errorf("empty store: got token %q user %+v", token, user)
	}

	want := roadmap.User{ID: 7, Username: "ada", Email: "ada@example.com"}
	if err := store.Save("tok-123", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	token, user, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token: got %q", token)
	}
	if user == nil || user.ID != 7 || user.Username != "ada" {
		t.Errorf("user: got %+v", user)
	}

	// Overwrite keeps a single pair.
	if err := store.Save("tok-456", want); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if got := store.Token(); got != "tok-456" {
		t.Errorf("token after overwrite: got %q", got)
	}
}

func TestCredStoreClearRemovesBothKeys(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("tok", roadmap.User{ID: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, user, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" || user != nil {
		t.Errorf("after Clear: got token %q user %+v", token, user)
	}
}
