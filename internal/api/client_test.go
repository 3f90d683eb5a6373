package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestTokenHeaderAttachedWhenPresent(t *testing.T) {
	var gotAuth, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(roadmap.User{ID: 1, Username: "ada"})
	})
	c.SetTokenSource(func() string { return "secret-token" })

	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if gotAuth != "Token secret-token" {
		t.Errorf("Authorization header: got %q, want %q", gotAuth, "Token secret-token")
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestNoTokenHeaderWhenAbsent(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	c.SetTokenSource(func() string { return "" })

	if _, err := c.ListItems(context.Background(), roadmap.Filter{}); err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization header: got %q, want none", gotAuth)
	}
}

func TestUnauthorizedHookFiresOn401(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	})
	fired := 0
	c.SetUnauthorizedHook(func() { fired++ })

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if fired != 1 {
		t.Errorf("unauthorized hook fired %d times, want 1", fired)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: got %T", err)
	}
	if apiErr.Kind != KindAuthentication {
		t.Errorf("kind: got %q, want %q", apiErr.Kind, KindAuthentication)
	}
	if apiErr.Message != "Invalid token." {
		t.Errorf("message: got %q, want %q", apiErr.Message, "Invalid token.")
	}
}

func TestListItemsAcceptsPaginatedAndBareResponses(t *testing.T) {
	paginated := `{"count":2,"results":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}`
	bare := `[{"id":3,"title":"c"}]`

	for name, body := range map[string]string{"paginated": paginated, "bare": bare} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		items, err := c.ListItems(context.Background(), roadmap.Filter{})
		if err != nil {
			t.Fatalf("%s: ListItems: %v", name, err)
		}
		if len(items) == 0 {
			t.Errorf("%s: got no items", name)
		}
	}
}

func TestListItemsSerializesFilter(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	filter := roadmap.Filter{
		Search:   "dark mode",
		Status:   roadmap.StatusPlanning,
		Category: roadmap.CategoryFeature,
		Ordering: roadmap.OrderNewest,
	}
	if _, err := c.ListItems(context.Background(), filter); err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	want := filter.Values().Encode()
	if gotQuery != want {
		t.Errorf("query: got %q, want %q", gotQuery, want)
	}
}

func TestCreateCommentBody(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(roadmap.Comment{ID: 10, Content: "hi"})
	})

	parent := int64(4)
	if _, err := c.CreateComment(context.Background(), 1, "hi", &parent); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if got["content"] != "hi" {
		t.Errorf("content: got %v", got["content"])
	}
	if got["parent_comment"] != float64(4) {
		t.Errorf("parent_comment: got %v, want 4", got["parent_comment"])
	}

	// Top-level comments omit parent_comment entirely.
	got = nil
	if _, err := c.CreateComment(context.Background(), 1, "hi", nil); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, ok := got["parent_comment"]; ok {
		t.Error("parent_comment should be omitted for top-level comments")
	}
}

func TestNetworkFailureClassified(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.GetItem(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: got %T", err)
	}
	if apiErr.Kind != KindNetwork {
		t.Errorf("kind: got %q, want %q", apiErr.Kind, KindNetwork)
	}
	if !apiErr.Retryable() {
		t.Error("network errors should be retry-eligible")
	}
}
