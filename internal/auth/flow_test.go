package auth

import (
	"context"
	"testing"
	"time"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/testutil"
)

// newLiveSession wires a real client against the fake backend, the way
// the CLI does it.
func newLiveSession(t *testing.T, srv *testutil.Server, store *CredStore) (*Session, *api.Client) {
	t.Helper()
	client := api.NewClient(srv.URL, 5*time.Second)
	sess := NewSession(client, store)
	client.SetTokenSource(sess.Token)
	client.SetUnauthorizedHook(sess.Invalidate)
	return sess, client
}

func TestLoginSurvivesRestart(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()
	srv.AddUser("alice", "hunter2")

	store := newTestStore(t)
	ctx := context.Background()

	sess, _ := newLiveSession(t, srv, store)
	if err := sess.Login(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A fresh session over the same store hydrates straight back to
	// Authenticated via profile revalidation.
	sess2, _ := newLiveSession(t, srv, store)
	if state := sess2.Hydrate(ctx); state != StateAuthenticated {
		t.Fatalf("hydrated state: got %v, want StateAuthenticated", state)
	}
	if sess2.User() == nil || sess2.User().Username != "alice" {
		t.Errorf("hydrated user: %+v", sess2.User())
	}
}

func TestServerSideRevocationInvalidatesSession(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()
	srv.AddUser("alice", "hunter2")
	srv.AddItem(testutil.NewItem(1, "Dark mode"))

	store := newTestStore(t)
	ctx := context.Background()

	sess, client := newLiveSession(t, srv, store)
	if err := sess.Login(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	srv.RevokeTokens()

	// Any authenticated request now 401s; the hook drops the session.
	if _, err := client.ToggleUpvote(ctx, 1); err == nil {
		t.Fatal("expected an error after revocation")
	}
	if sess.State() != StateAnonymous {
		t.Errorf("state after 401: got %v, want StateAnonymous", sess.State())
	}
	if token, _, err := store.Load(); err != nil || token != "" {
		t.Errorf("stored token after 401: %q (err=%v)", token, err)
	}
}

func TestBadCredentialsSurfaceValidationError(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()
	srv.AddUser("alice", "hunter2")

	store := newTestStore(t)
	sess, _ := newLiveSession(t, srv, store)

	err := sess.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if api.KindOf(err) != api.KindValidation {
		t.Errorf("kind: got %v, want KindValidation", api.KindOf(err))
	}
	if api.UserMessage(err) != "Unable to log in with provided credentials." {
		t.Errorf("message: got %q", api.UserMessage(err))
	}
	if sess.State() == StateAuthenticated {
		t.Error("failed login must not authenticate")
	}
}
