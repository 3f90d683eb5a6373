package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		status int
		want   Kind
	}{
		{401, KindAuthentication},
		{403, KindAuthentication},
		{400, KindValidation},
		{404, KindValidation},
		{422, KindValidation},
		{500, KindServer},
		{503, KindServer},
		{301, KindUnknown},
	}
	for _, tc := range cases {
		if got := classify(tc.status); got != tc.want {
			t.Errorf("classify(%d): got %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestMessageFromBodyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"json string", `"quota exceeded"`, "quota exceeded"},
		{"message key", `{"message":"use a stronger password","detail":"ignored"}`, "use a stronger password"},
		{"error key", `{"error":"invalid credentials"}`, "invalid credentials"},
		{"detail key", `{"detail":"Invalid token."}`, "Invalid token."},
		{"non_field_errors", `{"non_field_errors":["Passwords don't match"]}`, "Passwords don't match"},
		{"field errors", `{"content":["This field may not be blank."]}`, "This field may not be blank."},
		{"plain text", `backend exploded`, "backend exploded"},
		{"empty body", ``, ""},
		{"unrecognized object", `{"code":42}`, ""},
	}
	for _, tc := range cases {
		if got := messageFromBody([]byte(tc.body)); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHTTPErrorFallsBackToDefaultMessage(t *testing.T) {
	err := httpError(500, nil)
	if err.Kind != KindServer {
		t.Errorf("kind: got %q, want %q", err.Kind, KindServer)
	}
	if err.Message != defaultMessages[KindServer] {
		t.Errorf("message: got %q, want default server message", err.Message)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{KindNetwork, true},
		{KindServer, true},
		{KindAuthentication, false},
		{KindValidation, false},
		{KindUnknown, false},
	}
	for _, tc := range cases {
		e := &Error{Kind: tc.kind}
		if got := e.Retryable(); got != tc.want {
			t.Errorf("Retryable(%q): got %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &Error{Kind: KindValidation, Message: "bad input"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("validation errors must not be retried: got %d calls, want 1", calls)
	}
}

func TestRetryRetriesServerErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &Error{Kind: KindServer}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 3 {
		t.Errorf("got %d calls, want 3", calls)
	}
}

func TestKindOfNonAPIError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindUnknown {
		t.Errorf("KindOf: got %q, want %q", got, KindUnknown)
	}
}
