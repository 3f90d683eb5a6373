// This file classifies request failures and extracts user-facing messages
// from the backend's assorted error payload shapes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind buckets a request failure for presentation and retry decisions.
type Kind string

const (
	KindNetwork        Kind = "network"        // no response received
	KindAuthentication Kind = "authentication" // 401 or 403
	KindValidation     Kind = "validation"     // other 4xx
	KindServer         Kind = "server"         // 5xx
	KindUnknown        Kind = "unknown"
)

// defaultMessages are the fallback user-facing messages per kind, used when
// the response body carries nothing more specific.
var defaultMessages = map[Kind]string{
	KindNetwork:        "Connection failed. Please check your network and try again.",
	KindAuthentication: "Authentication failed. Please log in again.",
	KindValidation:     "Please check your input and try again.",
	KindServer:         "Server error occurred. Please try again later.",
	KindUnknown:        "An unexpected error occurred. Please try again.",
}

// Error is a classified request failure.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Message string // user-facing message
	err     error  // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Retryable reports whether re-issuing the request could plausibly succeed.
// Validation failures never are; the user has to change the input.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

// KindOf returns the Kind of err, or KindUnknown for non-API errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// UserMessage returns the user-facing message for err.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// classify maps an HTTP status to an error Kind.
func classify(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuthentication
	case status >= 400 && status < 500:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// networkError wraps a transport-level failure (no response at all).
func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: defaultMessages[KindNetwork],
		err:     err,
	}
}

// httpError builds an Error from a non-2xx response, preferring any message
// found in the body over the kind's default.
func httpError(status int, body []byte) *Error {
	kind := classify(status)
	msg := messageFromBody(body)
	if msg == "" {
		msg = defaultMessages[kind]
	}
	return &Error{Kind: kind, Status: status, Message: msg}
}

// messageFromBody extracts the most specific message the backend provided.
// Documented shapes, in precedence order: a bare JSON string, {"message"},
// {"error"}, {"detail"}, {"non_field_errors": [...]}, then the first
// field-keyed string array. Anything else yields "".
func messageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Not a JSON object: accept a JSON string, or the raw body as-is
		// (the backend occasionally serves plain-text errors).
		var s string
		if json.Unmarshal(body, &s) == nil {
			return s
		}
		if !strings.HasPrefix(trimmed, "[") {
			return trimmed
		}
		return ""
	}

	for _, key := range []string{"message", "error", "detail"} {
		var s string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}

	if raw, ok := fields["non_field_errors"]; ok {
		var list []string
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			return list[0]
		}
	}

	// Field-keyed validation errors: {"content": ["This field is required."]}.
	// Keys are visited in sorted order so extraction is deterministic.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var list []string
		if json.Unmarshal(fields[k], &list) == nil && len(list) > 0 {
			return list[0]
		}
	}

	return ""
}

// Retry re-invokes fn up to attempts times with linearly increasing delay,
// stopping early on success or on a non-retryable error. The UI flows never
// use it; retries there are manual.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt == attempts {
			return err
		}

		select {
		case <-time.After(delay * time.Duration(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
