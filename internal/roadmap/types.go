// Package roadmap defines the data model shared by every screen of the
// Waymark client: roadmap items, threaded comments, and list filters.
package roadmap

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Status is the lifecycle stage of a roadmap item.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists all statuses in display order.
var Statuses = []Status{
	StatusPlanning,
	StatusInProgress,
	StatusCompleted,
	StatusOnHold,
	StatusCancelled,
}

// Category classifies the kind of work a roadmap item represents.
type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryImprovement Category = "improvement"
	CategoryBugFix      Category = "bug_fix"
	CategoryMaintenance Category = "maintenance"
	CategoryResearch    Category = "research"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryFeature,
	CategoryImprovement,
	CategoryBugFix,
	CategoryMaintenance,
	CategoryResearch,
}

// FormatLabel turns a snake_case enum value into a display label,
// e.g. "in_progress" -> "In Progress".
func FormatLabel(value string) string {
	words := strings.Split(value, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// User identifies the author of a comment or the signed-in viewer.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	DateJoined time.Time `json:"date_joined,omitempty"`
}

// Item is a roadmap entry as returned by the backend. UpvoteCount and
// UserUpvoted are mutated by the upvote toggle; CommentsCount drifts from
// server truth between refetches.
type Item struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        Status    `json:"status"`
	Category      Category  `json:"category"`
	Priority      int       `json:"priority,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UpvoteCount   int       `json:"upvote_count"`
	UserUpvoted   bool      `json:"user_upvoted"`
	CommentsCount int       `json:"comments_count"`
}

// UpvoteResult is the server's authoritative answer to an upvote toggle.
type UpvoteResult struct {
	UpvoteCount int  `json:"upvote_count"`
	Upvoted     bool `json:"upvoted"`
}

// Comment is a single flat comment record. ParentComment is nil for
// top-level comments. CanEdit and CanReply are computed by the server;
// CanReply enforces the maximum nesting depth.
type Comment struct {
	ID            int64     `json:"id"`
	User          User      `json:"user"`
	Content       string    `json:"content"`
	ParentComment *int64    `json:"parent_comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CanEdit       bool      `json:"can_edit"`
	CanReply      bool      `json:"can_reply"`
	DepthLevel    int       `json:"depth_level,omitempty"`
	IsReply       bool      `json:"is_reply,omitempty"`
}

// Edited reports whether the comment was genuinely modified after creation.
// Creation writes both timestamps, so anything within a second is noise.
func (c Comment) Edited() bool {
	return c.UpdatedAt.Sub(c.CreatedAt) > time.Second
}

// MaxCommentLength is the server-enforced content bound, checked locally
// before any network call.
const MaxCommentLength = 300

var (
	// ErrEmptyContent is returned when comment content is blank after trimming.
	ErrEmptyContent = errors.New("comment content is empty")
	// ErrContentTooLong is returned when content exceeds MaxCommentLength.
	ErrContentTooLong = fmt.Errorf("comment content exceeds %d characters", MaxCommentLength)
)

// ValidateContent checks the local submission bounds for comment content.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return ErrContentTooLong
	}
	return nil
}
