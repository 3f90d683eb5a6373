// Package testutil provides test helper utilities for waymark tests.
package testutil

import (
	"time"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// BaseTime is the fixed reference time fixtures are built around.
var BaseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// NewUser returns a user fixture.
func NewUser(id int64, username string) roadmap.User {
	return roadmap.User{
		ID:         id,
		Username:   username,
		Email:      username + "@example.com",
		DateJoined: BaseTime.AddDate(0, -6, 0),
	}
}

// NewItem returns an item fixture. Items are spaced a day apart so
// created_at orderings are unambiguous.
func NewItem(id int64, title string) roadmap.Item {
	created := BaseTime.Add(time.Duration(id) * 24 * time.Hour)
	return roadmap.Item{
		ID:        id,
		Title:     title,
		Status:    roadmap.StatusPlanning,
		Category:  roadmap.CategoryFeature,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// NewComment returns a comment fixture. parentID is nil for top-level
// comments.
func NewComment(id int64, user roadmap.User, content string, parentID *int64) roadmap.Comment {
	created := BaseTime.Add(time.Duration(id) * time.Minute)
	return roadmap.Comment{
		ID:            id,
		User:          user,
		Content:       content,
		ParentComment: parentID,
		CreatedAt:     created,
		UpdatedAt:     created,
		CanReply:      true,
	}
}

// ID returns a pointer to id, for ParentComment fields.
func ID(id int64) *int64 {
	return &id
}
