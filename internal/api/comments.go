// This file wraps the comment endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// commentBody is the create/update request body. ParentComment is only sent
// on create, and only for replies.
type commentBody struct {
	Content       string `json:"content"`
	ParentComment *int64 `json:"parent_comment,omitempty"`
}

// ListComments fetches the flat comment list for a roadmap item.
func (c *Client) ListComments(ctx context.Context, itemID int64) ([]roadmap.Comment, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/roadmap/%d/comments/", itemID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[roadmap.Comment](data)
}

// CreateComment posts a comment on an item. parentID is nil for top-level
// comments and the parent's id for replies.
func (c *Client) CreateComment(ctx context.Context, itemID int64, content string, parentID *int64) (roadmap.Comment, error) {
	var out roadmap.Comment
	body := commentBody{Content: content, ParentComment: parentID}
	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/roadmap/%d/comments/", itemID), nil, body)
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}

// UpdateComment replaces a comment's content.
func (c *Client) UpdateComment(ctx context.Context, commentID int64, content string) (roadmap.Comment, error) {
	var out roadmap.Comment
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d/", commentID), nil, commentBody{Content: content})
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d/", commentID), nil, nil)
	return err
}
