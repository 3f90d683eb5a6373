// This file wraps the roadmap item endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// ListItems fetches roadmap items matching the filter.
func (c *Client) ListItems(ctx context.Context, filter roadmap.Filter) ([]roadmap.Item, error) {
	data, err := c.do(ctx, http.MethodGet, "/roadmap/", filter.Values(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[roadmap.Item](data)
}

// GetItem fetches a single roadmap item.
func (c *Client) GetItem(ctx context.Context, id int64) (roadmap.Item, error) {
	var out roadmap.Item
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/roadmap/%d/", id), nil, nil)
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}

// ToggleUpvote flips the viewer's upvote on an item and returns the
// authoritative count and flag.
func (c *Client) ToggleUpvote(ctx context.Context, id int64) (roadmap.UpvoteResult, error) {
	var out roadmap.UpvoteResult
	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/roadmap/%d/upvote/", id), nil, nil)
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}
