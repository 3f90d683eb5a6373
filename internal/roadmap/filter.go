// This file defines the four-dimensional list filter and its query encoding.
package roadmap

import "net/url"

// Orderings accepted by the list endpoint.
const (
	OrderMostUpvoted  = "-upvote_count_annotated"
	OrderLeastUpvoted = "upvote_count_annotated"
	OrderNewest       = "-created_at"
	OrderOldest       = "created_at"
)

// Orderings lists the supported sort orders in display order.
var Orderings = []string{
	OrderMostUpvoted,
	OrderLeastUpvoted,
	OrderNewest,
	OrderOldest,
}

// OrderingLabel returns a human-readable label for an ordering value.
func OrderingLabel(ordering string) string {
	switch ordering {
	case OrderMostUpvoted:
		return "Most Popular"
	case OrderLeastUpvoted:
		return "Least Popular"
	case OrderNewest:
		return "Newest First"
	case OrderOldest:
		return "Oldest First"
	default:
		return ordering
	}
}

// Filter holds the four independent list dimensions. Zero values mean
// "no constraint" and are omitted from the query string.
type Filter struct {
	Search   string
	Status   Status
	Category Category
	Ordering string
}

// DefaultFilter returns the filter applied on first load.
func DefaultFilter() Filter {
	return Filter{Ordering: OrderNewest}
}

// Values serializes the filter as list-endpoint query parameters,
// skipping empty dimensions.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Category != "" {
		v.Set("category", string(f.Category))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Ordering != "" {
		v.Set("ordering", f.Ordering)
	}
	return v
}
