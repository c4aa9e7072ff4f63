// Package listview derives the displayed post list from fetched pages:
// a text filter, a date ordering and a page cursor.
package listview

import (
	"slices"
	"strings"

	"blogdeck/internal/models"
)

// Order is the date ordering of the displayed list
type Order string

const (
	OrderNewest Order = "newest"
	OrderOldest Order = "oldest"
)

// ParseOrder returns the order named by s, defaulting to newest
func ParseOrder(s string) Order {
	if Order(strings.ToLower(strings.TrimSpace(s))) == OrderOldest {
		return OrderOldest
	}
	return OrderNewest
}

// Scope selects which fetched posts the filter and sort apply to
type Scope string

const (
	// ScopeCurrentPage searches only the page currently fetched
	ScopeCurrentPage Scope = "page"
	// ScopeAllFetched searches every page fetched so far
	ScopeAllFetched Scope = "fetched"
)

// ParseScope returns the scope named by s and whether s was recognised.
// Unknown values yield ScopeCurrentPage.
func ParseScope(s string) (Scope, bool) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeCurrentPage, "":
		return ScopeCurrentPage, true
	case ScopeAllFetched:
		return ScopeAllFetched, true
	default:
		return ScopeCurrentPage, false
	}
}

// Filter returns the posts whose title or content contains query, ignoring
// case. An empty query matches everything. The input is not modified.
func Filter(posts []models.Post, query string) []models.Post {
	q := strings.ToLower(query)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a copy of posts ordered by creation time. Posts with equal
// timestamps keep their relative order.
func Sort(posts []models.Post, order Order) []models.Post {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b models.Post) int {
		if order == OrderOldest {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// Apply filters then sorts
func Apply(posts []models.Post, query string, order Order) []models.Post {
	return Sort(Filter(posts, query), order)
}
