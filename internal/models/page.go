package models

// DefaultPageLimit is the page size used when none is configured
const DefaultPageLimit = 10

// PageQuery selects one page of a paginated list
type PageQuery struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds the counters reported alongside a page of results
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

// Page is one page of items with its counters.
// Invariants: len(Items) <= Limit and HasNext == (Page < TotalPages).
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

// NewPage builds a page from items and reported counters, deriving HasNext
// from the counters rather than trusting the reported flag.
func NewPage[T any](items []T, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.Page < p.TotalPages,
	}
}

// EmptyPage returns a page with no items and zeroed counters
func EmptyPage[T any]() Page[T] {
	return Page[T]{Items: []T{}}
}

// Valid reports whether the page satisfies its invariants
func (p Page[T]) Valid() bool {
	return len(p.Items) <= p.Limit && p.HasNext == (p.Page < p.TotalPages)
}
