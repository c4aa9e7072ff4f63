package listview

import (
	"context"
	"sort"
	"sync"

	"blogdeck/internal/fetch"
	"blogdeck/internal/models"
)

// Options configures a View
type Options struct {
	Limit int
	Scope Scope
}

// Snapshot is the derived list state ready for rendering
type Snapshot struct {
	Status     fetch.Status  `json:"status"`
	Posts      []models.Post `json:"posts"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	HasPrev    bool          `json:"hasPrev"`
	HasNext    bool          `json:"hasNext"`
	Query      string        `json:"query"`
	Order      Order         `json:"order"`
	Scope      Scope         `json:"scope"`
	Err        error         `json:"-"`
}

// View owns the paged-list hook and the list controls. The page cursor
// starts at 1 and every cursor change fetches the new page.
type View struct {
	hook  *fetch.PostPageHook
	limit int
	scope Scope

	mu    sync.Mutex
	page  int
	query string
	order Order
	// settled pages, kept for ScopeAllFetched
	pages map[int][]models.Post
}

// New creates a view and starts fetching page 1
func New(r fetch.Resources, opts Options) *View {
	if opts.Limit < 1 {
		opts.Limit = models.DefaultPageLimit
	}
	if opts.Scope == "" {
		opts.Scope = ScopeCurrentPage
	}

	v := &View{
		hook:  fetch.NewPostPageHook(r),
		limit: opts.Limit,
		scope: opts.Scope,
		page:  1,
		order: OrderNewest,
		pages: make(map[int][]models.Post),
	}
	v.hook.Set(v.queryFor(1))
	return v
}

func (v *View) queryFor(page int) models.PageQuery {
	return models.PageQuery{Page: page, Limit: v.limit}
}

// Hook exposes the underlying page hook for waiting and subscriptions
func (v *View) Hook() *fetch.PostPageHook {
	return v.hook
}

// Wait blocks until the current page has settled
func (v *View) Wait(ctx context.Context) error {
	_, err := v.hook.Wait(ctx)
	return err
}

// SetQuery changes the free-text filter
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	v.query = q
	v.mu.Unlock()
}

// SetOrder changes the date ordering
func (v *View) SetOrder(o Order) {
	v.mu.Lock()
	v.order = o
	v.mu.Unlock()
}

// Page returns the page cursor
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Prev moves the cursor back one page. It reports false at page 1.
func (v *View) Prev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page <= 1 {
		return false
	}
	v.remember(v.hook.State())
	v.page--
	v.hook.Set(v.queryFor(v.page))
	return true
}

// Next moves the cursor forward one page. It only moves once the current
// page has loaded and reported a following page.
func (v *View) Next() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.hook.State()
	if !st.Succeeded() || !st.Value.HasNext {
		return false
	}
	v.remember(st)
	v.page++
	v.hook.Set(v.queryFor(v.page))
	return true
}

// Refresh forgets every fetched page and fetches the current page again
func (v *View) Refresh() {
	v.mu.Lock()
	defer v.mu.Unlock()
	clear(v.pages)
	v.hook.Reload()
}

// Close stops the underlying hook
func (v *View) Close() {
	v.hook.Close()
}

// remember records a settled page; v.mu must be held and st must belong to
// the current cursor
func (v *View) remember(st fetch.State[models.Page[models.Post]]) {
	if st.Succeeded() {
		v.pages[v.page] = st.Value.Items
	}
}

// fetched returns every remembered post in page order, first occurrence of
// each id winning; v.mu must be held
func (v *View) fetched() []models.Post {
	nums := make([]int, 0, len(v.pages))
	for n := range v.pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	seen := make(map[string]bool)
	var out []models.Post
	for _, n := range nums {
		for _, p := range v.pages[n] {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out
}

// Snapshot derives the list to display from the latest page state
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := v.hook.State()
	v.remember(st)

	var source []models.Post
	switch v.scope {
	case ScopeAllFetched:
		source = v.fetched()
	default:
		source = st.Value.Items
	}

	return Snapshot{
		Status:     st.Status,
		Posts:      Apply(source, v.query, v.order),
		Page:       v.page,
		TotalPages: st.Value.TotalPages,
		HasPrev:    v.page > 1,
		HasNext:    st.Succeeded() && st.Value.HasNext,
		Query:      v.query,
		Order:      v.order,
		Scope:      v.scope,
		Err:        st.Err,
	}
}
