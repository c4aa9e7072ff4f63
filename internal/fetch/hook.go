// Package fetch keeps the state of remote resources as they load.
//
// A Hook owns one resource slot. Each change of its dependency starts a new
// fetch and resets the state to Loading; when a fetch returns, its result is
// applied only if no newer dependency was set in the meantime.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrClosed is returned by Wait once the hook has been closed
var ErrClosed = errors.New("hook closed")

// Status is the active variant of a State
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is a snapshot of a hook. On failure Value holds the fallback and Err
// the cause; while loading Value is the zero value.
type State[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Loading reports whether a fetch is in flight
func (s State[T]) Loading() bool { return s.Status == StatusLoading }

// Succeeded reports whether the last fetch succeeded
func (s State[T]) Succeeded() bool { return s.Status == StatusSuccess }

// Failed reports whether the last fetch failed
func (s State[T]) Failed() bool { return s.Status == StatusFailure }

// Fetcher loads the resource for a dependency value
type Fetcher[D comparable, T any] func(ctx context.Context, dep D) (T, error)

// Fallback produces the value exposed after a failed fetch
type Fallback[D comparable, T any] func(dep D, err error) T

// Hook tracks one resource through Loading, Success and Failure
type Hook[D comparable, T any] struct {
	name     string
	fetch    Fetcher[D, T]
	fallback Fallback[D, T]

	mu      sync.Mutex
	started bool
	closed  bool
	dep     D
	gen     uint64
	state   State[T]
	cancel  context.CancelFunc
	done    chan struct{} // closed when the current generation settles or is superseded
	subs    map[int]chan State[T]
	nextSub int
	wg      sync.WaitGroup
}

// New creates an idle hook in the Loading state. Nothing is fetched until
// the first call to Set.
func New[D comparable, T any](name string, fetch Fetcher[D, T], fallback Fallback[D, T]) *Hook[D, T] {
	return &Hook[D, T]{
		name:     name,
		fetch:    fetch,
		fallback: fallback,
		state:    State[T]{Status: StatusLoading},
		done:     make(chan struct{}),
		subs:     make(map[int]chan State[T]),
	}
}

// Set changes the dependency. If the value differs from the current one (or
// the hook never ran) the state resets to Loading and a new fetch starts;
// any in-flight fetch is cancelled and its result will be discarded.
func (h *Hook[D, T]) Set(dep D) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || (h.started && dep == h.dep) {
		return
	}
	h.start(dep)
}

// Reload fetches the current dependency again. It does nothing before the
// first Set.
func (h *Hook[D, T]) Reload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || !h.started {
		return
	}
	h.start(h.dep)
}

// start begins a new generation; h.mu must be held
func (h *Hook[D, T]) start(dep D) {
	if h.cancel != nil {
		h.cancel()
	}
	if h.state.Status == StatusLoading {
		close(h.done)
	}

	h.started = true
	h.dep = dep
	h.gen++
	h.done = make(chan struct{})
	h.state = State[T]{Status: StatusLoading}
	h.publish()

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.wg.Add(1)
	go h.run(ctx, cancel, h.gen, dep)
}

func (h *Hook[D, T]) run(ctx context.Context, cancel context.CancelFunc, gen uint64, dep D) {
	defer h.wg.Done()
	defer cancel()

	value, err := h.call(ctx, dep)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || gen != h.gen {
		return // superseded
	}

	if err != nil {
		log.Printf("Failed to fetch %s: %v", h.name, err)
		h.state = State[T]{Status: StatusFailure, Value: h.fallback(dep, err), Err: err}
	} else {
		h.state = State[T]{Status: StatusSuccess, Value: value}
	}
	h.cancel = nil
	close(h.done)
	h.publish()
}

// call runs the fetcher, turning a panic into an error
func (h *Hook[D, T]) call(ctx context.Context, dep D) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value, err = zero, fmt.Errorf("fetch %s panicked: %v", h.name, r)
		}
	}()
	return h.fetch(ctx, dep)
}

// publish pushes the current state to subscribers; h.mu must be held.
// Each subscriber channel holds at most the latest state.
func (h *Hook[D, T]) publish() {
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- h.state
	}
}

// State returns the current state
func (h *Hook[D, T]) State() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Dep returns the current dependency and whether Set was ever called
func (h *Hook[D, T]) Dep() (D, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dep, h.started
}

// Wait blocks until the fetch for the current dependency settles and
// returns the settled state. If the dependency changes while waiting, Wait
// follows the newer fetch.
func (h *Hook[D, T]) Wait(ctx context.Context) (State[T], error) {
	for {
		h.mu.Lock()
		if h.closed {
			s := h.state
			h.mu.Unlock()
			return s, ErrClosed
		}
		if h.started && h.state.Status != StatusLoading {
			s := h.state
			h.mu.Unlock()
			return s, nil
		}
		done := h.done
		h.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return h.State(), ctx.Err()
		}
	}
}

// Subscribe returns a channel that always holds the most recent state,
// starting with the current one. Intermediate states may be skipped by a
// slow reader. Call the returned function to unsubscribe.
func (h *Hook[D, T]) Subscribe() (<-chan State[T], func()) {
	ch := make(chan State[T], 1)

	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	if h.closed {
		close(ch)
		h.mu.Unlock()
		return ch, func() {}
	}
	h.subs[id] = ch
	ch <- h.state
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
}

// Close cancels any in-flight fetch, ends all subscriptions and waits for
// running fetchers to return. The last state stays readable.
func (h *Hook[D, T]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	if h.state.Status == StatusLoading {
		close(h.done)
	}
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()

	h.wg.Wait()
}
