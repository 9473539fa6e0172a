package backend

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
)

// DefaultDebounce is the quiet period applied to typed queries.
const DefaultDebounce = 300 * time.Millisecond

// Reason records what triggered a resolution.
type Reason string

const (
	ReasonOpen    Reason = "open"
	ReasonAdvance Reason = "advance"
	ReasonRetreat Reason = "retreat"
	ReasonQuery   Reason = "query"
)

// Request asks for the options at Path filtered by Query.
type Request struct {
	Seq      uint64
	Path     []string
	Query    string
	Debounce bool
	Reason   Reason
}

// Key identifies the path a request was issued for.
func (r Request) Key() string {
	return PathKey(r.Path)
}

// Navigation reports whether committing the result also moves the path.
func (r Request) Navigation() bool {
	return r.Reason == ReasonOpen || r.Reason == ReasonAdvance || r.Reason == ReasonRetreat
}

// PathKey joins path segments into a comparable stamp.
func PathKey(path []string) string {
	return strings.Join(path, "\x00")
}

// Event carries the options resolved for a request.
type Event struct {
	Request Request
	Options []mention.Option
}

// ResolveFunc produces the ranked options at path for query.
type ResolveFunc func(ctx context.Context, path []string, query string) []mention.Option

// Querier runs resolutions off the UI goroutine and publishes events.
// Debounced requests wait for a quiet period; any newer request replaces a
// pending one. Requests already running are never aborted.
type Querier struct {
	resolve  ResolveFunc
	debounce *debouncer

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event

	mu        sync.Mutex
	stopped   bool
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewQuerier creates a querier that debounces typed queries by delay.
func NewQuerier(resolve ResolveFunc, delay time.Duration) *Querier {
	ctx, cancel := context.WithCancel(context.Background())
	return &Querier{
		resolve:  resolve,
		debounce: newDebouncer(delay),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
}

// Events returns the channel of resolved results.
func (q *Querier) Events() <-chan Event {
	return q.events
}

// Submit schedules req. Empty queries and non-debounced requests dispatch
// immediately and cancel any pending debounced request.
func (q *Querier) Submit(req Request) {
	req.Path = append([]string(nil), req.Path...)
	if req.Debounce && req.Query != "" && q.debounce.interval > 0 {
		q.debounce.schedule(func() { q.dispatch(req) })
		return
	}
	q.debounce.cancel()
	q.dispatch(req)
}

// Pending reports whether a debounced request is waiting to fire.
func (q *Querier) Pending() bool {
	return q.debounce.pending()
}

// Stop cancels pending requests and the worker context. In-flight
// resolutions finish, but their results are no longer delivered.
func (q *Querier) Stop() {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	q.debounce.stop()
	q.cancel()
}

// Wait blocks until every resolution goroutine has exited, then closes the
// event channel. Call after Stop.
func (q *Querier) Wait() {
	q.wg.Wait()
	q.closeOnce.Do(func() { close(q.events) })
}

func (q *Querier) dispatch(req Request) {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.wg.Add(1)
	q.mu.Unlock()

	go func() {
		defer q.wg.Done()
		var options []mention.Option
		if q.resolve != nil {
			options = q.resolve(q.ctx, req.Path, req.Query)
		}
		if options == nil {
			options = []mention.Option{}
		}
		events.Mention.Resolve(req.Seq, req.Path, req.Query, len(options))
		select {
		case <-q.ctx.Done():
		case q.events <- Event{Request: req, Options: options}:
		}
	}()
}
