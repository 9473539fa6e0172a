package state

import (
	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
)

// Menu is the navigation state of an open mention picker: the committed
// path, the typed query, and the options last resolved for them.
//
// Every resolution request is stamped with the path it was issued for. A
// result is applied only when that stamp matches the most recently requested
// path and it is not older than the last result applied for that path.
type Menu struct {
	Path           []string
	Query          string
	Options        []mention.Option
	Cursor         int
	ViewportOffset int

	marked    map[string]mention.Option
	markOrder []string

	live     string
	livePath []string
	seq      uint64
	lastSeq  uint64
	loading  bool
}

// NewMenu returns a closed menu.
func NewMenu() *Menu {
	return &Menu{marked: make(map[string]mention.Option)}
}

// Open resets the menu to the root and returns the initial request.
func (m *Menu) Open() backend.Request {
	m.Path = nil
	m.Query = ""
	m.Options = nil
	m.Cursor = 0
	m.ViewportOffset = 0
	m.lastSeq = 0
	m.ClearMarks()
	events.Mention.Open()
	return m.request(nil, "", backend.ReasonOpen)
}

// Advance requests the children of the highlighted category. It reports false
// when the cursor is not on a category.
func (m *Menu) Advance() (backend.Request, bool) {
	current, ok := m.Current()
	if !ok || !current.IsCategory() {
		return backend.Request{}, false
	}
	path := make([]string, 0, len(m.Path)+1)
	path = append(path, m.Path...)
	path = append(path, current.FullName)
	events.Mention.Advance(path)
	return m.request(path, "", backend.ReasonAdvance), true
}

// Retreat requests the parent of the current path. It reports false at the
// root.
func (m *Menu) Retreat() (backend.Request, bool) {
	if len(m.Path) == 0 {
		return backend.Request{}, false
	}
	path := append([]string(nil), m.Path[:len(m.Path)-1]...)
	events.Mention.Retreat(path)
	return m.request(path, "", backend.ReasonRetreat), true
}

// SetQuery records query and requests the options at the current path.
// Non-empty queries are debounced.
func (m *Menu) SetQuery(query string) backend.Request {
	m.Query = query
	req := m.request(m.Path, query, backend.ReasonQuery)
	req.Debounce = query != ""
	events.Mention.Query(m.Path, query, req.Debounce)
	return req
}

func (m *Menu) request(path []string, query string, reason backend.Reason) backend.Request {
	m.seq++
	m.livePath = append([]string(nil), path...)
	m.live = backend.PathKey(path)
	m.loading = true
	return backend.Request{
		Seq:    m.seq,
		Path:   append([]string(nil), path...),
		Query:  query,
		Reason: reason,
	}
}

// Apply commits evt when it answers the live path and is not older than the
// last applied result. It reports whether the event was applied.
func (m *Menu) Apply(evt backend.Event) bool {
	req := evt.Request
	if req.Key() != m.live || req.Seq < m.lastSeq {
		events.Mention.Stale(req.Seq, req.Path, m.livePath)
		return false
	}
	m.lastSeq = req.Seq
	if req.Seq == m.seq {
		m.loading = false
	}
	m.Options = CloneOptions(evt.Options)
	m.Cursor = 0
	m.ViewportOffset = 0
	if req.Navigation() {
		m.Path = append([]string(nil), req.Path...)
		m.Query = ""
	}
	return true
}

// Loading reports whether the most recent request is still unanswered.
func (m *Menu) Loading() bool {
	return m.loading
}

// Current returns the highlighted option.
func (m *Menu) Current() (mention.Option, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return mention.Option{}, false
	}
	return m.Options[m.Cursor], true
}

// AtRoot reports whether no category has been entered.
func (m *Menu) AtRoot() bool {
	return len(m.Path) == 0
}

// ShowBreadcrumbs reports whether the path trail should be displayed.
func (m *Menu) ShowBreadcrumbs() bool {
	return len(m.Path) > 0 || m.Query != ""
}
