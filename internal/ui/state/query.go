package state

import "github.com/atomicstack/tmux-mention-popup/internal/backend"

// AppendQuery adds text to the end of the query.
func (m *Menu) AppendQuery(text string) (backend.Request, bool) {
	if text == "" {
		return backend.Request{}, false
	}
	return m.SetQuery(m.Query + text), true
}

// DeleteQueryRune removes the last rune of the query.
func (m *Menu) DeleteQueryRune() (backend.Request, bool) {
	runes := []rune(m.Query)
	if len(runes) == 0 {
		return backend.Request{}, false
	}
	return m.SetQuery(string(runes[:len(runes)-1])), true
}

// ClearQuery empties the query.
func (m *Menu) ClearQuery() (backend.Request, bool) {
	if m.Query == "" {
		return backend.Request{}, false
	}
	return m.SetQuery(""), true
}
