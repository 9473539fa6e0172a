package state

import (
	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
)

// IsMarked reports whether option has been marked for insertion.
func (m *Menu) IsMarked(option mention.Option) bool {
	if m.marked == nil {
		return false
	}
	_, ok := m.marked[option.Key()]
	return ok
}

// ToggleMark toggles the mark on the highlighted leaf. Categories cannot be
// marked.
func (m *Menu) ToggleMark() bool {
	current, ok := m.Current()
	if !ok || !current.IsLeaf() {
		return false
	}
	if m.marked == nil {
		m.marked = make(map[string]mention.Option)
	}
	key := current.Key()
	if _, ok := m.marked[key]; ok {
		delete(m.marked, key)
		for i, k := range m.markOrder {
			if k == key {
				m.markOrder = append(m.markOrder[:i], m.markOrder[i+1:]...)
				break
			}
		}
		events.Mention.Mark(current.FullName, false)
		return true
	}
	m.marked[key] = current
	m.markOrder = append(m.markOrder, key)
	events.Mention.Mark(current.FullName, true)
	return true
}

// ClearMarks drops every mark.
func (m *Menu) ClearMarks() {
	m.marked = make(map[string]mention.Option)
	m.markOrder = nil
}

// MarkedOptions returns the marked leaves in the order they were marked.
// Marks survive navigation between categories.
func (m *Menu) MarkedOptions() []mention.Option {
	if len(m.markOrder) == 0 {
		return nil
	}
	out := make([]mention.Option, 0, len(m.markOrder))
	for _, key := range m.markOrder {
		out = append(out, m.marked[key])
	}
	return out
}

// Selection returns the leaves to insert when the highlighted leaf is
// chosen: the marked leaves followed by the highlighted one, without
// duplicates. It reports false when the cursor is not on a leaf.
func (m *Menu) Selection() ([]mention.Option, bool) {
	current, ok := m.Current()
	if !ok || !current.IsLeaf() {
		return nil, false
	}
	selected := m.MarkedOptions()
	if !m.IsMarked(current) {
		selected = append(selected, current)
	}
	return selected, true
}
