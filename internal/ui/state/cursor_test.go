package state

import (
	"fmt"
	"testing"

	"github.com/atomicstack/tmux-mention-popup/internal/mention"
)

func newTestMenu(names ...string) *Menu {
	m := NewMenu()
	m.Options = make([]mention.Option, len(names))
	for i, name := range names {
		m.Options[i] = mention.NewLeaf(name, name, mention.LeafFile, mention.Reference{Path: "/ws/" + name})
	}
	return m
}

func TestMoveCursorWraps(t *testing.T) {
	m := newTestMenu("a", "b", "c")
	if !m.MoveCursorUp() || m.Cursor != 2 {
		t.Fatalf("expected wrap to bottom, got %d", m.Cursor)
	}
	if !m.MoveCursorDown() || m.Cursor != 0 {
		t.Fatalf("expected wrap to top, got %d", m.Cursor)
	}
	if !m.MoveCursorDown() || m.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor)
	}

	single := newTestMenu("only")
	if single.MoveCursorDown() {
		t.Fatalf("expected no movement with a single option")
	}

	empty := newTestMenu()
	empty.Cursor = 3
	if empty.MoveCursorUp() || empty.Cursor != 0 {
		t.Fatalf("expected empty menu to reset cursor, got %d", empty.Cursor)
	}
}

func TestMoveCursorHome(t *testing.T) {
	m := newTestMenu("a", "b", "c")
	m.Cursor = 2
	if !m.MoveCursorHome() {
		t.Fatalf("expected move when options exist")
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor)
	}

	empty := newTestMenu()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty menu")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	m := newTestMenu("a", "b", "c")
	if !m.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if m.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor)
	}
	if m.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
}

func TestMoveCursorPagingClamps(t *testing.T) {
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("f%02d", i)
	}
	m := newTestMenu(names...)
	if !m.MoveCursorPageDown() || m.Cursor != 10 {
		t.Fatalf("expected cursor 10, got %d", m.Cursor)
	}
	m.MoveCursorPageDown()
	if !m.MoveCursorPageDown() || m.Cursor != 24 {
		t.Fatalf("expected clamp to 24, got %d", m.Cursor)
	}
	if m.MoveCursorPageDown() {
		t.Fatalf("expected no movement past end")
	}
	if !m.MoveCursorPageUp() || m.Cursor != 14 {
		t.Fatalf("expected cursor 14, got %d", m.Cursor)
	}
	m.MoveCursorPageUp()
	if !m.MoveCursorPageUp() || m.Cursor != 0 {
		t.Fatalf("expected clamp to 0, got %d", m.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	m := newTestMenu("a", "b", "c", "d", "e")
	m.Cursor = 4
	m.EnsureCursorVisible(2)
	if m.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", m.ViewportOffset)
	}

	m.Cursor = -1
	m.EnsureCursorVisible(2)
	if m.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", m.Cursor)
	}

	m.ViewportOffset = 4
	m.EnsureCursorVisible(0)
	if m.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", m.ViewportOffset)
	}

	m.ViewportOffset = 4
	m.Cursor = 1
	m.EnsureCursorVisible(3)
	if m.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", m.ViewportOffset)
	}
}
