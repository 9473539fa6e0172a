package state

import (
	"fmt"
	"testing"

	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
)

func category(name string) mention.Option {
	return mention.NewDynamicCategory(name, name, nil)
}

func file(name string) mention.Option {
	return mention.NewLeaf(name, mention.AbbreviatedName(name), mention.LeafFile, mention.Reference{Path: "/ws/" + name})
}

func optionNames(options []mention.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.FullName
	}
	return out
}

func openAtRoot(t *testing.T) *Menu {
	t.Helper()
	m := NewMenu()
	req := m.Open()
	if !m.Apply(backend.Event{Request: req, Options: []mention.Option{category("files"), category("folders")}}) {
		t.Fatalf("expected open result to apply")
	}
	return m
}

func TestOpenRequestsRoot(t *testing.T) {
	m := NewMenu()
	req := m.Open()
	if req.Reason != backend.ReasonOpen || len(req.Path) != 0 || req.Query != "" || req.Debounce {
		t.Fatalf("unexpected open request %+v", req)
	}
	if !m.Loading() {
		t.Fatalf("expected menu to be loading")
	}
}

func TestAdvanceCommitsPathOnResult(t *testing.T) {
	m := openAtRoot(t)
	m.Cursor = 1
	req, ok := m.Advance()
	if !ok {
		t.Fatalf("expected advance on a category")
	}
	if fmt.Sprint(req.Path) != "[folders]" || req.Debounce {
		t.Fatalf("unexpected advance request %+v", req)
	}
	if !m.AtRoot() {
		t.Fatalf("path must not change before the result arrives")
	}
	if !m.Apply(backend.Event{Request: req, Options: []mention.Option{file("/src")}}) {
		t.Fatalf("expected advance result to apply")
	}
	if fmt.Sprint(m.Path) != "[folders]" || m.Query != "" || m.Cursor != 0 {
		t.Fatalf("unexpected state path=%v query=%q cursor=%d", m.Path, m.Query, m.Cursor)
	}
	if m.Loading() {
		t.Fatalf("expected loading to clear")
	}
}

func TestAdvanceOnLeafIsRejected(t *testing.T) {
	m := newTestMenu("main.go")
	if _, ok := m.Advance(); ok {
		t.Fatalf("expected advance on leaf to be rejected")
	}
	empty := NewMenu()
	if _, ok := empty.Advance(); ok {
		t.Fatalf("expected advance with no options to be rejected")
	}
}

func TestRetreat(t *testing.T) {
	m := NewMenu()
	if _, ok := m.Retreat(); ok {
		t.Fatalf("expected retreat at root to be rejected")
	}
	m.Path = []string{"files"}
	m.Query = "abc"
	req, ok := m.Retreat()
	if !ok || len(req.Path) != 0 || req.Reason != backend.ReasonRetreat {
		t.Fatalf("unexpected retreat request %+v", req)
	}
	if !m.Apply(backend.Event{Request: req, Options: []mention.Option{category("files")}}) {
		t.Fatalf("expected retreat result to apply")
	}
	if !m.AtRoot() || m.Query != "" {
		t.Fatalf("expected root with cleared query, got path=%v query=%q", m.Path, m.Query)
	}
}

func TestSetQueryDebouncesNonEmpty(t *testing.T) {
	m := openAtRoot(t)
	req := m.SetQuery("ab")
	if !req.Debounce || req.Query != "ab" || req.Reason != backend.ReasonQuery {
		t.Fatalf("unexpected query request %+v", req)
	}
	if m.Query != "ab" {
		t.Fatalf("expected query to update immediately")
	}
	if req := m.SetQuery(""); req.Debounce {
		t.Fatalf("expected empty query to be immediate")
	}
}

func TestQueryEditing(t *testing.T) {
	m := openAtRoot(t)
	if _, ok := m.DeleteQueryRune(); ok {
		t.Fatalf("expected delete on empty query to be rejected")
	}
	if _, ok := m.AppendQuery(""); ok {
		t.Fatalf("expected empty append to be rejected")
	}
	m.AppendQuery("é")
	m.AppendQuery("x")
	req, ok := m.DeleteQueryRune()
	if !ok || req.Query != "é" || m.Query != "é" {
		t.Fatalf("expected rune-aware delete, got %q", m.Query)
	}
	req, ok = m.ClearQuery()
	if !ok || req.Query != "" || req.Debounce {
		t.Fatalf("unexpected clear request %+v", req)
	}
	if _, ok := m.ClearQuery(); ok {
		t.Fatalf("expected clearing an empty query to be rejected")
	}
}

// A slow result for a path the user has already left must never replace the
// options of the path they are now on.
func TestApplyDiscardsResultsForOtherPaths(t *testing.T) {
	m := openAtRoot(t)
	m.Cursor = 0
	toFiles, _ := m.Advance()
	m.Cursor = 1
	toFolders, _ := m.Advance()

	if !m.Apply(backend.Event{Request: toFolders, Options: []mention.Option{file("/src")}}) {
		t.Fatalf("expected folders result to apply")
	}
	if m.Apply(backend.Event{Request: toFiles, Options: []mention.Option{file("main.go")}}) {
		t.Fatalf("expected stale files result to be discarded")
	}
	if fmt.Sprint(m.Path) != "[folders]" || fmt.Sprint(optionNames(m.Options)) != "[/src]" {
		t.Fatalf("stale result leaked: path=%v options=%v", m.Path, optionNames(m.Options))
	}
}

func TestApplyDiscardsOlderResultsForSamePath(t *testing.T) {
	m := openAtRoot(t)
	slow := m.SetQuery("abc")
	fast := m.SetQuery("")
	if !m.Apply(backend.Event{Request: fast, Options: []mention.Option{category("files"), category("folders")}}) {
		t.Fatalf("expected newest result to apply")
	}
	if m.Apply(backend.Event{Request: slow, Options: []mention.Option{file("abc.go")}}) {
		t.Fatalf("expected older result to be discarded")
	}
	if fmt.Sprint(optionNames(m.Options)) != "[files folders]" {
		t.Fatalf("unexpected options %v", optionNames(m.Options))
	}
}

func TestApplyResetsCursorAndViewport(t *testing.T) {
	m := openAtRoot(t)
	m.Cursor = 1
	m.ViewportOffset = 1
	req := m.SetQuery("f")
	if !m.Apply(backend.Event{Request: req, Options: []mention.Option{category("files"), category("folders")}}) {
		t.Fatalf("expected query result to apply")
	}
	if m.Cursor != 0 || m.ViewportOffset != 0 {
		t.Fatalf("expected cursor and viewport reset, got %d/%d", m.Cursor, m.ViewportOffset)
	}
	if m.Query != "f" {
		t.Fatalf("query results must keep the typed query, got %q", m.Query)
	}
	if !m.ShowBreadcrumbs() {
		t.Fatalf("expected breadcrumbs once text is typed")
	}
}

func TestQueryWhileAdvancingKeepsLastPath(t *testing.T) {
	m := openAtRoot(t)
	advance, _ := m.Advance()
	query := m.SetQuery("x")
	if m.Apply(backend.Event{Request: advance, Options: []mention.Option{file("a.go")}}) {
		t.Fatalf("expected advance superseded by a query at the committed path")
	}
	if !m.Apply(backend.Event{Request: query}) {
		t.Fatalf("expected query result to apply")
	}
	if !m.AtRoot() || len(m.Options) != 0 {
		t.Fatalf("unexpected state path=%v options=%v", m.Path, optionNames(m.Options))
	}
}

func eventFor(req backend.Request, options ...mention.Option) backend.Event {
	return backend.Event{Request: req, Options: options}
}
