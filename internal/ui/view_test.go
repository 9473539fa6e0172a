package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func containsPlain(s, substr string) bool {
	return strings.Contains(ansi.Strip(s), substr)
}

func TestViewListsRootCategoriesWithoutBreadcrumbs(t *testing.T) {
	h, _ := newTestHarness(t, Config{})
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "files "+icons.Category) || !strings.Contains(view, "folders "+icons.Category) {
		t.Fatalf("expected categories with chevrons, got:\n%s", view)
	}
	if strings.Contains(view, breadcrumbPrompt) {
		t.Fatalf("expected no breadcrumbs at the root, got:\n%s", view)
	}
}

func TestViewShowsBreadcrumbsAndFullNames(t *testing.T) {
	h, _ := newTestHarness(t, Config{})
	h.Press(tea.KeyEnter)
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "files"+strings.TrimRight(breadcrumbSeparator, " ")) || !strings.Contains(view, breadcrumbPrompt) {
		t.Fatalf("expected breadcrumb placeholder, got:\n%s", view)
	}
	if !strings.Contains(view, "main.go  src/main.go") {
		t.Fatalf("expected abbreviated and full name, got:\n%s", view)
	}
	if strings.Contains(view, "README.md  README.md") {
		t.Fatalf("expected identical names to render once, got:\n%s", view)
	}

	h.Type("util")
	view = ansi.Strip(h.View())
	if !strings.Contains(view, "files"+breadcrumbSeparator+"util") {
		t.Fatalf("expected typed text in breadcrumbs, got:\n%s", view)
	}
}

func TestViewShowsNoResults(t *testing.T) {
	h, _ := newTestHarness(t, Config{})
	h.Type("zzz")
	if view := h.View(); !containsPlain(view, emptyText) {
		t.Fatalf("expected empty message, got:\n%s", view)
	}
}

func TestViewShowsLoadingBeforeFirstResult(t *testing.T) {
	quietLogs(t)
	q := newSyncQuerier(resolveTree)
	q.hold = true
	m := NewModel(q, Config{})
	m.Init()
	if view := m.View(); !containsPlain(view, loadingText) {
		t.Fatalf("expected loading message, got:\n%s", view)
	}
}

func TestViewMarksRows(t *testing.T) {
	h, _ := newTestHarness(t, Config{})
	h.Press(tea.KeyEnter)
	h.Press(tea.KeyTab)
	view := ansi.Strip(h.View())
	if !strings.Contains(view, icons.Marked+" "+icons.File+" main.go") {
		t.Fatalf("expected marked row, got:\n%s", view)
	}
	if !strings.Contains(view, icons.Unmarked+" "+icons.File+" util.go") {
		t.Fatalf("expected unmarked row, got:\n%s", view)
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	quietLogs(t)
	leaves := make([]mention.Option, 30)
	for i := range leaves {
		name := fmt.Sprintf("file-%02d.txt", i)
		leaves[i] = mention.NewLeaf(name, name, mention.LeafFile, mention.Reference{Path: "/ws/" + name})
	}
	q := newSyncQuerier(func(_ context.Context, _ []string, _ string) []mention.Option { return leaves })
	h := NewHarness(NewModel(q, Config{Width: 40, Height: 8}))

	view := h.View()
	if containsPlain(view, "file-07.txt") {
		t.Fatalf("expected file-07 to be outside the initial viewport, view =\n%s", view)
	}
	for i := 0; i < 7; i++ {
		h.Press(tea.KeyDown)
	}
	view = h.View()
	if !containsPlain(view, "file-07.txt") {
		t.Fatalf("expected file-07 to be visible after scrolling, view =\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines > 8 {
		t.Fatalf("expected the view to fit 8 rows, got %d", lines)
	}
}

func TestViewShowsFooterAndStatus(t *testing.T) {
	h, _ := newTestHarness(t, Config{ShowFooter: true, Verbose: true})
	view := ansi.Strip(h.View())
	if !strings.Contains(view, footerText) {
		t.Fatalf("expected footer, got:\n%s", view)
	}
	if !strings.Contains(view, "2 options  0 marked  ready") {
		t.Fatalf("expected status line, got:\n%s", view)
	}
}

func TestApplyWidthTruncatesSuffixFirst(t *testing.T) {
	lines := applyWidth([]styledLine{
		{text: "▌ main.go", suffix: "src/deeply/nested/main.go"},
		{text: "▌ a-very-long-name.go", suffix: "x"},
	}, 16)
	if lines[0].text != "▌ main.go" || lines[0].suffix != "src/…" {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
	if lines[1].suffix != "" || lines[1].text != "▌ a-very-long-n…" {
		t.Fatalf("unexpected second line %+v", lines[1])
	}
}

func TestErrorLineIsRendered(t *testing.T) {
	h, _ := newTestHarness(t, Config{})
	h.Model().errMsg = "search failed"
	if view := h.View(); !containsPlain(view, "Error: search failed") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
}
