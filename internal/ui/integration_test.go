package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	"github.com/atomicstack/tmux-mention-popup/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

func TestPickerAgainstWorkspaceIndex(t *testing.T) {
	quietLogs(t)
	root := t.TempDir()
	for _, name := range []string{"cmd/main.go", "internal/app/app.go", "README.md"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	ix, err := workspace.New(workspace.Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("index workspace: %v", err)
	}
	resolver := mention.NewResolver(ix, ix.Roots())
	q := backend.NewQuerier(resolver.OptionsAt, 10*time.Millisecond)
	defer func() {
		q.Stop()
		q.Wait()
	}()

	h := NewHarness(NewModel(q, Config{Width: 80, Height: 20}))
	if got := fmt.Sprint(optionNames(h.Model().Menu().Options)); got != "[files folders]" {
		t.Fatalf("unexpected root options %s", got)
	}

	h.Type("app")
	if got := fmt.Sprint(optionNames(h.Model().Menu().Options)); got != "[/internal/app internal/app/app.go]" {
		t.Fatalf("expected folders before files, got %s", got)
	}

	h.Press(tea.KeyEnter)
	sel := h.Model().Selection()
	if !h.Quit() || len(sel) != 1 {
		t.Fatalf("expected a single selection, got %v", optionNames(sel))
	}
	want := filepath.ToSlash(filepath.Join(ix.Roots()[0], "internal", "app"))
	if sel[0].Reference().Path != want || sel[0].LeafKind() != mention.LeafFolder {
		t.Fatalf("unexpected reference %+v", sel[0].Reference())
	}
}

func TestPickerNavigatesIntoFiles(t *testing.T) {
	quietLogs(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.ts"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ix, err := workspace.New(workspace.Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("index workspace: %v", err)
	}
	resolver := mention.NewResolver(ix, ix.Roots())
	q := backend.NewQuerier(resolver.OptionsAt, 10*time.Millisecond)
	defer func() {
		q.Stop()
		q.Wait()
	}()

	h := NewHarness(NewModel(q, Config{}))
	h.Press(tea.KeyEnter)
	h.Type("IND")
	menu := h.Model().Menu()
	if fmt.Sprint(menu.Path) != "[files]" || fmt.Sprint(optionNames(menu.Options)) != "[index.ts]" {
		t.Fatalf("unexpected state %v %v", menu.Path, optionNames(menu.Options))
	}
	h.Press(tea.KeyEsc)
	if !h.Model().Dismissed() {
		t.Fatalf("expected escape to dismiss")
	}
}
