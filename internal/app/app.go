package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	"github.com/atomicstack/tmux-mention-popup/internal/logging"
	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	"github.com/atomicstack/tmux-mention-popup/internal/tmux"
	"github.com/atomicstack/tmux-mention-popup/internal/ui"
	"github.com/atomicstack/tmux-mention-popup/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

// Insert formats accepted by Config.InsertFormat.
const (
	FormatName = "name"
	FormatPath = "path"
	FormatURI  = "uri"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	TargetPane   string
	Roots        []string
	Exclude      []string
	Debounce     time.Duration
	SearchLimit  int
	Width        int
	Height       int
	ShowFooter   bool
	Preview      bool
	Verbose      bool
	Print        bool
	InsertFormat string
}

var (
	runProgram = func(model *ui.Model) (tea.Model, error) {
		return tea.NewProgram(model, tea.WithAltScreen()).Run()
	}
	insertText  = tmux.InsertText
	notify      = tmux.Notify
	currentPane = tmux.CurrentPane

	stdout io.Writer = os.Stdout
)

// Run indexes the workspace, runs the picker and delivers the selection.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}

	roots := cfg.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	ix, err := workspace.New(workspace.Options{
		Roots:   roots,
		Exclude: cfg.Exclude,
		Limit:   cfg.SearchLimit,
	})
	if err != nil {
		return fmt.Errorf("index workspace: %w", err)
	}
	defer ix.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ix.Watch(ctx); err != nil {
		// a stale index is still usable
		logging.Error(fmt.Errorf("watch workspace: %w", err))
		events.Index.Error(err)
	}

	resolver := mention.NewResolver(ix, ix.Roots())
	querier := backend.NewQuerier(resolver.OptionsAt, cfg.Debounce)
	defer func() {
		querier.Stop()
		querier.Wait()
	}()

	model := ui.NewModel(querier, ui.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Preview:    cfg.Preview,
	})
	final, err := runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Exit(0, true)
		return nil
	}
	if err != nil {
		return err
	}
	if m, ok := final.(*ui.Model); ok {
		model = m
	}

	selection := model.Selection()
	events.App.Exit(len(selection), model.Dismissed())
	if len(selection) == 0 {
		return nil
	}
	return deliver(cfg, socketPath, selection)
}

func deliver(cfg Config, socketPath string, selection []mention.Option) error {
	if cfg.Print {
		lines := FormatLines(selection, cfg.InsertFormat)
		for _, line := range lines {
			fmt.Fprintln(stdout, line)
		}
		events.Command.Print(len(lines))
		return nil
	}

	pane, err := currentPane(socketPath, cfg.TargetPane)
	if err != nil {
		events.Command.Error(err)
		return fmt.Errorf("find target pane: %w", err)
	}
	text := FormatInsertion(selection, cfg.InsertFormat)
	if err := insertText(socketPath, pane, text); err != nil {
		events.Command.Error(err)
		if nerr := notify(socketPath, pane, "mention insert failed: "+err.Error()); nerr != nil {
			logging.Error(nerr)
		}
		return fmt.Errorf("insert mention: %w", err)
	}
	return nil
}

// FormatReference renders one selected leaf in the requested format.
func FormatReference(opt mention.Option, format string) string {
	switch format {
	case FormatPath:
		return "@" + opt.FullName
	case FormatURI:
		return opt.Reference().URI()
	default:
		return "@" + opt.AbbreviatedName
	}
}

// FormatLines renders each selected leaf on its own line.
func FormatLines(selection []mention.Option, format string) []string {
	lines := make([]string, 0, len(selection))
	for _, opt := range selection {
		if line := FormatReference(opt, format); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FormatInsertion joins the selection into the text typed into the pane.
// A trailing space keeps the cursor clear of the last mention.
func FormatInsertion(selection []mention.Option, format string) string {
	lines := FormatLines(selection, format)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, " ") + " "
}
