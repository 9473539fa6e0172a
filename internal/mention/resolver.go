package mention

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-mention-popup/internal/logging"
	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"golang.org/x/sync/errgroup"
)

const (
	CategoryFiles   = "files"
	CategoryFolders = "folders"
)

// Searcher finds workspace files for a query.
type Searcher interface {
	SearchFiles(ctx context.Context, query string) ([]Reference, error)
}

// Resolver walks the mention tree and ranks the options at a path.
type Resolver struct {
	searcher  Searcher
	workspace Workspace
	limit     int
}

// NewResolver constructs a resolver backed by searcher for the given roots.
func NewResolver(searcher Searcher, roots []string) *Resolver {
	return &Resolver{
		searcher:  searcher,
		workspace: NewWorkspace(roots),
		limit:     MaxOptions,
	}
}

// RootOptions returns the top-level categories.
func (r *Resolver) RootOptions() []Option {
	return []Option{
		NewDynamicCategory(CategoryFiles, CategoryFiles, r.searchFiles),
		NewDynamicCategory(CategoryFolders, CategoryFolders, r.searchFolders),
	}
}

// OptionsAt resolves the ranked options at path for query. Unknown path
// segments and search failures yield an empty list.
func (r *Resolver) OptionsAt(ctx context.Context, path []string, query string) []Option {
	candidates := r.RootOptions()
	var generate Generator
	for _, segment := range path {
		selected, ok := findOption(candidates, segment)
		if !ok {
			return []Option{}
		}
		candidates = selected.Next()
		generate = selected.Generator()
	}

	switch {
	case generate != nil:
		generated, err := generate(ctx, query)
		if err != nil {
			logging.Error(fmt.Errorf("generate options at %s: %w", strings.Join(path, "/"), err))
			return []Option{}
		}
		candidates = generated
	case len(path) == 0 && strings.TrimSpace(query) != "":
		candidates = r.searchEverything(ctx, query)
	}

	return Rank(candidates, query, r.limit)
}

func (r *Resolver) searchEverything(ctx context.Context, query string) []Option {
	var folders, files []Option
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := r.searchFolders(gctx, query)
		if err != nil {
			logging.Error(fmt.Errorf("search folders: %w", err))
			return nil
		}
		folders = found
		return nil
	})
	g.Go(func() error {
		found, err := r.searchFiles(gctx, query)
		if err != nil {
			logging.Error(fmt.Errorf("search files: %w", err))
			return nil
		}
		files = found
		return nil
	})
	_ = g.Wait()
	combined := make([]Option, 0, len(folders)+len(files))
	combined = append(combined, folders...)
	return append(combined, files...)
}

func (r *Resolver) searchFiles(ctx context.Context, query string) ([]Option, error) {
	refs, err := r.search(ctx, query)
	if err != nil {
		return nil, err
	}
	options := FileOptions(r.workspace, refs)
	events.Search.Files(query, len(options))
	return options, nil
}

func (r *Resolver) searchFolders(ctx context.Context, query string) ([]Option, error) {
	refs, err := r.search(ctx, query)
	if err != nil {
		return nil, err
	}
	options := FolderOptions(r.workspace, refs)
	events.Search.Folders(query, len(options))
	return options, nil
}

func (r *Resolver) search(ctx context.Context, query string) ([]Reference, error) {
	if r.searcher == nil {
		return nil, fmt.Errorf("no file searcher configured")
	}
	refs, err := r.searcher.SearchFiles(ctx, query)
	if err != nil {
		events.Search.Error(query, err)
		return nil, err
	}
	return refs, nil
}

func findOption(options []Option, name string) (Option, bool) {
	for _, option := range options {
		if strings.EqualFold(option.FullName, name) {
			return option, true
		}
	}
	return Option{}, false
}
