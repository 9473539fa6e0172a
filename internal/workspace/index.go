// Package workspace indexes the files below the workspace roots and serves
// fuzzy file searches to the mention resolver.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/logging"
	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// DefaultLimit caps the number of files returned by a search.
	DefaultLimit = 500
	// DefaultSettle is how long the watcher waits for the tree to settle
	// before rebuilding the index.
	DefaultSettle = 150 * time.Millisecond
)

// DefaultExcludes are applied when no exclude patterns are configured.
var DefaultExcludes = []string{
	"**/.git/**",
	"**/.hg/**",
	"**/.svn/**",
	"**/node_modules/**",
	"**/.DS_Store",
}

var errAlreadyWatching = errors.New("workspace index is already watching")

// Options configures an Index.
type Options struct {
	Roots   []string
	Exclude []string
	Limit   int
	Settle  time.Duration
}

type entry struct {
	path string
	rel  string
}

// Index is an in-memory list of the files below the workspace roots.
type Index struct {
	roots   []string
	exclude []string
	limit   int
	settle  time.Duration

	mu      sync.RWMutex
	entries []entry

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New validates opts and builds the initial index.
func New(opts Options) (*Index, error) {
	if len(opts.Roots) == 0 {
		return nil, errors.New("workspace: at least one root is required")
	}
	roots := make([]string, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve workspace root %q: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat workspace root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("workspace root %s is not a directory", abs)
		}
		roots = append(roots, abs)
	}
	exclude := opts.Exclude
	if len(exclude) == 0 {
		exclude = DefaultExcludes
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	settle := opts.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	ix := &Index{
		roots:   roots,
		exclude: append([]string(nil), exclude...),
		limit:   limit,
		settle:  settle,
	}
	if err := ix.Refresh(); err != nil {
		return nil, err
	}
	return ix, nil
}

// Roots returns the absolute workspace roots.
func (ix *Index) Roots() []string {
	return append([]string(nil), ix.roots...)
}

// Len returns the number of indexed files.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Refresh rebuilds the file list from disk.
func (ix *Index) Refresh() error {
	var entries []entry
	for _, root := range ix.roots {
		found, err := ix.walk(root)
		if err != nil {
			events.Index.Error(err)
			return err
		}
		entries = append(entries, found...)
	}
	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()
	events.Index.Built(ix.roots, len(entries))
	return nil
}

func (ix *Index) walk(root string) ([]entry, error) {
	var entries []entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// unreadable subtrees are skipped
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel := relative(root, path)
		if rel == "" {
			return nil
		}
		if d.IsDir() {
			if ix.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ix.excluded(rel) {
			return nil
		}
		entries = append(entries, entry{path: filepath.ToSlash(path), rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk workspace %s: %w", root, err)
	}
	return entries, nil
}

func (ix *Index) excluded(rel string) bool {
	for _, pattern := range ix.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// excludedPath matches an absolute path against the patterns of its root.
func (ix *Index) excludedPath(path string) bool {
	for _, root := range ix.roots {
		rel := relative(root, path)
		if rel == "" || strings.HasPrefix(rel, "../") || rel == ".." {
			continue
		}
		return ix.excluded(rel)
	}
	return false
}

// SearchFiles returns up to the configured limit of files whose relative path
// contains query as a case-insensitive subsequence, closest matches first.
// An empty query returns the first files in walk order.
func (ix *Index) SearchFiles(ctx context.Context, query string) ([]mention.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ix.mu.RLock()
	entries := ix.entries
	ix.mu.RUnlock()

	query = strings.TrimSpace(query)
	if query == "" {
		n := min(len(entries), ix.limit)
		refs := make([]mention.Reference, n)
		for i := 0; i < n; i++ {
			refs[i] = mention.Reference{Path: entries[i].path}
		}
		return refs, nil
	}

	targets := make([]string, len(entries))
	for i, e := range entries {
		targets[i] = e.rel
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)
	if len(ranks) > ix.limit {
		ranks = ranks[:ix.limit]
	}
	refs := make([]mention.Reference, len(ranks))
	for i, r := range ranks {
		refs[i] = mention.Reference{Path: entries[r.OriginalIndex].path}
	}
	return refs, nil
}

// Watch keeps the index current until ctx is cancelled or Close is called.
// Bursts of filesystem events are coalesced into a single rebuild.
func (ix *Index) Watch(ctx context.Context) error {
	ix.watchMu.Lock()
	defer ix.watchMu.Unlock()
	if ix.watcher != nil {
		return errAlreadyWatching
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create workspace watcher: %w", err)
	}
	for _, root := range ix.roots {
		if err := ix.addWatches(w, root); err != nil {
			w.Close()
			return err
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	ix.watcher = w
	ix.cancel = cancel
	ix.wg.Add(1)
	go ix.watchLoop(ctx, w)
	return nil
}

// Close stops watching and waits for the watch goroutine to exit.
func (ix *Index) Close() error {
	ix.watchMu.Lock()
	w, cancel := ix.watcher, ix.cancel
	ix.watcher, ix.cancel = nil, nil
	ix.watchMu.Unlock()
	if w == nil {
		return nil
	}
	cancel()
	err := w.Close()
	ix.wg.Wait()
	return err
}

func (ix *Index) addWatches(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watch workspace %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && ix.excludedPath(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logging.Error(fmt.Errorf("watch %s: %w", path, err))
		}
		return nil
	})
}

func (ix *Index) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer ix.wg.Done()
	timer := time.NewTimer(ix.settle)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-w.Events:
			if !ok {
				return
			}
			if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if ix.excludedPath(evt.Name) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := ix.addWatches(w, evt.Name); err != nil {
						logging.Error(err)
					}
				}
			}
			timer.Reset(ix.settle)
			fire = timer.C
		case <-fire:
			fire = nil
			events.Index.Refresh("fsnotify")
			if err := ix.Refresh(); err != nil {
				logging.Error(fmt.Errorf("refresh workspace index: %w", err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			events.Index.Error(err)
			logging.Error(fmt.Errorf("workspace watcher: %w", err))
		}
	}
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
