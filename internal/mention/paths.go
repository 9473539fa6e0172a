package mention

import (
	"path/filepath"
	"sort"
	"strings"
)

// Workspace resolves paths relative to a set of workspace roots.
type Workspace struct {
	roots []string
}

// NewWorkspace normalises roots and orders them most specific first.
func NewWorkspace(roots []string) Workspace {
	cleaned := make([]string, 0, len(roots))
	seen := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		root = strings.TrimRight(unixify(filepath.Clean(root)), "/")
		if root == "" {
			root = "/"
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		cleaned = append(cleaned, root)
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})
	return Workspace{roots: cleaned}
}

// Roots returns the workspace roots, longest first.
func (w Workspace) Roots() []string {
	return append([]string(nil), w.roots...)
}

// Root returns the root containing path, preferring the most specific one.
func (w Workspace) Root(path string) (string, bool) {
	p := withSlash(unixify(path))
	for _, root := range w.roots {
		if strings.HasPrefix(p, withSlash(root)) {
			return root, true
		}
	}
	return "", false
}

// Relative returns path relative to its workspace root. Paths outside every
// root are returned unchanged (with unified separators).
func (w Workspace) Relative(path string) string {
	p := unixify(path)
	root, ok := w.Root(p)
	if !ok {
		return p
	}
	rel := strings.TrimPrefix(p, root)
	return strings.TrimPrefix(rel, "/")
}

// Basename returns the last parts segments of a slash-separated path.
func Basename(path string, parts int) string {
	p := unixify(path)
	segments := strings.Split(p, "/")
	if parts <= 0 || len(segments) == 0 {
		return p
	}
	if parts > len(segments) {
		parts = len(segments)
	}
	return strings.Join(segments[len(segments)-parts:], "/")
}

// AbbreviatedName is the label inserted for a selected path.
func AbbreviatedName(relativePath string) string {
	return Basename(relativePath, 1)
}

func unixify(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

func withSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
