package mention

import (
	"path"
	"strings"
)

// FileOptions maps file search results to File leaves.
func FileOptions(ws Workspace, refs []Reference) []Option {
	options := make([]Option, 0, len(refs))
	for _, ref := range refs {
		if ref.Path == "" {
			continue
		}
		rel := ws.Relative(ref.Path)
		options = append(options, NewLeaf(rel, AbbreviatedName(rel), LeafFile, ref))
	}
	return options
}

// FolderOptions derives Folder leaves from file search results. Every
// ancestor directory of a file below its workspace root is emitted once,
// in first-seen order, named "/dir/sub" relative to the root.
func FolderOptions(ws Workspace, refs []Reference) []Option {
	seen := make(map[string]struct{})
	options := make([]Option, 0, len(refs))
	for _, ref := range refs {
		if ref.Path == "" {
			continue
		}
		root, ok := ws.Root(ref.Path)
		if !ok {
			continue
		}
		parts := strings.Split(ws.Relative(ref.Path), "/")
		current := ""
		for _, part := range parts[:len(parts)-1] {
			if part == "" {
				continue
			}
			current = current + "/" + part
			if _, dup := seen[current]; dup {
				continue
			}
			seen[current] = struct{}{}
			dir := Reference{Path: path.Join(root, current)}
			options = append(options, NewLeaf(current, AbbreviatedName(current), LeafFolder, dir))
		}
	}
	return options
}
