package state

import "github.com/atomicstack/tmux-mention-popup/internal/mention"

// CloneOptions produces a shallow copy of the provided options.
func CloneOptions(options []mention.Option) []mention.Option {
	dup := make([]mention.Option, len(options))
	copy(dup, options)
	return dup
}
