package events

import (
	"strings"

	"github.com/atomicstack/tmux-mention-popup/internal/logging"
)

type MentionTracer struct{}

var Mention = MentionTracer{}

func joinPath(path []string) string {
	return "/" + strings.Join(path, "/")
}

func (MentionTracer) Open() {
	logging.Trace("mention.open", nil)
}

func (MentionTracer) Advance(path []string) {
	logging.Trace("mention.advance", map[string]interface{}{"path": joinPath(path)})
}

func (MentionTracer) Retreat(path []string) {
	logging.Trace("mention.retreat", map[string]interface{}{"path": joinPath(path)})
}

func (MentionTracer) Query(path []string, query string, debounced bool) {
	logging.Trace("mention.query", map[string]interface{}{
		"path":      joinPath(path),
		"query":     query,
		"debounced": debounced,
	})
}

func (MentionTracer) Resolve(seq uint64, path []string, query string, count int) {
	logging.Trace("mention.resolve", map[string]interface{}{
		"seq":   seq,
		"path":  joinPath(path),
		"query": query,
		"count": count,
	})
}

func (MentionTracer) Stale(seq uint64, path []string, live []string) {
	logging.Trace("mention.stale", map[string]interface{}{
		"seq":  seq,
		"path": joinPath(path),
		"live": joinPath(live),
	})
}

func (MentionTracer) Mark(name string, marked bool) {
	logging.Trace("mention.mark", map[string]interface{}{"name": name, "marked": marked})
}

func (MentionTracer) Select(names []string) {
	logging.Trace("mention.select", map[string]interface{}{"names": names})
}

func (MentionTracer) Dismiss(reason string) {
	logging.Trace("mention.dismiss", map[string]interface{}{"reason": reason})
}
