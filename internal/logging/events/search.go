package events

import "github.com/atomicstack/tmux-mention-popup/internal/logging"

type SearchTracer struct{}

type IndexTracer struct{}

var (
	Search = SearchTracer{}
	Index  = IndexTracer{}
)

func (SearchTracer) Files(query string, count int) {
	logging.Trace("search.files", map[string]interface{}{"query": query, "count": count})
}

func (SearchTracer) Folders(query string, count int) {
	logging.Trace("search.folders", map[string]interface{}{"query": query, "count": count})
}

func (SearchTracer) Error(query string, err error) {
	if err == nil {
		return
	}
	logging.Trace("search.error", map[string]interface{}{"query": query, "error": err.Error()})
}

func (IndexTracer) Built(roots []string, files int) {
	logging.Trace("index.built", map[string]interface{}{"roots": roots, "files": files})
}

func (IndexTracer) Refresh(trigger string) {
	logging.Trace("index.refresh", map[string]interface{}{"trigger": trigger})
}

func (IndexTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("index.error", map[string]interface{}{"error": err.Error()})
}
