package events

import "github.com/atomicstack/tmux-mention-popup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(selected int, dismissed bool) {
	logging.Trace("app.exit", map[string]interface{}{"selected": selected, "dismissed": dismissed})
}
