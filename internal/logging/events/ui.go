package events

import "github.com/atomicstack/tmux-mention-popup/internal/logging"

type UITracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Command = CommandTracer{}
)

func (UITracer) Cursor(path []string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"path": joinPath(path), "cursor": cursor})
}

func (UITracer) Preview(target string, seq int) {
	logging.Trace("ui.preview", map[string]interface{}{"target": target, "seq": seq})
}

func (CommandTracer) Insert(pane, text string) {
	logging.Trace("command.insert", map[string]interface{}{"pane": pane, "text": text})
}

func (CommandTracer) Print(lines int) {
	logging.Trace("command.print", map[string]interface{}{"lines": lines})
}

func (CommandTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"error": err.Error()})
}
