package tmux

import (
	"errors"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrNoTargetPane is returned when no pane is known to receive inserted text.
var ErrNoTargetPane = errors.New("no target pane: run inside tmux or pass -target-pane")

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}
)

type tmuxClient interface {
	Command(parts ...string) (string, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}
