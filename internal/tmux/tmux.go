package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
)

// ResolveSocketPath picks the tmux socket from the flag, the environment, or
// the default per-user location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_MENTION_POPUP_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// CurrentPane returns the pane that launched the popup. The explicit value
// wins, then $TMUX_PANE, then the active pane reported by tmux.
func CurrentPane(socketPath, explicit string) (string, error) {
	if pane := strings.TrimSpace(explicit); pane != "" {
		return pane, nil
	}
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		return pane, nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return "", err
	}
	defer client.Close()
	pane, err := client.DisplayMessage("", "#{pane_id}")
	if err != nil {
		return "", fmt.Errorf("query active pane: %w", err)
	}
	if pane = strings.TrimSpace(pane); pane == "" {
		return "", ErrNoTargetPane
	}
	return pane, nil
}

// InsertText types text into pane literally, without pressing enter.
func InsertText(socketPath, pane, text string) error {
	pane = strings.TrimSpace(pane)
	if pane == "" {
		return ErrNoTargetPane
	}
	if text == "" {
		return nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	events.Command.Insert(pane, text)
	if _, err := client.Command("send-keys", "-t", pane, "-l", text); err != nil {
		return fmt.Errorf("send-keys to %s: %w", pane, err)
	}
	return nil
}

// Notify flashes message in the status line of the client showing pane.
func Notify(socketPath, pane, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	args := []string{"display-message"}
	if pane = strings.TrimSpace(pane); pane != "" {
		args = append(args, "-t", pane)
	}
	// tmux expands #{...} in the message; double the hashes to print them verbatim
	args = append(args, strings.ReplaceAll(message, "#", "##"))
	_, err = client.Command(args...)
	return err
}
