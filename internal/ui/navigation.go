package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.dismiss("interrupt")
	case "esc":
		return m.dismiss("escape")
	case "enter", "right":
		return m.handleEnterKey()
	case "left":
		return m.handleRetreatKey()
	case "tab":
		return m.handleMarkKey()
	case "up":
		return m.moveCursor(m.menu.MoveCursorUp)
	case "down":
		return m.moveCursor(m.menu.MoveCursorDown)
	case "ctrl+up", "alt+up", "home":
		return m.moveCursor(m.menu.MoveCursorHome)
	case "ctrl+down", "alt+down", "end":
		return m.moveCursor(m.menu.MoveCursorEnd)
	case "pgup":
		return m.moveCursor(m.menu.MoveCursorPageUp)
	case "pgdown":
		return m.moveCursor(m.menu.MoveCursorPageDown)
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	return nil
}

// handleEnterKey advances into a category or completes with the highlighted
// leaf and any marked leaves.
func (m *Model) handleEnterKey() tea.Cmd {
	current, ok := m.menu.Current()
	if !ok {
		return nil
	}
	if current.IsCategory() {
		req, ok := m.menu.Advance()
		if !ok {
			return nil
		}
		m.errMsg = ""
		m.forceClearInfo()
		return m.submit(req)
	}
	selected, ok := m.menu.Selection()
	if !ok {
		return nil
	}
	names := make([]string, 0, len(selected))
	for _, option := range selected {
		names = append(names, option.FullName)
	}
	events.Mention.Select(names)
	m.selection = selected
	return tea.Quit
}

func (m *Model) handleRetreatKey() tea.Cmd {
	req, ok := m.menu.Retreat()
	if !ok {
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	return m.submit(req)
}

func (m *Model) handleMarkKey() tea.Cmd {
	current, ok := m.menu.Current()
	if !ok {
		return nil
	}
	if !current.IsLeaf() {
		m.setInfo("Categories cannot be marked.")
		return nil
	}
	m.menu.ToggleMark()
	if count := len(m.menu.MarkedOptions()); count > 0 {
		m.setInfo(fmt.Sprintf("%d marked", count))
	} else {
		m.forceClearInfo()
	}
	return nil
}

func (m *Model) dismiss(reason string) tea.Cmd {
	events.Mention.Dismiss(reason)
	m.selection = nil
	m.dismissed = true
	return tea.Quit
}

func (m *Model) moveCursor(move func() bool) tea.Cmd {
	if !move() {
		return nil
	}
	events.UI.Cursor(m.menu.Path, m.menu.Cursor)
	m.syncViewport()
	return m.ensurePreview()
}

func (m *Model) syncViewport() {
	m.menu.EnsureCursorVisible(m.maxVisibleItems())
}
