package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+u", "ctrl+w", "alt+backspace":
		return true, m.queryChanged(m.menu.ClearQuery())
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.menu.Query == "" {
			if m.menu.AtRoot() {
				return true, m.dismiss("backspace")
			}
			return true, m.handleRetreatKey()
		}
		return true, m.queryChanged(m.menu.DeleteQueryRune())
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return true, m.queryChanged(m.menu.AppendQuery(string(msg.Runes)))
	case tea.KeySpace:
		return true, m.queryChanged(m.menu.AppendQuery(" "))
	}
	return false, nil
}

func (m *Model) queryChanged(req backend.Request, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	m.filterCursorDirty = true
	m.forceClearInfo()
	m.errMsg = ""
	return m.submit(req)
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "@ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.menu.Query
	if text == "" {
		runes := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	return prompt + render(styles.Filter, text) + m.renderFilterCursor(" ")
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
