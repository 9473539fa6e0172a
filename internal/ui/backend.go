package ui

import (
	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

type queryEventMsg struct {
	event backend.Event
}

type queryDoneMsg struct{}

func waitForQueryEvent(q Querier) tea.Cmd {
	if q == nil {
		return nil
	}
	ch := q.Events()
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return queryDoneMsg{}
		}
		return queryEventMsg{event: evt}
	}
}

// submit hands req to the querier and arms a single wait for its result.
func (m *Model) submit(req backend.Request) tea.Cmd {
	if m.querier == nil {
		return nil
	}
	m.querier.Submit(req)
	return m.armWait()
}

func (m *Model) armWait() tea.Cmd {
	if m.waiting || m.querier == nil {
		return nil
	}
	m.waiting = true
	return waitForQueryEvent(m.querier)
}

func (m *Model) handleQueryEventMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(queryEventMsg)
	if !ok {
		return nil
	}
	m.waiting = false
	cmds := make([]tea.Cmd, 0, 2)
	if m.menu.Apply(update.event) {
		m.errMsg = ""
		m.syncViewport()
		if cmd := m.ensurePreview(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.menu.Loading() {
		if cmd := m.armWait(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleQueryDoneMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(queryDoneMsg); !ok {
		return nil
	}
	m.waiting = false
	m.querier = nil
	m.errMsg = "option resolver stopped"
	return nil
}
