package state

// PageSize is the number of rows PageUp and PageDown move.
const PageSize = 10

// MoveCursorUp moves the cursor up one row, wrapping to the bottom.
func (m *Menu) MoveCursorUp() bool {
	return m.wrapBy(-1)
}

// MoveCursorDown moves the cursor down one row, wrapping to the top.
func (m *Menu) MoveCursorDown() bool {
	return m.wrapBy(1)
}

// MoveCursorHome moves the cursor to the first option.
func (m *Menu) MoveCursorHome() bool {
	if len(m.Options) == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor = 0
	return old != m.Cursor
}

// MoveCursorEnd moves the cursor to the last option.
func (m *Menu) MoveCursorEnd() bool {
	n := len(m.Options)
	if n == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor = n - 1
	return old != m.Cursor
}

// MoveCursorPageUp moves the cursor up by PageSize, stopping at the top.
func (m *Menu) MoveCursorPageUp() bool {
	return m.clampBy(-PageSize)
}

// MoveCursorPageDown moves the cursor down by PageSize, stopping at the bottom.
func (m *Menu) MoveCursorPageDown() bool {
	return m.clampBy(PageSize)
}

func (m *Menu) wrapBy(delta int) bool {
	n := len(m.Options)
	if n == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor = ((m.Cursor+delta)%n + n) % n
	return old != m.Cursor
}

func (m *Menu) clampBy(delta int) bool {
	if len(m.Options) == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Options) {
		m.Cursor = len(m.Options) - 1
	}
	return m.Cursor != old
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (m *Menu) EnsureCursorVisible(maxVisible int) {
	if len(m.Options) == 0 {
		m.Cursor = 0
		m.ViewportOffset = 0
		return
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Options) {
		m.Cursor = len(m.Options) - 1
	}
	if maxVisible <= 0 {
		m.ViewportOffset = 0
		return
	}
	maxOffset := max(len(m.Options)-maxVisible, 0)
	m.ViewportOffset = min(max(m.ViewportOffset, 0), maxOffset)
	if m.Cursor < m.ViewportOffset {
		m.ViewportOffset = m.Cursor
	}
	if upper := m.ViewportOffset + maxVisible - 1; m.Cursor > upper {
		m.ViewportOffset = min(max(m.Cursor-maxVisible+1, 0), maxOffset)
	}
}
