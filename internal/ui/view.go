package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	previewPanelMinWidth = 40  // minimum cols for the preview panel; below this no split
	previewPanelFraction = 0.5 // fraction of total width given to the preview panel

	footerText       = "↑/↓ move  →/enter open  ← back  tab mark  esc close"
	breadcrumbPrompt = "Enter text to filter..."
	emptyText        = "No results found"
	loadingText      = "Loading…"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	suffix        string // rendered dim after text; dropped when truncated
}

// hasSidePreview reports whether a preview panel should be drawn beside the
// options.
func (m *Model) hasSidePreview() bool {
	return m.previewEnabled && m.preview != nil && m.previewPanelWidth() > 0
}

// previewPanelWidth returns the width in columns for the right-hand preview
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.hasSidePreview() {
		return m.viewSideBySide()
	}
	lines := m.contentLines(m.width)
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines) + "\n" + m.bottomBar()
}

// viewSideBySide renders the options on the left and a preview panel on the
// right.
func (m *Model) viewSideBySide() string {
	menuW := m.menuColumnWidth()
	prevW := m.previewPanelWidth()

	const bottomBarRows = 2
	panelH := m.height - bottomBarRows
	if panelH < 3 {
		panelH = 3
	}
	contentLines := m.contentLines(menuW)
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, menuW)

	// Pad every row to exactly menuW visible columns so the panel stays flush.
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	rightStr := m.renderPreviewPanel(m.preview, prevW, panelH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), rightStr)
	return top + "\n" + m.bottomBar()
}

func (m *Model) contentLines(width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	if header, ok := m.breadcrumbLine(); ok {
		lines = append(lines, header)
	}
	m.syncViewport()
	options := m.menu.Options
	switch {
	case len(options) == 0 && m.menu.Loading():
		lines = append(lines, styledLine{text: loadingText, style: styles.Loading})
	case len(options) == 0:
		lines = append(lines, styledLine{text: emptyText, style: styles.Info})
	default:
		start := 0
		display := options
		if maxItems := m.maxVisibleItems(); maxItems > 0 && len(display) > maxItems {
			start = m.menu.ViewportOffset
			display = display[start : start+maxItems]
		}
		for i, option := range display {
			lines = append(lines, m.buildOptionLine(option, start+i, width))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.verbose {
		lines = append(lines, styledLine{text: m.statusText(), style: styles.Footer})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	return lines
}

// breadcrumbLine renders the committed path followed by the typed query.
func (m *Model) breadcrumbLine() (styledLine, bool) {
	if !m.menu.ShowBreadcrumbs() {
		return styledLine{}, false
	}
	text := strings.Join(m.menu.Path, breadcrumbSeparator)
	if text != "" {
		text += breadcrumbSeparator
	}
	if m.menu.Query == "" {
		return styledLine{text: text, style: styles.Breadcrumb, suffix: breadcrumbPrompt}, true
	}
	return styledLine{text: text + m.menu.Query, style: styles.Breadcrumb}, true
}

func (m *Model) statusText() string {
	state := "ready"
	if m.menu.Loading() {
		state = "loading"
	}
	return fmt.Sprintf("%d options  %d marked  %s", len(m.menu.Options), len(m.menu.MarkedOptions()), state)
}

func (m *Model) bottomBar() string {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{statusLine}, m.width)
	return renderLines(bottom) + "\n" + m.filterPrompt()
}

// buildOptionLine constructs a single styledLine for an option. width is the
// target column width; when > 0 the text is padded so that the selected row's
// background spans the full container.
func (m *Model) buildOptionLine(option mention.Option, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if option.IsCategory() && styles.Category != nil {
		lineStyle = styles.Category
	}
	if idx == m.menu.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	mark := ""
	if len(m.menu.MarkedOptions()) > 0 && option.IsLeaf() {
		mark = icons.Unmarked + " "
		if m.menu.IsMarked(option) {
			mark = icons.Marked + " "
		}
	}
	name := option.AbbreviatedName
	if name == "" {
		name = option.FullName
	}
	text := indicator + " " + mark + optionIcon(option) + " " + name
	if option.IsCategory() {
		text += " " + icons.Category
	}
	suffix := ""
	if option.FullName != "" && option.FullName != name {
		suffix = option.FullName
	}
	if width > 0 && suffix == "" {
		if pad := width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
		suffix:        suffix,
	}
}

func optionIcon(option mention.Option) string {
	if option.IsCategory() {
		return icons.Folder
	}
	if option.LeafKind() == mention.LeafFolder {
		return icons.Folder
	}
	return icons.File
}

// renderPreviewPanel builds the bordered preview box as a string with exactly
// height rows and totalWidth columns.
func (m *Model) renderPreviewPanel(preview *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	border := styles.PreviewBorder.Render
	innerW := max(totalWidth-2, 1)
	innerH := max(height-2, 1)

	titleLabel := "Preview"
	scrollInfo := ""
	var contentLines []string
	var errLine string
	if preview != nil {
		if lbl := strings.TrimSpace(preview.label); lbl != "" {
			titleLabel = "Preview: " + lbl
		}
		switch {
		case preview.err != "":
			errLine = preview.err
		case len(preview.lines) > 0:
			maxOffset := max(len(preview.lines)-innerH, 0)
			preview.scrollOffset = min(max(preview.scrollOffset, 0), maxOffset)
			end := min(preview.scrollOffset+innerH, len(preview.lines))
			contentLines = preview.lines[preview.scrollOffset:end]
			scrollInfo = fmt.Sprintf(" %d/%d ", preview.scrollOffset+len(contentLines), len(preview.lines))
		case preview.loading:
			contentLines = []string{loadingText}
		}
	}

	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollSeg)
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = truncate.StringWithTail(titleSeg, uint(max(totalWidth-4, 1)), "…")
		dashes = max(totalWidth-4-lipgloss.Width(titleSeg), 0)
	}
	topLine := border(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		border(strings.Repeat(hz, dashes)) +
		styles.PreviewScroll.Render(scrollSeg) +
		border(hz+trc)
	bottomLine := border(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := styles.PreviewBody
	if errLine != "" {
		bodyStyle = styles.PreviewError
		contentLines = []string{errLine}
	}
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		if bodyStyle != nil {
			content = bodyStyle.Render(content)
		}
		rows = append(rows, border(vt)+content+border(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// handleMouseMsg scrolls the option list, or the preview panel when the
// pointer is over it.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if m.hasSidePreview() && ev.X >= m.menuColumnWidth() {
		preview := m.preview
		if preview.loading {
			return nil
		}
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			preview.scrollOffset = max(preview.scrollOffset-3, 0)
		case tea.MouseButtonWheelDown:
			maxOffset := max(len(preview.lines)-max(m.height-4, 1), 0)
			preview.scrollOffset = min(preview.scrollOffset+3, maxOffset)
		}
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		return m.moveCursor(m.menu.MoveCursorUp)
	case tea.MouseButtonWheelDown:
		return m.moveCursor(m.menu.MoveCursorDown)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if m.menu.ShowBreadcrumbs() {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.verbose {
		used++
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = line
		textW := len([]rune(line.text))
		if textW >= width {
			result[i].text = truncateText(line.text, width)
			result[i].suffix = ""
			continue
		}
		if line.suffix != "" {
			room := width - textW - 2
			if room <= 0 {
				result[i].suffix = ""
				continue
			}
			result[i].suffix = truncateText(strings.TrimRight(line.suffix, " "), room)
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		if line.suffix != "" {
			suffix := "  " + line.suffix
			if line.text == "" || strings.HasSuffix(line.text, breadcrumbSeparator) {
				suffix = line.suffix
			}
			if styles.FullName != nil {
				suffix = styles.FullName.Render(suffix)
			}
			text += suffix
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
