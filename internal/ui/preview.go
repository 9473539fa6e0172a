package ui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atomicstack/tmux-mention-popup/internal/format/table"
	"github.com/atomicstack/tmux-mention-popup/internal/logging/events"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const previewMaxLines = 200

type previewData struct {
	target       string
	label        string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int
}

type previewLoadedMsg struct {
	target string
	seq    int
	lines  []string
	err    error
}

var (
	filePreviewFn   = readFilePreview
	folderPreviewFn = readFolderPreview
)

// ensurePreview loads the preview for the highlighted leaf when it changed.
func (m *Model) ensurePreview() tea.Cmd {
	if !m.previewEnabled {
		return nil
	}
	current, ok := m.menu.Current()
	if !ok || !current.IsLeaf() || current.Reference().Path == "" {
		m.preview = nil
		return nil
	}
	target := current.Reference().Path
	if m.preview != nil && m.preview.target == target {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview = &previewData{
		target:  target,
		label:   current.FullName,
		loading: true,
		seq:     seq,
	}
	events.UI.Preview(target, seq)
	load := filePreviewFn
	if current.LeafKind() == mention.LeafFolder {
		load = folderPreviewFn
	}
	return func() tea.Msg {
		lines, err := load(target)
		return previewLoadedMsg{target: target, seq: seq, lines: lines, err: err}
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	data := m.preview
	if data == nil || data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	data.scrollOffset = 0
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
	} else {
		data.err = ""
		data.lines = update.lines
	}
	m.syncViewport()
	return nil
}

func readFilePreview(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := make([]string, 0, 32)
	for scanner.Scan() && len(lines) < previewMaxLines {
		line := scanner.Bytes()
		if bytes.IndexByte(line, 0) >= 0 {
			return []string{"(binary file)"}, nil
		}
		text := ansi.Strip(string(line))
		lines = append(lines, strings.ReplaceAll(text, "\t", "    "))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(lines) == 0 {
		return []string{"(empty file)"}, nil
	}
	return lines, nil
}

func readFolderPreview(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []string{"(empty folder)"}, nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		name, size := entry.Name(), ""
		if entry.IsDir() {
			name += "/"
		} else if info, err := entry.Info(); err == nil {
			size = formatSize(info.Size())
		}
		rows = append(rows, []string{name, size})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	if len(rows) > previewMaxLines {
		rows = rows[:previewMaxLines]
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines, nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
