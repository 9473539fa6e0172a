package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	"github.com/atomicstack/tmux-mention-popup/internal/mention"
	"github.com/atomicstack/tmux-mention-popup/internal/theme"
	uistate "github.com/atomicstack/tmux-mention-popup/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const breadcrumbSeparator = " › "

var (
	styles = theme.Default()
	icons  = theme.DefaultIcons()
)

type msgHandler func(tea.Msg) tea.Cmd

// Querier resolves menu requests asynchronously. *backend.Querier satisfies
// it.
type Querier interface {
	Submit(req backend.Request)
	Events() <-chan backend.Event
}

// Config holds the display settings of the picker.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Preview    bool
}

// Model implements the Bubble Tea model for the mention picker.
type Model struct {
	menu    *uistate.Menu
	querier Querier
	waiting bool

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	previewEnabled bool
	preview        *previewData
	previewSeq     int

	filterCursor      cursor.Model
	filterCursorDirty bool

	selection []mention.Option
	dismissed bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a picker that resolves its options through querier.
func NewModel(querier Querier, cfg Config) *Model {
	m := &Model{
		menu:           uistate.NewMenu(),
		querier:        querier,
		showFooter:     cfg.ShowFooter,
		verbose:        cfg.Verbose,
		previewEnabled: cfg.Preview,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.submit(m.menu.Open()); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Selection returns the leaves chosen when the picker completed, in
// insertion order. It is empty when the picker was dismissed.
func (m *Model) Selection() []mention.Option {
	return uistate.CloneOptions(m.selection)
}

// Dismissed reports whether the picker closed without a selection.
func (m *Model) Dismissed() bool {
	return m.dismissed
}

// Menu exposes the navigation state.
func (m *Model) Menu() *uistate.Menu {
	return m.menu
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(queryEventMsg{}):     m.handleQueryEventMsg,
		reflect.TypeOf(queryDoneMsg{}):      m.handleQueryDoneMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
