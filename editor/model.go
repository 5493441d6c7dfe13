package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/atmention/document"
	"github.com/iw2rmb/atmention/mention"
	"github.com/iw2rmb/atmention/schedule"
	"github.com/iw2rmb/atmention/selection"
	"github.com/iw2rmb/atmention/slot"
)

// Model is a Bubble Tea component that renders and edits a slot document.
//
// Copies of a Model share the document, so hosts must keep only the value
// returned by the latest Update.
type Model struct {
	cfg Config
	doc *docState

	focused bool

	viewport viewport.Model

	zonePrefix string
	popup      popupState
	highlight  int
	focusID    string
	cursorRow  int

	lastVersion uint64
	lastSel     uint64
}

func New(cfg Config) (Model, error) {
	cfg = normalizeConfig(cfg)
	d, err := newDocState(cfg)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:      cfg,
		doc:      d,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	if cfg.Zones != nil {
		m.zonePrefix = cfg.Zones.NewPrefix()
	}
	m.lastVersion = d.version
	m.lastSel = d.sel.Version()
	m.rebuildContent()
	return m, nil
}

// Init starts timers for work queued while loading.
func (m Model) Init() tea.Cmd { return m.doc.sched.Cmd() }

func (m Model) Root() *slot.Slot { return m.doc.root }

func (m Model) Selection() selection.Position { return m.doc.sel.Position() }

// Version is the document version reported in change events.
func (m Model) Version() uint64 { return m.doc.version }

// Text flattens the document, writing mentions as "@" + query.
func (m Model) Text() string { return m.doc.text() }

// HTML serializes the document.
func (m Model) HTML() (string, error) { return document.Write(m.doc.root) }

// FocusedMention returns the mention holding the selection.
func (m Model) FocusedMention() (*mention.Widget, bool) {
	return mentionOf(m.doc.sel.Slot())
}

// Highlighted is the popup row that Enter or Tab would pick.
func (m Model) Highlighted() int { return m.highlight }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if m.cfg.ShowStatus && height > 0 {
		height--
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case schedule.FiredMsg:
		m.doc.sched.Handle(msg)
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}
	m.sync()
	return m, tea.Batch(cmd, m.doc.sched.Cmd())
}

// ActivateSuggestion picks the i-th suggestion of the focused mention. The
// returned command starts the timer for the suggestions the new text
// triggers.
func (m Model) ActivateSuggestion(i int) (Model, tea.Cmd, error) {
	w, ok := m.FocusedMention()
	if !ok {
		return m, nil, ErrNoMention
	}
	if err := w.Select(i); err != nil {
		return m, nil, err
	}
	m.sync()
	return m, m.doc.sched.Cmd(), nil
}

func (m Model) View() string {
	view := m.viewport.View()
	if p, ok := m.popupPlacement(); ok {
		view = m.composePopup(view, p)
	}
	if m.cfg.ShowStatus {
		view += "\n" + m.statusLine()
	}
	return view
}

// sync re-renders after document or selection changes and notifies the
// host.
func (m *Model) sync() {
	ver := m.doc.version
	sel := m.doc.sel.Version()
	if ver == m.lastVersion && sel == m.lastSel {
		return
	}
	m.lastVersion = ver
	m.lastSel = sel
	m.rebuildContent()
	m.followCursor()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.doc))
	}
}

func (m *Model) rebuildContent() {
	m.syncHighlight()
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) syncHighlight() {
	id := ""
	n := 0
	if w, ok := m.FocusedMention(); ok {
		id = w.Instance().ID()
		n = len(w.Suggestions())
	}
	if id != m.focusID {
		m.focusID = id
		m.highlight = 0
	}
	m.highlight = clampInt(m.highlight, 0, maxInt(n-1, 0))
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	y := m.viewport.YOffset
	if m.cursorRow < y {
		m.viewport.SetYOffset(m.cursorRow)
		return
	}
	if m.cursorRow >= y+h {
		m.viewport.SetYOffset(m.cursorRow - h + 1)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
