package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/internal/grapheme"
	"github.com/iw2rmb/atmention/selection"
	"github.com/iw2rmb/atmention/slot"
	"github.com/iw2rmb/atmention/vdom"
)

// cursorTag marks the selection inside the rendered tree. It has no size.
const cursorTag = "x-cursor"

// treeBuilder renders slots to virtual nodes. Only the focused component is
// rendered outside output mode, so at most one popup exists.
type treeBuilder struct {
	cur   selection.Position
	focus *component.Instance
}

func (b treeBuilder) nodes(s *slot.Slot) []vdom.Node {
	var out []vdom.Node
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out = append(out, vdom.Text(run.String()))
			run.Reset()
		}
	}
	for i := 0; i <= s.Length(); i++ {
		if b.cur.Slot == s && b.cur.Offset == i {
			flush()
			out = append(out, vdom.E(cursorTag))
		}
		if i == s.Length() {
			break
		}
		if t, ok := s.TextAt(i); ok {
			run.WriteString(t)
			continue
		}
		c, _ := s.ComponentAt(i)
		inst, ok := c.(*component.Instance)
		if !ok {
			continue
		}
		flush()
		if el := inst.Render(inst != b.focus, b.render); el != nil {
			out = append(out, el)
		}
	}
	flush()
	return out
}

func (b treeBuilder) render(s *slot.Slot, host func() *vdom.Element) *vdom.Element {
	return host().Append(b.nodes(s)...)
}

type cellKind uint8

const (
	cellText cellKind = iota
	cellMention
)

type cell struct {
	text  string
	width int
	kind  cellKind
}

// canvas lays out a virtual tree as terminal lines.
type canvas struct {
	lines [][]cell

	cursorRow, cursorCell int
	hasCursor             bool

	popup              *vdom.Element
	popupRow, popupCol int
}

func newCanvas() *canvas {
	return &canvas{lines: [][]cell{nil}}
}

func (c *canvas) row() int { return len(c.lines) - 1 }

func (c *canvas) col() int {
	w := 0
	for _, cl := range c.lines[c.row()] {
		w += cl.width
	}
	return w
}

func (c *canvas) newline() { c.lines = append(c.lines, nil) }

func (c *canvas) put(g string, kind cellKind) {
	switch g {
	case "\n", "\r\n", "\r":
		c.newline()
		return
	case "\t":
		g = " "
	}
	w := grapheme.Width(g)
	if w < 1 {
		w = 1
	}
	r := c.row()
	c.lines[r] = append(c.lines[r], cell{text: g, width: w, kind: kind})
}

func (c *canvas) walk(n vdom.Node, kind cellKind) {
	switch n := n.(type) {
	case vdom.Text:
		for _, g := range grapheme.Split(string(n)) {
			c.put(g, kind)
		}
	case *vdom.Element:
		if n == nil {
			return
		}
		switch {
		case n.Tag == cursorTag:
			c.cursorRow, c.cursorCell, c.hasCursor = c.row(), len(c.lines[c.row()]), true
			return
		case n.Tag == "br":
			c.newline()
			return
		case n.StyleValue("position") == "absolute":
			c.popup = n
			c.popupRow, c.popupCol = c.row(), c.col()
			return
		}
		if _, ok := n.GetAttr("component-name"); ok {
			kind = cellMention
		}
		for _, ch := range n.Children {
			c.walk(ch, kind)
		}
	}
}

func (m *Model) renderContent() string {
	b := treeBuilder{cur: m.doc.sel.Position()}
	if w, ok := m.FocusedMention(); ok {
		b.focus = w.Instance()
	}

	c := newCanvas()
	for _, n := range b.nodes(m.doc.root) {
		c.walk(n, cellText)
	}

	m.cursorRow = c.cursorRow
	m.popup = popupState{}
	if c.popup != nil {
		m.popup = newPopupState(c.popup, c.popupRow, c.popupCol)
	}

	st := m.cfg.Style
	cursor := st.cursorStyle()
	lines := make([]string, len(c.lines))
	for r, cells := range c.lines {
		var sb strings.Builder
		for i := 0; i < len(cells); {
			if m.focused && c.hasCursor && r == c.cursorRow && i == c.cursorCell {
				sb.WriteString(cursor.Render(cells[i].text))
				i++
				continue
			}
			j := i
			var run strings.Builder
			for j < len(cells) && cells[j].kind == cells[i].kind &&
				!(m.focused && c.hasCursor && r == c.cursorRow && j == c.cursorCell) {
				run.WriteString(cells[j].text)
				j++
			}
			sb.WriteString(kindStyle(st, cells[i].kind).Render(run.String()))
			i = j
		}
		if m.focused && c.hasCursor && r == c.cursorRow && c.cursorCell >= len(cells) {
			sb.WriteString(cursor.Render(" "))
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func kindStyle(st Style, k cellKind) lipgloss.Style {
	if k == cellMention {
		return st.Mention
	}
	return st.Text
}
