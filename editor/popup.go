package editor

import (
	"fmt"
	"strings"

	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/atmention/internal/grapheme"
	"github.com/iw2rmb/atmention/vdom"
)

// popupState is the absolutely positioned suggestion list of the focused
// mention, anchored in document coordinates.
type popupState struct {
	rows      []*vdom.Element
	labels    []string
	anchorRow int
	anchorCol int
	width     int
}

func newPopupState(list *vdom.Element, row, col int) popupState {
	p := popupState{anchorRow: row, anchorCol: col}
	for _, ch := range list.Children {
		el, ok := ch.(*vdom.Element)
		if !ok {
			continue
		}
		label := sanitizeLabel(vdom.TextContent(el))
		p.rows = append(p.rows, el)
		p.labels = append(p.labels, label)
		if w := grapheme.StringWidth(label); w > p.width {
			p.width = w
		}
	}
	return p
}

// popupPlacement is the popup rectangle in viewport coordinates.
type popupPlacement struct {
	x, y  int
	width int
	rows  int
}

func (m Model) popupPlacement() (popupPlacement, bool) {
	p := m.popup
	if len(p.rows) == 0 || !m.focused {
		return popupPlacement{}, false
	}

	vw := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	vh := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if vw <= 0 || vh <= 0 {
		return popupPlacement{}, false
	}

	anchorY := p.anchorRow - m.viewport.YOffset
	if anchorY < 0 || anchorY >= vh {
		return popupPlacement{}, false
	}

	rows := len(p.rows)
	below := maxInt(vh-(anchorY+1), 0)
	above := maxInt(anchorY, 0)
	y := anchorY + 1
	if rows > below {
		switch {
		case above >= rows:
			y = anchorY - rows
		case above > below:
			rows = above
			y = 0
		default:
			rows = below
		}
	}
	if rows <= 0 {
		return popupPlacement{}, false
	}

	width := minInt(minInt(p.width, m.cfg.PopupMaxWidth), vw)
	if width <= 0 {
		return popupPlacement{}, false
	}
	x := clampInt(p.anchorCol, 0, maxInt(vw-width, 0))

	return popupPlacement{x: x, y: y, width: width, rows: rows}, true
}

func (m Model) composePopup(base string, p popupPlacement) string {
	rendered := make([]string, 0, p.rows)
	for i := 0; i < p.rows; i++ {
		st := m.cfg.Style.Popup
		if i == m.highlight {
			st = m.cfg.Style.PopupSelected
		}
		row := st.Render(fitWidth(m.popup.labels[i], p.width))
		if m.cfg.Zones != nil {
			row = m.cfg.Zones.Mark(m.rowZoneID(i), row)
		}
		rendered = append(rendered, row)
	}

	left, top := m.frameOffset()
	return overlay.Composite(
		strings.Join(rendered, "\n"),
		base,
		overlay.Left,
		overlay.Top,
		left+p.x,
		top+p.y,
	)
}

func (m Model) frameOffset() (int, int) {
	st := m.viewport.Style
	left := st.GetMarginLeft() + st.GetBorderLeftSize() + st.GetPaddingLeft()
	top := st.GetMarginTop() + st.GetBorderTopSize() + st.GetPaddingTop()
	return left, top
}

// fitWidth truncates or pads s to exactly width cells.
func fitWidth(s string, width int) string {
	var sb strings.Builder
	used := 0
	for _, g := range grapheme.Split(s) {
		w := grapheme.Width(g)
		if w < 1 {
			w = 1
		}
		if used+w > width {
			break
		}
		sb.WriteString(g)
		used += w
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return sb.String()
}

func sanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func (m Model) statusLine() string {
	w, ok := m.FocusedMention()
	if !ok {
		return m.cfg.Style.Status.Render("")
	}
	return m.cfg.Style.Status.Render(fmt.Sprintf("@%s  %s  %d", w.Text(), w.State(), len(w.Suggestions())))
}
