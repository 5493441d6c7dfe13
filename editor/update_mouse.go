package editor

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheelMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if !m.focused || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, cmd
	}

	// A click on a suggestion row runs the row's click handler.
	if i, ok := m.popupRowAt(msg); ok {
		if row := m.popup.rows[i]; row.OnClick != nil {
			row.OnClick()
		}
	}
	return m, cmd
}

func isWheelMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) popupRowAt(msg tea.MouseMsg) (int, bool) {
	p, ok := m.popupPlacement()
	if !ok {
		return 0, false
	}
	if m.cfg.Zones != nil {
		for i := 0; i < p.rows; i++ {
			if z := m.cfg.Zones.Get(m.rowZoneID(i)); z != nil && z.InBounds(msg) {
				return i, true
			}
		}
		return 0, false
	}

	left, top := m.frameOffset()
	x, y := msg.X-left, msg.Y-top
	if x < p.x || x >= p.x+p.width || y < p.y || y >= p.y+p.rows {
		return 0, false
	}
	return y - p.y, true
}

func (m Model) rowZoneID(i int) string {
	return m.zonePrefix + "suggestion-" + strconv.Itoa(i)
}
