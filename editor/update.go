package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}

	// Pasted text is inserted literally, so a pasted "@" starts a mention
	// just like a typed one.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.doc.insertText(string(msg.Runes))
		return m
	}

	km := m.cfg.KeyMap

	// Popup keys apply only to rows that are on screen.
	if p, ok := m.popupPlacement(); ok {
		n := p.rows
		m.highlight = clampInt(m.highlight, 0, n-1)
		switch {
		case key.Matches(msg, km.Up):
			m.highlight = (m.highlight - 1 + n) % n
			return m
		case key.Matches(msg, km.Down):
			m.highlight = (m.highlight + 1) % n
			return m
		case key.Matches(msg, km.Accept), key.Matches(msg, km.Enter):
			m.activate(m.highlight)
			return m
		}
	}

	switch {
	case key.Matches(msg, km.Left):
		m.doc.moveLeft()
	case key.Matches(msg, km.Right):
		m.doc.moveRight()
	case key.Matches(msg, km.Backspace):
		m.doc.deleteBackward()
	case key.Matches(msg, km.Enter):
		m.doc.insertNewline()
	case key.Matches(msg, km.Leave):
		m.doc.leaveMention()
	case msg.Type == tea.KeySpace:
		m.doc.insertText(" ")
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		m.doc.insertText(string(msg.Runes))
	}
	return m
}

func (m Model) activate(i int) {
	w, ok := m.FocusedMention()
	if !ok {
		return
	}
	if err := w.Select(i); err != nil {
		m.cfg.Logger.Error("activate suggestion", "index", i, "error", err)
	}
}
