package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text    lipgloss.Style
	Mention lipgloss.Style
	Cursor  lipgloss.Style

	Popup         lipgloss.Style
	PopupSelected lipgloss.Style

	Status lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:          lipgloss.NewStyle(),
		Mention:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Popup:         lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		PopupSelected: lipgloss.NewStyle().Background(lipgloss.Color("25")).Foreground(lipgloss.Color("231")),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// cursorStyle always reverses, whatever the host configured.
func (s Style) cursorStyle() lipgloss.Style {
	if s.Cursor.GetReverse() {
		return s.Cursor
	}
	return s.Cursor.Reverse(true)
}
