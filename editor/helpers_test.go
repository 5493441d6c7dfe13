package editor

import (
	"io"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/atmention/schedule"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?<>]*[ -/]*[@-~]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func asciiStyle() Style {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return Style{
		Text:          r.NewStyle(),
		Mention:       r.NewStyle().Bold(true),
		Cursor:        r.NewStyle().Reverse(true),
		Popup:         r.NewStyle(),
		PopupSelected: r.NewStyle().Reverse(true),
		Status:        r.NewStyle(),
	}
}

func newTestModel(t *testing.T, cfg Config) Model {
	t.Helper()
	cfg.Style = asciiStyle()
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m.SetSize(20, 5)
}

func typeText(m Model, s string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, r := range s {
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m, cmd
}

func press(m Model, typ tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: typ})
	return m
}

// fireAll delivers every pending timer in scheduling order.
func fireAll(m Model) Model {
	for _, id := range m.doc.sched.Pending() {
		m, _ = m.Update(schedule.FiredMsg{ID: id})
	}
	return m
}

func viewLines(m Model) []string {
	lines := strings.Split(stripANSI(m.View()), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("line count: got %d (%q), want %d", len(got), got, len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
