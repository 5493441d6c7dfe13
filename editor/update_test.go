package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/atmention/mention"
)

func TestUpdate_AtStartsMention(t *testing.T) {
	m := newTestModel(t, Config{})
	m, cmd := typeText(m, "hi @")
	if cmd != nil {
		t.Fatalf("no suggestion work expected before typing a query")
	}

	w, ok := m.FocusedMention()
	if !ok {
		t.Fatalf("selection should be inside the new mention")
	}
	if w.Instance().Parent() != m.Root() || m.Root().IndexOf(w.Instance()) != 3 {
		t.Fatalf("mention not placed after %q", "hi ")
	}

	m, cmd = typeText(m, "ab")
	if cmd == nil {
		t.Fatalf("typing into a mention should start a timer")
	}
	if got := w.State(); got != mention.StatePending {
		t.Fatalf("state: got %v, want %v", got, mention.StatePending)
	}
	if got, want := m.Text(), "hi @ab"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestUpdate_PopupRendersBelowMention(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "hi @ab")
	m = fireAll(m)

	assertLines(t, viewLines(m), []string{
		"hi @ab",
		"      ab张三",
		"      ab李四",
		"",
		"",
	})
}

func TestUpdate_PopupKeysPickHighlighted(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "hi @ab")
	m = fireAll(m)

	m = press(m, tea.KeyDown)
	if got := m.Highlighted(); got != 1 {
		t.Fatalf("highlight after down: got %d, want 1", got)
	}
	m = press(m, tea.KeyDown)
	if got := m.Highlighted(); got != 0 {
		t.Fatalf("highlight should wrap: got %d", got)
	}
	m = press(m, tea.KeyUp)

	m = press(m, tea.KeyEnter)
	if got, want := m.Text(), "hi @ab李四"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if pos := m.Selection(); pos.Slot != m.Root() || pos.Offset != 4 {
		t.Fatalf("selection after pick: got offset %d, want 4 in root", pos.Offset)
	}
	assertLines(t, viewLines(m), []string{"hi @ab李四", "", "", "", ""})
}

func TestUpdate_TabPicksSuggestion(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "@z")
	m = fireAll(m)

	m = press(m, tea.KeyTab)
	if got, want := m.Text(), "@z张三"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestUpdate_ClickPicksRow(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "hi @ab")
	m = fireAll(m)

	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Text(), "hi @ab"; got != want {
		t.Fatalf("click outside popup changed text: got %q", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 7, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Text(), "hi @ab李四"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestUpdate_BackspaceRemovesEmptyMention(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "a@x")

	m = press(m, tea.KeyBackspace)
	if got, want := m.Text(), "a@"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	m = press(m, tea.KeyBackspace)
	if got, want := m.Text(), "a"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := m.Root().Length(); got != 1 {
		t.Fatalf("root length: got %d, want 1", got)
	}
	if pos := m.Selection(); pos.Slot != m.Root() || pos.Offset != 1 {
		t.Fatalf("selection: got offset %d, want 1 in root", pos.Offset)
	}
	if n := len(m.doc.sched.Pending()); n != 0 {
		t.Fatalf("removed mention left %d pending tasks", n)
	}
}

func TestUpdate_MovementCrossesMention(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "x@y")
	w, _ := m.FocusedMention()
	inner := w.Slot()

	m = press(m, tea.KeyEsc)
	steps := []struct {
		key    tea.KeyType
		inner  bool
		offset int
	}{
		{tea.KeyLeft, true, 1},
		{tea.KeyLeft, true, 0},
		{tea.KeyLeft, false, 1},
		{tea.KeyLeft, false, 0},
		{tea.KeyLeft, false, 0},
		{tea.KeyRight, false, 1},
		{tea.KeyRight, true, 0},
		{tea.KeyRight, true, 1},
		{tea.KeyRight, false, 2},
	}
	for i, st := range steps {
		m = press(m, st.key)
		pos := m.Selection()
		want := m.Root()
		if st.inner {
			want = inner
		}
		if pos.Slot != want || pos.Offset != st.offset {
			t.Fatalf("step %d: got (%p, %d), want (%p, %d)", i, pos.Slot, pos.Offset, want, st.offset)
		}
	}
}

func TestUpdate_EnterInsertsNewline(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "a")
	m = press(m, tea.KeyEnter)
	m, _ = typeText(m, "b")

	if got, want := m.Text(), "a\nb"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	assertLines(t, viewLines(m), []string{"a", "b", "", "", ""})

	html, err := m.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if want := "a<br/>b"; html != want {
		t.Fatalf("HTML: got %q, want %q", html, want)
	}
}

func TestUpdate_EnterInsideMentionWithoutSuggestions(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "@a")
	m = press(m, tea.KeyEnter)

	if got, want := m.Text(), "@a\n"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if _, ok := m.FocusedMention(); ok {
		t.Fatalf("enter should leave the mention")
	}
}

func TestUpdate_BlurIgnoresKeys(t *testing.T) {
	m := newTestModel(t, Config{}).Blur()
	m, _ = typeText(m, "a")
	if m.Text() != "" {
		t.Fatalf("blurred editor accepted input")
	}
}

func TestUpdate_PasteStartsMention(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("to @ann"), Paste: true})

	if got, want := m.Text(), "to @ann"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	w, ok := m.FocusedMention()
	if !ok || w.Text() != "ann" {
		t.Fatalf("paste should continue inside the mention")
	}
}

func TestUpdate_HiddenPopupLeavesKeysToEditor(t *testing.T) {
	m := newTestModel(t, Config{}).SetSize(20, 1)
	m, _ = typeText(m, "@ab")
	m = fireAll(m)

	w, ok := m.FocusedMention()
	if !ok || len(w.Suggestions()) != 2 {
		t.Fatalf("suggestions should be computed even without room to draw them")
	}
	if _, ok := m.popupPlacement(); ok {
		t.Fatalf("popup should not fit a one-line viewport")
	}

	m = press(m, tea.KeyEnter)
	if got, want := m.Text(), "@ab\n"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestUpdate_HighlightStaysOnDrawnRows(t *testing.T) {
	m := newTestModel(t, Config{}).SetSize(20, 2)
	m, _ = typeText(m, "@ab")
	m = fireAll(m)

	p, ok := m.popupPlacement()
	if !ok || p.rows != 1 {
		t.Fatalf("placement: got ok=%v rows=%d, want one drawn row", ok, p.rows)
	}

	m = press(m, tea.KeyDown)
	if got := m.Highlighted(); got != 0 {
		t.Fatalf("highlight should wrap within drawn rows: got %d", got)
	}
	m = press(m, tea.KeyEnter)
	if got, want := m.Text(), "@ab张三"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestUpdate_ShrinkClampsHighlight(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeText(m, "@ab")
	m = fireAll(m)

	m = press(m, tea.KeyDown)
	if got := m.Highlighted(); got != 1 {
		t.Fatalf("highlight after down: got %d, want 1", got)
	}

	m = m.SetSize(20, 2)
	m = press(m, tea.KeyTab)
	if got, want := m.Text(), "@ab张三"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}
