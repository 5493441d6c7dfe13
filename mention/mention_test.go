package mention

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/schedule"
	"github.com/iw2rmb/atmention/selection"
	"github.com/iw2rmb/atmention/slot"
	"github.com/iw2rmb/atmention/vdom"
)

type harness struct {
	sched *schedule.Manual
	sel   *selection.Selection
	def   *component.Definition
	root  *slot.Slot
	svc   component.Services
}

func newHarness(t *testing.T, opt Options) *harness {
	t.Helper()
	h := &harness{
		sched: schedule.NewManual(),
		sel:   selection.New(),
		def:   NewDefinition(opt),
		root:  slot.New(slot.Text, slot.InlineComponent),
	}
	h.svc = component.Services{Selection: h.sel, Scheduler: h.sched}
	return h
}

// mount inserts a fresh mention between before and after in the root slot.
func (h *harness) mount(t *testing.T, before, after string) *Widget {
	t.Helper()
	inst, err := h.def.CreateInstance(h.svc, nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	h.root.Retain(h.root.Length())
	h.root.Insert(before)
	h.root.InsertComponent(inst)
	h.root.Insert(after)
	w, ok := From(inst)
	if !ok {
		t.Fatalf("From: instance has no widget")
	}
	return w
}

func assertSuggestions(t *testing.T, got []Suggestion, text string) {
	t.Helper()
	want := []Suggestion{
		{ID: "fdsafdsafdsa", Username: text + "张三"},
		{ID: "543543", Username: text + "李四"},
	}
	if len(got) != len(want) {
		t.Fatalf("suggestions: got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("suggestion %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInsert_ProducesTwoSuggestionsAfterDelay(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "hi ", "")

	w.Slot().Insert("ab")
	if got := w.State(); got != StatePending {
		t.Fatalf("state after insert: got %v, want %v", got, StatePending)
	}
	h.sched.Advance(999 * time.Millisecond)
	if len(w.Suggestions()) != 0 {
		t.Fatalf("suggestions must not appear before the delay")
	}
	h.sched.Advance(time.Millisecond)
	assertSuggestions(t, w.Suggestions(), "ab")
	if got := w.State(); got != StateShown {
		t.Fatalf("state after delay: got %v, want %v", got, StateShown)
	}

	w.Slot().Insert("c")
	h.sched.Advance(DefaultDelay)
	assertSuggestions(t, w.Suggestions(), "abc")
}

func TestInsert_MarksDirtyWhenApplied(t *testing.T) {
	h := newHarness(t, Options{Delay: 10 * time.Millisecond})
	w := h.mount(t, "", "")
	w.Slot().Insert("z")

	w.Instance().Render(false, passthroughRender)
	if w.Instance().Marker().Dirty() {
		t.Fatalf("render should clear dirty state")
	}
	h.sched.Advance(10 * time.Millisecond)
	if !w.Instance().Marker().Dirty() {
		t.Fatalf("applying suggestions should mark the instance dirty")
	}
}

func TestSelect_ReplacesSlotAndMovesCursorPastWidget(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "x", "y")

	w.Slot().Insert("ab")
	h.sched.Advance(DefaultDelay)

	if err := w.Select(0); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got, want := w.Text(), "ab张三"; got != want {
		t.Fatalf("slot text: got %q, want %q", got, want)
	}
	idx := h.root.IndexOf(w.Instance())
	if h.sel.Slot() != h.root || h.sel.Offset() != idx+1 {
		t.Fatalf("selection: got (%p, %d), want (%p, %d)", h.sel.Slot(), h.sel.Offset(), h.root, idx+1)
	}

	if err := w.Select(0); err != nil {
		t.Fatalf("second Select: %v", err)
	}
	if got, want := w.Text(), "ab张三"; got != want {
		t.Fatalf("slot text after reselect: got %q, want %q", got, want)
	}
	if h.sel.Offset() != idx+1 {
		t.Fatalf("selection moved on reselect: got %d", h.sel.Offset())
	}

	if err := w.Select(5); !errors.Is(err, ErrNoSuggestion) {
		t.Fatalf("out of range select: got %v, want ErrNoSuggestion", err)
	}
}

func TestSelect_RetriggersSuggestionsLikeTyping(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "", "")
	w.Slot().Insert("a")
	h.sched.Advance(DefaultDelay)

	if err := w.Select(1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	h.sched.Advance(DefaultDelay)
	assertSuggestions(t, w.Suggestions(), "a李四")
}

func TestSelect_DetachedWidget(t *testing.T) {
	h := newHarness(t, Options{})
	inst, err := h.def.CreateInstance(h.svc, nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	w, _ := From(inst)
	if err := w.SelectSuggestion(Suggestion{ID: "1", Username: "bob"}); !errors.Is(err, ErrDetached) {
		t.Fatalf("detached select: got %v, want ErrDetached", err)
	}
	if got, want := w.Text(), "bob"; got != want {
		t.Fatalf("slot text: got %q, want %q", got, want)
	}
}

func TestOverlappingInsertions_LastFinishedWins(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "", "")

	w.Slot().Insert("a")
	h.sched.Advance(500 * time.Millisecond)
	w.Slot().Insert("b")

	ids := h.sched.Pending()
	if len(ids) != 2 {
		t.Fatalf("pending tasks: got %d, want 2", len(ids))
	}

	// The newer computation finishes first, the stale one last.
	h.sched.Run(ids[1])
	assertSuggestions(t, w.Suggestions(), "ab")
	h.sched.Run(ids[0])
	assertSuggestions(t, w.Suggestions(), "a")
}

func TestOverlappingInsertions_InDueOrder(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "", "")

	w.Slot().Insert("a")
	h.sched.Advance(500 * time.Millisecond)
	w.Slot().Insert("b")
	h.sched.Advance(time.Second)
	assertSuggestions(t, w.Suggestions(), "ab")
}

func TestOverlappingInsertions_DropSuperseded(t *testing.T) {
	h := newHarness(t, Options{StalePolicy: StaleDropSuperseded})
	w := h.mount(t, "", "")

	w.Slot().Insert("a")
	first := h.sched.Pending()
	w.Slot().Insert("b")

	if len(h.sched.Pending()) != 1 {
		t.Fatalf("superseded task should be cancelled, pending=%v", h.sched.Pending())
	}
	if h.sched.Run(first[0]) {
		t.Fatalf("cancelled task must not run")
	}
	h.sched.Advance(DefaultDelay)
	assertSuggestions(t, w.Suggestions(), "ab")
}

func TestDestroy_CancelsPendingComputation(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "", "")
	w.Slot().Insert("a")

	h.root.Retain(h.root.IndexOf(w.Instance()))
	h.root.Delete(1)
	if n := len(h.sched.Pending()); n != 0 {
		t.Fatalf("pending after destroy: got %d, want 0", n)
	}
}

func TestRender_DropdownRowsAreClickable(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.mount(t, "", "!")
	w.Slot().Insert("q")
	h.sched.Advance(DefaultDelay)

	el := w.Render(false, passthroughRender)
	if v, _ := el.GetAttr("component-name"); v != Name {
		t.Fatalf("component-name: got %q", v)
	}
	rows := dropdownRows(t, el)
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if got, want := vdom.TextContent(rows[1]), "q李四"; got != want {
		t.Fatalf("row text: got %q, want %q", got, want)
	}
	if rows[1].StyleValue("white-space") != "nowrap" {
		t.Fatalf("rows should not wrap")
	}

	rows[1].OnClick()
	if got, want := w.Text(), "q李四"; got != want {
		t.Fatalf("slot after click: got %q, want %q", got, want)
	}

	out := w.Render(true, passthroughRender)
	if got, want := vdom.TextContent(out), "@q李四"; got != want {
		t.Fatalf("output mode text: got %q, want %q", got, want)
	}
	if len(out.Children) != 2 {
		t.Fatalf("output mode should omit the dropdown, children=%d", len(out.Children))
	}
}

func TestMissingServices(t *testing.T) {
	def := NewDefinition(Options{})
	if _, err := def.CreateInstance(component.Services{}, nil); !errors.Is(err, ErrMissingService) {
		t.Fatalf("err: got %v, want ErrMissingService", err)
	}
}

func TestLoader_Match(t *testing.T) {
	l := NewLoader(NewDefinition(Options{}))
	cases := []struct {
		src  string
		want bool
	}{
		{src: `<span component-name="MentionComponent"><span>a</span></span>`, want: true},
		{src: `<SPAN component-name="MentionComponent"></SPAN>`, want: true},
		{src: `<div component-name="MentionComponent"></div>`, want: false},
		{src: `<span component-name="Other"></span>`, want: false},
		{src: `<span></span>`, want: false},
		{src: `<span data-component-name="MentionComponent"></span>`, want: false},
	}
	for _, tc := range cases {
		if got := l.Match(firstBodyElement(t, tc.src)); got != tc.want {
			t.Fatalf("Match(%s): got %v, want %v", tc.src, got, tc.want)
		}
	}
	if l.Match(&html.Node{Type: html.TextNode, Data: "span"}) {
		t.Fatalf("text nodes never match")
	}
}

func TestLoader_ReadRequiresSlotElement(t *testing.T) {
	h := newHarness(t, Options{})
	l := NewLoader(h.def)
	n := firstBodyElement(t, `<span component-name="MentionComponent">@</span>`)
	_, err := l.Read(n, h.svc, func(s *slot.Slot, _ *html.Node) (*slot.Slot, error) { return s, nil })
	if !errors.Is(err, component.ErrMalformed) {
		t.Fatalf("err: got %v, want ErrMalformed", err)
	}
}

func TestParseStalePolicy(t *testing.T) {
	for _, p := range []StalePolicy{StaleKeepLastFinished, StaleDropSuperseded} {
		got, err := ParseStalePolicy(p.String())
		if err != nil || got != p {
			t.Fatalf("ParseStalePolicy(%q): got (%v, %v)", p.String(), got, err)
		}
	}
	if _, err := ParseStalePolicy("newest"); err == nil {
		t.Fatalf("unknown policy should fail")
	}
}

func passthroughRender(s *slot.Slot, host func() *vdom.Element) *vdom.Element {
	return host().Append(vdom.Text(s.String()))
}

func dropdownRows(t *testing.T, root *vdom.Element) []*vdom.Element {
	t.Helper()
	for _, c := range root.Children {
		rel, ok := c.(*vdom.Element)
		if !ok || rel.StyleValue("position") != "relative" {
			continue
		}
		abs := rel.Children[0].(*vdom.Element)
		rows := make([]*vdom.Element, 0, len(abs.Children))
		for _, r := range abs.Children {
			rows = append(rows, r.(*vdom.Element))
		}
		return rows
	}
	t.Fatalf("no dropdown in render tree")
	return nil
}

func firstBodyElement(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode {
					found = c
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if found == nil {
		t.Fatalf("no element in %q", src)
	}
	return found
}
