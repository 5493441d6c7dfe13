package mention

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/slot"
	"github.com/iw2rmb/atmention/vdom"
)

// Name is the component name and the serialized component-name attribute.
const Name = "MentionComponent"

var (
	ErrDetached       = errors.New("mention: widget has no parent slot")
	ErrNoSuggestion   = errors.New("mention: no such suggestion")
	ErrMissingService = errors.New("mention: selection and scheduler services are required")
)

// State is where the widget is in its suggestion cycle.
type State uint8

const (
	StateIdle State = iota
	StatePending
	StateShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateShown:
		return "shown"
	default:
		return "unknown"
	}
}

// Widget is the per-instance state of a mention.
type Widget struct {
	self *component.Instance
	slot *slot.Slot
	opt  Options
	svc  component.Services
	log  *slog.Logger

	suggestions []Suggestion

	seq     uint64
	pending map[uint64]func()
}

// NewDefinition returns the mention component definition.
func NewDefinition(opt Options) *component.Definition {
	opt = opt.normalized()
	return &component.Definition{
		Name: Name,
		Type: component.Inline,
		DefaultSlots: func() []*slot.Slot {
			return []*slot.Slot{slot.New(slot.Text)}
		},
		Setup: func(ctx *component.SetupContext, data *component.InitData) (component.Renderer, error) {
			return setup(ctx, data, opt)
		},
	}
}

func setup(ctx *component.SetupContext, data *component.InitData, opt Options) (*Widget, error) {
	svc := ctx.Services()
	if svc.Selection == nil || svc.Scheduler == nil {
		return nil, ErrMissingService
	}
	w := &Widget{
		self:    ctx.Self(),
		slot:    data.Slots[0],
		opt:     opt,
		svc:     svc,
		log:     ctx.Logger(),
		pending: make(map[uint64]func()),
	}
	ctx.OnContentInsert(w.onContentInsert)
	ctx.OnDestroy(w.cancelPending)
	return w, nil
}

// From returns the widget behind a mention instance.
func From(inst *component.Instance) (*Widget, bool) {
	if inst == nil {
		return nil, false
	}
	w, ok := inst.Renderer().(*Widget)
	return w, ok
}

func (w *Widget) Instance() *component.Instance { return w.self }

func (w *Widget) Slot() *slot.Slot { return w.slot }

// Text is the query typed after "@".
func (w *Widget) Text() string { return w.slot.String() }

// Suggestions returns a copy of the current list.
func (w *Widget) Suggestions() []Suggestion {
	return append([]Suggestion(nil), w.suggestions...)
}

func (w *Widget) State() State {
	switch {
	case len(w.pending) > 0:
		return StatePending
	case len(w.suggestions) > 0:
		return StateShown
	default:
		return StateIdle
	}
}

func (w *Widget) onContentInsert(ev *slot.InsertEvent) {
	if ev.Text == "" {
		return
	}
	text := w.slot.String() + ev.Text

	if w.opt.StalePolicy == StaleDropSuperseded {
		w.cancelPending()
	}

	w.seq++
	seq := w.seq
	w.pending[seq] = w.svc.Scheduler.AfterFunc(w.opt.Delay, func() {
		delete(w.pending, seq)
		w.apply(seq, text)
	})
	w.log.Debug("suggestions scheduled", "seq", seq, "text", text, "delay", w.opt.Delay)
}

func (w *Widget) apply(seq uint64, text string) {
	if w.opt.StalePolicy == StaleDropSuperseded && seq != w.seq {
		w.log.Debug("stale suggestions dropped", "seq", seq, "latest", w.seq)
		return
	}
	w.suggestions = append([]Suggestion(nil), w.opt.Provider.Suggest(text)...)
	w.log.Debug("suggestions applied", "seq", seq, "text", text, "count", len(w.suggestions))
	w.self.Marker().MarkDirty()
}

func (w *Widget) cancelPending() {
	for seq, cancel := range w.pending {
		cancel()
		delete(w.pending, seq)
	}
}

// Select activates the i-th current suggestion.
func (w *Widget) Select(i int) error {
	if i < 0 || i >= len(w.suggestions) {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuggestion, i, len(w.suggestions))
	}
	return w.SelectSuggestion(w.suggestions[i])
}

// SelectSuggestion replaces the slot text with s.Username and places the
// cursor right after the widget in its parent slot.
func (w *Widget) SelectSuggestion(s Suggestion) error {
	w.slot.Replace(s.Username)

	parent := w.self.Parent()
	if parent == nil {
		return ErrDetached
	}
	idx := parent.IndexOf(w.self)
	if idx < 0 {
		return ErrDetached
	}
	w.svc.Selection.SetPosition(parent, idx+1)
	w.log.Debug("suggestion selected", "id", s.ID, "username", s.Username)
	return nil
}

// Render implements component.Renderer.
func (w *Widget) Render(outputMode bool, render component.SlotRender) *vdom.Element {
	root := vdom.E("span",
		vdom.Text("@"),
		render(w.slot, func() *vdom.Element { return vdom.E("span") }),
	).Attr("component-name", Name)
	if outputMode {
		return root
	}

	list := vdom.E("div").SetStyle("position", "absolute")
	for _, s := range w.suggestions {
		s := s
		list.Append(vdom.E("div", vdom.Text(s.Username)).
			Attr("data-id", s.ID).
			SetStyle("white-space", "nowrap").
			Click(func() {
				if err := w.SelectSuggestion(s); err != nil {
					w.log.Error("select suggestion", "error", err)
				}
			}))
	}
	return root.Append(vdom.E("span", list).SetStyle("position", "relative"))
}
