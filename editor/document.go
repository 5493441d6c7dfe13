package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/document"
	"github.com/iw2rmb/atmention/mention"
	"github.com/iw2rmb/atmention/schedule"
	"github.com/iw2rmb/atmention/selection"
	"github.com/iw2rmb/atmention/slot"
)

var (
	ErrNoMention = errors.New("editor: selection is not inside a mention")
	ErrRejected  = errors.New("editor: slot rejected the component")
)

// docState is shared by all copies of a Model.
type docState struct {
	root  *slot.Slot
	sel   *selection.Selection
	sched *schedule.Tea
	reg   *component.Registry
	def   *component.Definition
	svc   component.Services
	log   *slog.Logger

	version uint64
}

func newDocState(cfg Config) (*docState, error) {
	d := &docState{
		root:  document.NewRoot(),
		sel:   selection.New(),
		sched: schedule.NewTea(),
		reg:   component.NewRegistry(),
		log:   cfg.Logger,
	}
	d.svc = component.Services{
		Selection: d.sel,
		Scheduler: d.sched,
		Invalidator: component.InvalidatorFunc(func(*component.Instance) {
			d.version++
		}),
		Logger: cfg.Logger,
	}

	def, err := mention.Register(d.reg, cfg.Mention)
	if err != nil {
		return nil, fmt.Errorf("editor: register mention: %w", err)
	}
	d.def = def

	if cfg.HTML != "" {
		if _, err := document.NewReader(d.reg, d.svc).Read(cfg.HTML, d.root); err != nil {
			return nil, fmt.Errorf("editor: load: %w", err)
		}
	}
	d.root.OnChange(func(slot.Change) { d.version++ })
	d.sel.SetPosition(d.root, d.root.Length())
	return d, nil
}

// mentionOf returns the mention widget owning s.
func mentionOf(s *slot.Slot) (*mention.Widget, bool) {
	if s == nil {
		return nil, false
	}
	inst, ok := s.Owner().(*component.Instance)
	if !ok {
		return nil, false
	}
	return mention.From(inst)
}

func (d *docState) position() (*slot.Slot, int) {
	pos := d.sel.Position()
	if pos.Slot == nil {
		return d.root, d.root.Length()
	}
	return pos.Slot, pos.Offset
}

func (d *docState) text() string {
	var sb strings.Builder
	for _, seg := range d.root.Segments() {
		if !seg.IsComponent() {
			sb.WriteString(seg.Text)
			continue
		}
		if inst, ok := seg.Component.(*component.Instance); ok {
			if w, ok := mention.From(inst); ok {
				sb.WriteString("@")
				sb.WriteString(w.Text())
			}
		}
	}
	return sb.String()
}

// insertText types text at the selection. An "@" typed into the root starts
// a new mention and the rest of text goes into its slot.
func (d *docState) insertText(text string) {
	for text != "" {
		s, off := d.position()
		if s != d.root {
			s.Retain(off)
			s.Insert(text)
			d.sel.SetPosition(s, s.Index())
			return
		}

		before, after, found := strings.Cut(text, "@")
		if before != "" {
			s.Retain(off)
			s.Insert(before)
			d.sel.SetPosition(s, s.Index())
		}
		if !found {
			return
		}
		if _, err := d.insertMention(); err != nil {
			d.log.Error("insert mention", "error", err)
			return
		}
		text = after
	}
}

func (d *docState) insertMention() (*mention.Widget, error) {
	inst, err := d.def.CreateInstance(d.svc, nil)
	if err != nil {
		return nil, err
	}
	_, off := d.position()
	d.root.Retain(off)
	if !d.root.InsertComponent(inst) {
		inst.Destroy()
		return nil, ErrRejected
	}
	w, _ := mention.From(inst)
	d.sel.SetPosition(w.Slot(), 0)
	return w, nil
}

func (d *docState) moveLeft() {
	s, off := d.position()
	if off > 0 {
		if inner, ok := componentSlot(s, off-1); ok {
			d.sel.SetPosition(inner, inner.Length())
			return
		}
		d.sel.SetPosition(s, off-1)
		return
	}
	if w, ok := mentionOf(s); ok {
		if p := w.Instance().Parent(); p != nil {
			d.sel.SetPosition(p, p.IndexOf(w.Instance()))
		}
	}
}

func (d *docState) moveRight() {
	s, off := d.position()
	if off < s.Length() {
		if inner, ok := componentSlot(s, off); ok {
			d.sel.SetPosition(inner, 0)
			return
		}
		d.sel.SetPosition(s, off+1)
		return
	}
	d.leaveMention()
}

// leaveMention puts the selection right after the focused mention.
func (d *docState) leaveMention() bool {
	s, _ := d.position()
	w, ok := mentionOf(s)
	if !ok {
		return false
	}
	p := w.Instance().Parent()
	if p == nil {
		return false
	}
	d.sel.SetPosition(p, p.IndexOf(w.Instance())+1)
	return true
}

// deleteBackward removes the item left of the selection. At the start of a
// mention it removes the mention when empty and steps out of it otherwise.
func (d *docState) deleteBackward() {
	s, off := d.position()
	if off > 0 {
		s.Retain(off - 1)
		s.Delete(1)
		d.sel.SetPosition(s, off-1)
		return
	}
	w, ok := mentionOf(s)
	if !ok {
		return
	}
	p := w.Instance().Parent()
	if p == nil {
		return
	}
	idx := p.IndexOf(w.Instance())
	if s.IsEmpty() {
		p.Retain(idx)
		p.Delete(1)
	}
	d.sel.SetPosition(p, idx)
}

func (d *docState) insertNewline() {
	d.leaveMention()
	s, off := d.position()
	s.Retain(off)
	if s.Insert("\n") {
		d.sel.SetPosition(s, s.Index())
	}
}

func componentSlot(s *slot.Slot, i int) (*slot.Slot, bool) {
	c, ok := s.ComponentAt(i)
	if !ok {
		return nil, false
	}
	inst, ok := c.(*component.Instance)
	if !ok || inst.Slot(0) == nil {
		return nil, false
	}
	return inst.Slot(0), true
}
