package component

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iw2rmb/atmention/slot"
	"github.com/iw2rmb/atmention/vdom"
)

// Type is where a component may appear.
type Type uint8

const (
	Inline Type = iota
	Block
)

// SlotRender draws a slot's content into the element host returns.
type SlotRender func(s *slot.Slot, host func() *vdom.Element) *vdom.Element

// Renderer turns an instance's state into a virtual tree. In output mode the
// tree is meant for serialization and carries no transient UI.
type Renderer interface {
	Render(outputMode bool, render SlotRender) *vdom.Element
}

// RenderFunc adapts a func to Renderer.
type RenderFunc func(outputMode bool, render SlotRender) *vdom.Element

func (f RenderFunc) Render(outputMode bool, render SlotRender) *vdom.Element {
	return f(outputMode, render)
}

// InitData carries state restored by a loader.
type InitData struct {
	Slots []*slot.Slot
}

// Definition is a named component factory.
type Definition struct {
	Name string
	Type Type

	// DefaultSlots builds the slots of a fresh instance.
	DefaultSlots func() []*slot.Slot

	Setup func(ctx *SetupContext, data *InitData) (Renderer, error)
}

// Instance is one component placed in a document.
type Instance struct {
	id       string
	def      *Definition
	slots    []*slot.Slot
	parent   *slot.Slot
	marker   *ChangeMarker
	renderer Renderer
	services Services

	destroyHooks []func()
	unsubscribe  []func()
	destroyed    bool
}

// CreateInstance builds an instance from data, or from the definition's
// default slots when data carries none.
func (d *Definition) CreateInstance(svc Services, data *InitData) (*Instance, error) {
	if data == nil {
		data = &InitData{}
	}
	slots := data.Slots
	if len(slots) == 0 && d.DefaultSlots != nil {
		slots = d.DefaultSlots()
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%s: %w", d.Name, ErrNoSlots)
	}

	inst := &Instance{
		id:       uuid.NewString(),
		def:      d,
		slots:    append([]*slot.Slot(nil), slots...),
		services: svc,
	}
	inst.marker = &ChangeMarker{inst: inst, inv: svc.Invalidator}

	for _, s := range inst.slots {
		s.SetOwner(inst)
		inst.unsubscribe = append(inst.unsubscribe, s.OnChange(func(slot.Change) {
			inst.marker.MarkDirty()
		}))
	}

	r, err := d.Setup(&SetupContext{inst: inst}, &InitData{Slots: inst.slots})
	if err != nil {
		inst.Destroy()
		return nil, fmt.Errorf("%s: setup: %w", d.Name, err)
	}
	if r == nil {
		inst.Destroy()
		return nil, fmt.Errorf("%s: %w", d.Name, ErrNoRenderer)
	}
	inst.renderer = r

	svc.logger().Debug("component created", "component", d.Name, "id", inst.id)
	return inst, nil
}

func (i *Instance) ID() string { return i.id }

func (i *Instance) Name() string { return i.def.Name }

func (i *Instance) Type() Type { return i.def.Type }

func (i *Instance) Slots() []*slot.Slot { return append([]*slot.Slot(nil), i.slots...) }

// Slot returns the n-th slot, or nil.
func (i *Instance) Slot(n int) *slot.Slot {
	if n < 0 || n >= len(i.slots) {
		return nil
	}
	return i.slots[n]
}

// Parent is the slot containing this instance; nil when detached.
func (i *Instance) Parent() *slot.Slot { return i.parent }

func (i *Instance) SetParent(s *slot.Slot) { i.parent = s }

func (i *Instance) Marker() *ChangeMarker { return i.marker }

func (i *Instance) Renderer() Renderer { return i.renderer }

func (i *Instance) Services() Services { return i.services }

func (i *Instance) Destroyed() bool { return i.destroyed }

// Render draws the instance and clears its dirty state.
func (i *Instance) Render(outputMode bool, render SlotRender) *vdom.Element {
	if i.renderer == nil {
		return nil
	}
	el := i.renderer.Render(outputMode, render)
	i.marker.markRendered()
	return el
}

// Destroy runs destroy hooks and detaches slot listeners. It is idempotent.
func (i *Instance) Destroy() {
	if i.destroyed {
		return
	}
	i.destroyed = true
	for _, fn := range i.destroyHooks {
		fn()
	}
	for _, un := range i.unsubscribe {
		un()
	}
	i.destroyHooks = nil
	i.unsubscribe = nil
	i.services.logger().Debug("component destroyed", "component", i.def.Name, "id", i.id)
}

// SetupContext is what Setup uses to hook into its instance.
type SetupContext struct {
	inst *Instance
}

func (c *SetupContext) Self() *Instance { return c.inst }

func (c *SetupContext) Slots() []*slot.Slot { return c.inst.Slots() }

func (c *SetupContext) Services() Services { return c.inst.services }

func (c *SetupContext) Logger() *slog.Logger {
	return c.inst.services.logger().With("component", c.inst.def.Name, "id", c.inst.id)
}

// OnContentInsert subscribes fn to insertions into any of the instance's
// slots.
func (c *SetupContext) OnContentInsert(fn func(ev *slot.InsertEvent)) {
	for _, s := range c.inst.slots {
		c.inst.unsubscribe = append(c.inst.unsubscribe, s.OnContentInsert(fn))
	}
}

// OnDestroy registers fn to run when the instance is destroyed.
func (c *SetupContext) OnDestroy(fn func()) {
	c.inst.destroyHooks = append(c.inst.destroyHooks, fn)
}
