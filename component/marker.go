package component

// ChangeMarker tracks whether an instance changed since it was last drawn.
type ChangeMarker struct {
	inst     *Instance
	inv      Invalidator
	dirty    uint64
	rendered uint64
}

// MarkDirty records a change and asks the host for a redraw.
func (c *ChangeMarker) MarkDirty() {
	c.dirty++
	if c.inv != nil {
		c.inv.Invalidate(c.inst)
	}
}

func (c *ChangeMarker) Dirty() bool { return c.dirty != c.rendered }

// Version counts MarkDirty calls.
func (c *ChangeMarker) Version() uint64 { return c.dirty }

func (c *ChangeMarker) markRendered() { c.rendered = c.dirty }
