package slot

// ContentType is the kind of content a slot may hold.
type ContentType uint8

const (
	Text ContentType = iota + 1
	InlineComponent
)

func (t ContentType) String() string {
	switch t {
	case Text:
		return "text"
	case InlineComponent:
		return "inline-component"
	default:
		return "unknown"
	}
}

// Component is the slot-facing view of a component instance.
//
// A slot sets Parent when the component is inserted and clears it when the
// component is deleted, at which point Destroy is called.
type Component interface {
	Name() string
	Parent() *Slot
	SetParent(s *Slot)
	Destroy()
}

// Segment is a run of content: either coalesced text or one component.
type Segment struct {
	Text      string
	Component Component
}

func (s Segment) IsComponent() bool { return s.Component != nil }

type item struct {
	text string
	comp Component
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
