package slot

import "strings"

// Slot holds the content of one editable region of a component.
type Slot struct {
	schema  []ContentType
	items   []item
	index   int
	version uint64

	owner Component

	insertHooks []insertHook
	changeHooks []changeHook
	nextHookID  int
}

// New returns an empty slot accepting the given content types. A slot with no
// explicit schema accepts text only.
func New(schema ...ContentType) *Slot {
	if len(schema) == 0 {
		schema = []ContentType{Text}
	}
	return &Slot{schema: append([]ContentType(nil), schema...)}
}

func (s *Slot) Schema() []ContentType { return append([]ContentType(nil), s.schema...) }

func (s *Slot) Accepts(t ContentType) bool {
	for _, c := range s.schema {
		if c == t {
			return true
		}
	}
	return false
}

func (s *Slot) Length() int { return len(s.items) }

func (s *Slot) IsEmpty() bool { return len(s.items) == 0 }

// Index is the write head used by Insert and Delete.
func (s *Slot) Index() int { return s.index }

func (s *Slot) Version() uint64 { return s.version }

// Owner is the component this slot belongs to, if any.
func (s *Slot) Owner() Component { return s.owner }

func (s *Slot) SetOwner(c Component) { s.owner = c }

// Retain moves the write head to offset. Offsets outside [0, Length] are
// clamped and reported as false.
func (s *Slot) Retain(offset int) bool {
	s.index = clampInt(offset, 0, len(s.items))
	return s.index == offset
}

// String returns the slot's text content. Components contribute nothing.
func (s *Slot) String() string {
	var sb strings.Builder
	for _, it := range s.items {
		if it.comp == nil {
			sb.WriteString(it.text)
		}
	}
	return sb.String()
}

// Segments returns the content as coalesced text runs and components.
func (s *Slot) Segments() []Segment {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]Segment, 0, 1)
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		out = append(out, Segment{Text: sb.String()})
		sb.Reset()
	}
	for _, it := range s.items {
		if it.comp != nil {
			flush()
			out = append(out, Segment{Component: it.comp})
			continue
		}
		sb.WriteString(it.text)
	}
	flush()
	return out
}

// IndexOf returns the offset of c in the slot, or -1.
func (s *Slot) IndexOf(c Component) int {
	if c == nil {
		return -1
	}
	for i, it := range s.items {
		if it.comp == c {
			return i
		}
	}
	return -1
}

// ComponentAt returns the component at offset i, if the item there is one.
func (s *Slot) ComponentAt(i int) (Component, bool) {
	if i < 0 || i >= len(s.items) || s.items[i].comp == nil {
		return nil, false
	}
	return s.items[i].comp, true
}

// TextAt returns the grapheme cluster at offset i, if the item there is text.
func (s *Slot) TextAt(i int) (string, bool) {
	if i < 0 || i >= len(s.items) || s.items[i].comp != nil {
		return "", false
	}
	return s.items[i].text, true
}
