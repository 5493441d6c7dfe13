// Package selection tracks the document cursor as a (slot, offset) pair.
package selection

import (
	"slices"

	"github.com/iw2rmb/atmention/slot"
)

// Position is a collapsed cursor inside a slot.
type Position struct {
	Slot   *slot.Slot
	Offset int
}

func (p Position) IsZero() bool { return p.Slot == nil }

// Selection is the cursor service shared by the host and its components.
type Selection struct {
	pos     Position
	version uint64

	listeners []func(Position)
}

func New() *Selection { return &Selection{} }

func (s *Selection) Position() Position { return s.pos }

func (s *Selection) Slot() *slot.Slot { return s.pos.Slot }

func (s *Selection) Offset() int { return s.pos.Offset }

func (s *Selection) Version() uint64 { return s.version }

// SetPosition collapses the selection at offset in sl. The offset is clamped
// into [0, sl.Length()].
func (s *Selection) SetPosition(sl *slot.Slot, offset int) {
	next := Position{Slot: sl}
	if sl != nil {
		if offset < 0 {
			offset = 0
		}
		if offset > sl.Length() {
			offset = sl.Length()
		}
		next.Offset = offset
	}
	if next == s.pos {
		return
	}
	s.pos = next
	s.version++
	for _, fn := range slices.Clone(s.listeners) {
		fn(next)
	}
}

// Unselect clears the selection.
func (s *Selection) Unselect() { s.SetPosition(nil, 0) }

// OnChange registers fn to run after every effective position change.
func (s *Selection) OnChange(fn func(Position)) {
	s.listeners = append(s.listeners, fn)
}
