package slot

import (
	"strings"

	"github.com/iw2rmb/atmention/internal/grapheme"
)

// Insert inserts text at the write head and advances it past the inserted
// content. It reports false when the slot does not accept text, the text is
// empty, or an insert hook prevented it.
func (s *Slot) Insert(text string) bool {
	if text == "" || !s.Accepts(Text) {
		return false
	}

	ev := &InsertEvent{Slot: s, Index: s.index, Text: text}
	if !s.emitInsert(ev) {
		return false
	}

	clusters := grapheme.Split(text)
	at := clampInt(s.index, 0, len(s.items))
	ins := make([]item, 0, len(clusters))
	for _, c := range clusters {
		ins = append(ins, item{text: c})
	}
	s.splice(at, 0, ins)

	before := s.version
	s.version++
	s.index = at + len(ins)
	s.emitChange(Change{
		Kind:          ChangeInsert,
		Index:         at,
		Length:        len(ins),
		Text:          text,
		VersionBefore: before,
		VersionAfter:  s.version,
	})
	return true
}

// InsertComponent inserts c at the write head and advances it by one.
func (s *Slot) InsertComponent(c Component) bool {
	if c == nil || !s.Accepts(InlineComponent) {
		return false
	}

	ev := &InsertEvent{Slot: s, Index: s.index, Component: c}
	if !s.emitInsert(ev) {
		return false
	}

	at := clampInt(s.index, 0, len(s.items))
	s.splice(at, 0, []item{{comp: c}})
	c.SetParent(s)

	before := s.version
	s.version++
	s.index = at + 1
	s.emitChange(Change{
		Kind:          ChangeInsert,
		Index:         at,
		Length:        1,
		Components:    []Component{c},
		VersionBefore: before,
		VersionAfter:  s.version,
	})
	return true
}

// Delete removes up to count items starting at the write head. Deleted
// components are detached and destroyed.
func (s *Slot) Delete(count int) bool {
	at := clampInt(s.index, 0, len(s.items))
	end := clampInt(at+count, at, len(s.items))
	if end == at {
		return false
	}

	removed := append([]item(nil), s.items[at:end]...)
	s.splice(at, end-at, nil)

	var sb strings.Builder
	var comps []Component
	for _, it := range removed {
		if it.comp != nil {
			comps = append(comps, it.comp)
			continue
		}
		sb.WriteString(it.text)
	}

	before := s.version
	s.version++
	s.index = at
	for _, c := range comps {
		c.SetParent(nil)
		c.Destroy()
	}
	s.emitChange(Change{
		Kind:          ChangeDelete,
		Index:         at,
		Length:        len(removed),
		Text:          sb.String(),
		Components:    comps,
		VersionBefore: before,
		VersionAfter:  s.version,
	})
	return true
}

// Replace deletes the whole content and inserts text in its place.
func (s *Slot) Replace(text string) bool {
	s.Retain(0)
	deleted := s.Delete(s.Length())
	inserted := s.Insert(text)
	return deleted || inserted
}

func (s *Slot) splice(at, n int, ins []item) {
	out := make([]item, 0, len(s.items)-n+len(ins))
	out = append(out, s.items[:at]...)
	out = append(out, ins...)
	out = append(out, s.items[at+n:]...)
	s.items = out
}
