package slot

// ChangeKind identifies the mutation a Change describes.
type ChangeKind uint8

const (
	ChangeInsert ChangeKind = iota
	ChangeDelete
)

// Change is emitted after every effective mutation.
type Change struct {
	Kind  ChangeKind
	Index int
	// Length is the number of items inserted or deleted.
	Length int

	// Text is the inserted or deleted text. Components are not included.
	Text       string
	Components []Component

	VersionBefore uint64
	VersionAfter  uint64
}

// InsertEvent is delivered to insert hooks before content is applied.
//
// At delivery time the slot still holds its previous content.
type InsertEvent struct {
	Slot      *Slot
	Index     int
	Text      string
	Component Component

	prevented bool
}

// Prevent cancels the insertion.
func (e *InsertEvent) Prevent() { e.prevented = true }

func (e *InsertEvent) Prevented() bool { return e.prevented }

type insertHook struct {
	id int
	fn func(*InsertEvent)
}

type changeHook struct {
	id int
	fn func(Change)
}

// OnContentInsert registers fn to run before each insertion. The returned
// func removes the hook.
func (s *Slot) OnContentInsert(fn func(*InsertEvent)) func() {
	s.nextHookID++
	id := s.nextHookID
	s.insertHooks = append(s.insertHooks, insertHook{id: id, fn: fn})
	return func() {
		for i, h := range s.insertHooks {
			if h.id == id {
				s.insertHooks = append(s.insertHooks[:i:i], s.insertHooks[i+1:]...)
				return
			}
		}
	}
}

// OnChange registers fn to run after each effective mutation. The returned
// func removes the hook.
func (s *Slot) OnChange(fn func(Change)) func() {
	s.nextHookID++
	id := s.nextHookID
	s.changeHooks = append(s.changeHooks, changeHook{id: id, fn: fn})
	return func() {
		for i, h := range s.changeHooks {
			if h.id == id {
				s.changeHooks = append(s.changeHooks[:i:i], s.changeHooks[i+1:]...)
				return
			}
		}
	}
}

func (s *Slot) emitInsert(ev *InsertEvent) bool {
	hooks := append([]insertHook(nil), s.insertHooks...)
	for _, h := range hooks {
		h.fn(ev)
		if ev.prevented {
			return false
		}
	}
	return true
}

func (s *Slot) emitChange(c Change) {
	hooks := append([]changeHook(nil), s.changeHooks...)
	for _, h := range hooks {
		h.fn(c)
	}
}
