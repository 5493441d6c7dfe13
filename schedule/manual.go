package schedule

import (
	"sort"
	"time"
)

type manualTask struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Manual is a deterministic scheduler driven by a fake clock.
type Manual struct {
	now   time.Duration
	next  TaskID
	tasks map[TaskID]manualTask
}

func NewManual() *Manual {
	return &Manual{tasks: make(map[TaskID]manualTask)}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	m.next++
	id := m.next
	m.tasks[id] = manualTask{id: id, due: m.now + d, fn: fn}
	return func() { delete(m.tasks, id) }
}

// Now is the time elapsed on the fake clock.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns queued task ids ordered by due time, then by id.
func (m *Manual) Pending() []TaskID {
	tasks := m.sorted()
	out := make([]TaskID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.id)
	}
	return out
}

// Run fires one task immediately, regardless of its due time. It reports
// false when the task is unknown or was cancelled.
func (m *Manual) Run(id TaskID) bool {
	t, ok := m.tasks[id]
	if !ok {
		return false
	}
	delete(m.tasks, id)
	t.fn()
	return true
}

// Advance moves the clock forward by d and fires every task that becomes
// due, in due order. Tasks scheduled by a firing callback run in the same
// call when they are due. It returns the number of tasks fired.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0
	for {
		tasks := m.sorted()
		if len(tasks) == 0 || tasks[0].due > target {
			break
		}
		t := tasks[0]
		if t.due > m.now {
			m.now = t.due
		}
		delete(m.tasks, t.id)
		t.fn()
		fired++
	}
	m.now = target
	return fired
}

func (m *Manual) sorted() []manualTask {
	out := make([]manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].due != out[j].due {
			return out[i].due < out[j].due
		}
		return out[i].id < out[j].id
	})
	return out
}
