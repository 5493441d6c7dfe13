package schedule

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is delivered to the Bubble Tea program when a task's delay
// elapsed.
type FiredMsg struct {
	ID TaskID
}

type queuedTask struct {
	id    TaskID
	delay time.Duration
}

// Tea schedules tasks as tea.Tick commands and runs them from Update.
//
// Hosts call Cmd after every Update to start timers for newly queued tasks,
// and route FiredMsg values to Handle.
type Tea struct {
	next    TaskID
	queued  []queuedTask
	pending map[TaskID]func()
}

func NewTea() *Tea {
	return &Tea{pending: make(map[TaskID]func())}
}

func (t *Tea) AfterFunc(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	t.next++
	id := t.next
	t.pending[id] = fn
	t.queued = append(t.queued, queuedTask{id: id, delay: d})
	return func() { delete(t.pending, id) }
}

// Cmd starts timers for tasks queued since the last call. It returns nil
// when nothing is queued.
func (t *Tea) Cmd() tea.Cmd {
	if len(t.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(t.queued))
	for _, q := range t.queued {
		if _, ok := t.pending[q.id]; !ok {
			continue
		}
		id := q.id
		cmds = append(cmds, tea.Tick(q.delay, func(time.Time) tea.Msg {
			return FiredMsg{ID: id}
		}))
	}
	t.queued = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Handle runs the callback for a FiredMsg. It reports whether msg was a
// FiredMsg for a live task.
func (t *Tea) Handle(msg tea.Msg) bool {
	fired, ok := msg.(FiredMsg)
	if !ok {
		return false
	}
	fn, ok := t.pending[fired.ID]
	if !ok {
		return false
	}
	delete(t.pending, fired.ID)
	fn()
	return true
}

// Pending returns the ids of tasks that have not fired or been cancelled.
func (t *Tea) Pending() []TaskID {
	out := make([]TaskID, 0, len(t.pending))
	for id := range t.pending {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
