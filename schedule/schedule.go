// Package schedule runs delayed callbacks on the host's event loop.
//
// Callbacks never run on a timer goroutine: the host decides when a due task
// fires, so components can touch their state without locking.
package schedule

import "time"

// TaskID identifies a scheduled callback.
type TaskID uint64

// Scheduler schedules fn to run after d. The returned cancel func is safe to
// call more than once and after the task ran.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}
