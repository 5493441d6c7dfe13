package component

import (
	"log/slog"

	"github.com/iw2rmb/atmention/schedule"
	"github.com/iw2rmb/atmention/selection"
)

// Invalidator is told when an instance needs to be redrawn.
type Invalidator interface {
	Invalidate(inst *Instance)
}

// InvalidatorFunc adapts a func to Invalidator.
type InvalidatorFunc func(inst *Instance)

func (f InvalidatorFunc) Invalidate(inst *Instance) { f(inst) }

// Services are the host collaborators handed to every instance.
type Services struct {
	Selection   *selection.Selection
	Scheduler   schedule.Scheduler
	Invalidator Invalidator

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (s Services) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
