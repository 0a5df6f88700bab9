package driver

import (
	"context"
	"time"

	"bajzel/internal/trace"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Compile.
type PhaseObserver func(PhaseEvent)

// phase opens a timed, traced pipeline phase; the returned func closes it.
func (c *compilation) phase(name string) (context.Context, func(note string)) {
	if c.opts.Observer != nil {
		c.opts.Observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	span, ctx := trace.StartSpan(c.ctx, trace.ScopePass, name)
	idx := c.res.Timer.Begin(name)
	started := time.Now()
	return ctx, func(note string) {
		c.res.Timer.End(idx, note)
		span.End(note)
		if c.opts.Observer != nil {
			c.opts.Observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
		}
	}
}
