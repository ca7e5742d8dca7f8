// Package schedule drives the periodic tick handlers of a simulation, either on
// a deterministic virtual clock or in real time.
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is one periodic tick handler. Run receives the nominal elapsed time
// (the period) and must not block.
type Task struct {
	Name   string
	Period time.Duration
	Run    func(elapsed time.Duration)
}

// ErrBadPeriod is returned for tasks with a non-positive period.
var ErrBadPeriod = errors.New("schedule: task period must be positive")

func validate(tasks []Task) error {
	for _, t := range tasks {
		if t.Period <= 0 || t.Run == nil {
			return ErrBadPeriod
		}
	}
	return nil
}

type entry struct {
	task Task
	next time.Duration
}

// Clock is a virtual scheduler. Nothing happens until Advance is called, which
// makes runs reproducible in tests and lets a renderer drive the simulation
// from its own frame loop.
type Clock struct {
	now     time.Duration
	entries []*entry
}

// NewClock creates a clock with the given tasks; each first fires one period in.
func NewClock(tasks ...Task) (*Clock, error) {
	if err := validate(tasks); err != nil {
		return nil, err
	}
	c := &Clock{}
	for _, t := range tasks {
		c.entries = append(c.entries, &entry{task: t, next: t.Period})
	}
	return c, nil
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves virtual time forward by d, firing every due task in time order.
// Tasks due at the same instant fire in registration order. Returns the number
// of handler invocations.
func (c *Clock) Advance(d time.Duration) int {
	target := c.now + d
	fired := 0
	for {
		var due *entry
		for _, e := range c.entries {
			if e.next <= target && (due == nil || e.next < due.next) {
				due = e
			}
		}
		if due == nil {
			break
		}
		c.now = due.next
		due.task.Run(due.task.Period)
		due.next += due.task.Period
		fired++
	}
	c.now = target
	return fired
}

// Runner runs tasks in real time, one goroutine per task. Handlers are
// serialised through lock so they never overlap.
type Runner struct {
	cancel context.CancelFunc
	group  *errgroup.Group
	once   sync.Once
	err    error
}

// Start launches the tasks. Stop must be called to release them.
func Start(ctx context.Context, lock sync.Locker, tasks ...Task) (*Runner, error) {
	if err := validate(tasks); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	for _, t := range tasks {
		g.Go(func() error {
			ticker := time.NewTicker(t.Period)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					lock.Lock()
					// Stop may have been called while waiting for the lock.
					if gctx.Err() == nil {
						t.Run(t.Period)
					}
					lock.Unlock()
				}
			}
		})
	}

	return &Runner{cancel: cancel, group: g}, nil
}

// Stop cancels every task and waits for them to exit. No handler runs after
// Stop returns. Safe to call more than once.
func (r *Runner) Stop() error {
	r.once.Do(func() {
		r.cancel()
		r.err = r.group.Wait()
	})
	return r.err
}
