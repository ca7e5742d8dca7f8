// Package preview runs one simulation at a time from a runtime specification:
// detection, task scheduling, frame delivery, input routing and teardown.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridpreview/internal/config"
	"github.com/vovakirdan/gridpreview/internal/diag"
	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/input"
	"github.com/vovakirdan/gridpreview/internal/registry"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
	"github.com/vovakirdan/gridpreview/internal/schedule"
	"github.com/vovakirdan/gridpreview/internal/storage"
)

// ErrClosed is returned when starting a run on a closed preview.
var ErrClosed = errors.New("preview: closed")

// sweepPeriod is how often held keys are checked against the hold window.
const sweepPeriod = 16 * time.Millisecond

// FrameSink receives a frame after every handler. It is called with the
// handler lock held and must not block or call back into the preview.
type FrameSink interface {
	Frame(f registry.Frame)
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(f registry.Frame)

// Frame calls fn(f).
func (fn FrameSinkFunc) Frame(f registry.Frame) { fn(f) }

// Recorder stores finished runs. *storage.Store satisfies it.
type Recorder interface {
	SaveRun(r storage.Run) error
}

// Options configures a Preview.
type Options struct {
	Config   config.PreviewConfig
	Seed     int64 // 0 picks a time-based seed for every run
	Manual   bool  // drive with Advance instead of real-time tickers
	Sink     FrameSink
	Diag     diag.Sink
	Logger   *log.Logger
	Recorder Recorder
	Now      func() time.Time
}

// RunInfo describes the active run.
type RunInfo struct {
	ID        uuid.UUID
	Plan      genre.Plan
	Summary   string
	Seed      int64
	StartedAt time.Time
}

type run struct {
	info   RunInfo
	sim    registry.Simulation
	clock  *schedule.Clock
	runner *schedule.Runner
	frame  registry.Frame
}

// Preview owns at most one running simulation.
type Preview struct {
	opts       Options
	translator *input.Translator // nil once closed

	// ctl guards the run lifecycle; tick serialises handlers and frame reads.
	// Lock order is ctl then tick.
	ctl    sync.Mutex
	tick   sync.Mutex
	cur    *run
	closed bool
}

// New creates an idle preview.
func New(opts Options) *Preview {
	if opts.Config == (config.PreviewConfig{}) {
		opts.Config = config.DefaultPreviewConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Diag == nil {
		opts.Diag = diag.NewLogSink(opts.Logger)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Preview{
		opts:       opts,
		translator: input.NewTranslator(opts.Config.Hold()),
	}
}

// Start detects ops and starts its simulation, stopping any previous run
// first. An invalid specification returns an error wrapping
// runtimeops.ErrInvalidSpec; the current run, if any, is left untouched.
func (p *Preview) Start(ctx context.Context, ops runtimeops.Ops) (RunInfo, error) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.closed {
		return RunInfo{}, ErrClosed
	}

	plan, err := genre.Detect(ops, p.opts.Diag)
	if err != nil {
		return RunInfo{}, err
	}

	if err := p.stopLocked(); err != nil {
		p.opts.Logger.Warn("previous run stopped with error", "err", err)
	}

	seed := p.opts.Seed
	if seed == 0 {
		seed = p.opts.Now().UnixNano()
	}
	sim, err := registry.Create(registry.Env{
		Plan:   plan,
		Config: p.opts.Config,
		Input:  p.translator.State(),
		Seed:   seed,
	})
	if err != nil {
		return RunInfo{}, err
	}

	r := &run{
		info: RunInfo{
			ID:        uuid.New(),
			Plan:      plan,
			Summary:   plan.Summary(),
			Seed:      seed,
			StartedAt: p.opts.Now(),
		},
		sim:   sim,
		frame: sim.Frame(),
	}

	p.publish(r.frame)
	tasks := p.wrap(r, sim.Tasks())
	if p.opts.Manual {
		r.clock, err = schedule.NewClock(tasks...)
	} else {
		r.runner, err = schedule.Start(ctx, &p.tick, tasks...)
	}
	if err != nil {
		return RunInfo{}, fmt.Errorf("preview: start %s: %w", plan.Genre, err)
	}

	p.cur = r
	p.opts.Logger.Info("run started",
		"id", r.info.ID,
		"genre", plan.Genre,
		"summary", r.info.Summary,
	)
	return r.info, nil
}

// Switch replaces the active run. It is Start under the name callers use
// when a new specification arrives.
func (p *Preview) Switch(ctx context.Context, ops runtimeops.Ops) (RunInfo, error) {
	return p.Start(ctx, ops)
}

// wrap publishes a frame after every simulation handler and adds the input
// sweep.
func (p *Preview) wrap(r *run, tasks []schedule.Task) []schedule.Task {
	out := make([]schedule.Task, 0, len(tasks)+1)
	for _, t := range tasks {
		fn := t.Run
		t.Run = func(elapsed time.Duration) {
			fn(elapsed)
			r.frame = r.sim.Frame()
			p.publish(r.frame)
		}
		out = append(out, t)
	}
	tr := p.translator
	out = append(out, schedule.Task{
		Name:   "input",
		Period: sweepPeriod,
		Run: func(time.Duration) {
			tr.Sweep(p.opts.Now())
		},
	})
	return out
}

func (p *Preview) publish(f registry.Frame) {
	if p.opts.Sink != nil {
		p.opts.Sink.Frame(f)
	}
}

// Advance moves a manual preview's virtual clock forward. Returns the number
// of handlers fired; always zero for real-time previews.
func (p *Preview) Advance(d time.Duration) int {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.cur == nil || p.cur.clock == nil {
		return 0
	}
	p.tick.Lock()
	defer p.tick.Unlock()
	return p.cur.clock.Advance(d)
}

// Frame returns the latest frame of the active run.
func (p *Preview) Frame() (registry.Frame, bool) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.cur == nil {
		return registry.Frame{}, false
	}
	p.tick.Lock()
	defer p.tick.Unlock()
	return p.cur.frame, true
}

// Current returns the active run's description.
func (p *Preview) Current() (RunInfo, bool) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.cur == nil {
		return RunInfo{}, false
	}
	return p.cur.info, true
}

// Press registers a key press. Ignored after Close.
func (p *Preview) Press(k input.Key) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.translator != nil {
		p.translator.Press(k, p.opts.Now())
	}
}

// Release registers a key release. Ignored after Close.
func (p *Preview) Release(k input.Key) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.translator != nil {
		p.translator.Release(k)
	}
}

// Stop ends the active run, recording it, and leaves the preview reusable.
func (p *Preview) Stop() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()
	return p.stopLocked()
}

// Close stops the active run and releases input. No handler fires after
// Close returns. Safe to call more than once.
func (p *Preview) Close() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	err := p.stopLocked()
	if p.translator != nil {
		p.translator.ReleaseAll()
		p.translator = nil
	}
	return err
}

// stopLocked halts the current run's tasks and records it. ctl must be held;
// tick must not be, since a running handler may be waiting for it.
func (p *Preview) stopLocked() error {
	r := p.cur
	if r == nil {
		return nil
	}
	p.cur = nil

	var err error
	if r.runner != nil {
		err = r.runner.Stop()
	}
	p.record(r)
	return err
}

func (p *Preview) record(r *run) {
	stats := r.sim.Stats()
	p.opts.Logger.Info("run finished",
		"id", r.info.ID,
		"genre", r.info.Plan.Genre,
		"ticks", stats.Ticks,
		"score", stats.Score,
		"resets", stats.Resets,
	)
	if p.opts.Recorder == nil {
		return
	}

	canonical := make([]string, len(r.info.Plan.Canonical))
	for i, c := range r.info.Plan.Canonical {
		canonical[i] = c.String()
	}
	err := p.opts.Recorder.SaveRun(storage.Run{
		ID:        r.info.ID.String(),
		Genre:     r.info.Plan.Genre.String(),
		Width:     r.info.Plan.World.Width,
		Height:    r.info.Plan.World.Height,
		Systems:   canonical,
		Ticks:     stats.Ticks,
		Score:     stats.Score,
		Resets:    stats.Resets,
		StartedAt: r.info.StartedAt,
		EndedAt:   p.opts.Now(),
	})
	if err != nil {
		p.opts.Logger.Warn("cannot record run", "id", r.info.ID, "err", err)
	}
}
