// Package stage runs the art pipeline as a chain of deferred steps so a
// single-threaded host stays responsive between expensive transforms.
//
// Each Run owns a fresh keeper and state machine. A single driver, fire,
// is re-entered on every timer callback and dispatches on the current
// state; intermediate images live on the Run and are dropped as soon as
// the next stage has consumed them.
//
// Runs are not safe for concurrent use. Start, Cancel and the draw action
// must be called on the goroutine that executes the host timer callbacks.
package stage

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/AnyUserName/asciisketch/internal/art"
	"github.com/AnyUserName/asciisketch/internal/keeper"
	"github.com/AnyUserName/asciisketch/internal/logging"
)

// Observer is called synchronously with each intermediate image, right
// after the stage that produced it. Returning an error aborts the run.
type Observer func(st Stage, img image.Image) error

// Finisher receives the deferred draw action once glyph mapping is done.
// It may call draw immediately or hold on to it and call it later.
type Finisher func(draw func() error) error

// Sink receives the finished rows, top to bottom.
type Sink interface {
	WriteRow(row string) error
}

// Flusher is implemented by sinks that need a final step after the last
// row, such as rasterising the whole grid.
type Flusher interface {
	Flush() error
}

// Timing records how long the work of one step took.
type Timing struct {
	Stage   Stage
	Elapsed time.Duration
}

type options struct {
	step     time.Duration
	observer Observer
	final    Finisher
}

// Option configures a run.
type Option func(o *options)

// WithStep sets the delay added before each step. Zero still defers every
// step to a later turn of the loop.
func WithStep(d time.Duration) Option {
	return func(o *options) { o.step = d }
}

// WithObserver installs a per-stage observer.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithFinal installs the final callback. Without one, the run draws as
// soon as glyph mapping finishes.
func WithFinal(fn Finisher) Option {
	return func(o *options) { o.final = fn }
}

// Run is one pass of the pipeline through the scheduler.
type Run struct {
	gen    *art.Generator
	keeper *keeper.Keeper
	sink   Sink
	opts   options

	state Stage
	delay time.Duration

	resized    *image.NRGBA
	foreground *image.NRGBA
	blended    *image.NRGBA
	rows       *art.Rows

	timings []Timing
	drawn   bool
	err     error
	done    chan struct{}
}

// Start schedules the first step and returns the run. The generator's
// configuration is frozen at this point. A failed first registration is
// returned directly and nothing is left pending.
func Start(gen *art.Generator, timer keeper.Timer, sink Sink, opts ...Option) (*Run, error) {
	o := options{
		observer: func(Stage, image.Image) error { return nil },
		final:    func(draw func() error) error { return draw() },
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Run{
		gen:    gen.Clone(),
		keeper: keeper.New(timer),
		sink:   sink,
		opts:   o,
		state:  Idle,
		done:   make(chan struct{}),
	}

	cols, rows := r.gen.GridSize()
	logging.Logger().Info("run started", "cols", cols, "rows", rows, "step", o.step)

	if err := r.scheduleNext(ResizeScheduled); err != nil {
		return nil, err
	}
	return r, nil
}

// State returns the current state.
func (r *Run) State() Stage { return r.state }

// Done is closed when the run has drawn, failed or been canceled.
func (r *Run) Done() <-chan struct{} { return r.done }

// Err returns why the run stopped, or nil after a successful draw. It is
// only meaningful once Done is closed.
func (r *Run) Err() error { return r.err }

// Wait blocks until the run is done or ctx ends. It must not be called
// from the goroutine that drives the run.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Timings returns the elapsed work time of each finished step, in order.
func (r *Run) Timings() []Timing {
	return append([]Timing(nil), r.timings...)
}

// Pending returns the number of deferred steps not yet fired.
func (r *Run) Pending() int { return r.keeper.Pending() }

// Cancel releases the run. Every pending step is cleared with the host
// timer, and no observer, final callback or draw fires afterwards. A
// currently executing step is not interrupted.
func (r *Run) Cancel() {
	if r.finished() {
		return
	}
	at := r.state
	r.state = Canceled
	logging.Logger().Warn("run canceled", "stage", at)
	r.finish(&Error{Stage: at, Kind: ErrCanceled})
}

func (r *Run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// finish releases the keeper and marks the run done. The keeper is
// released here and nowhere else, so it outlives every scheduled step and
// the draw action.
func (r *Run) finish(err error) {
	r.err = err
	r.resized, r.foreground, r.blended = nil, nil, nil
	r.keeper.Close()
	close(r.done)
}

func (r *Run) fail(kind, cause error) error {
	e := &Error{Stage: r.state, Kind: kind, Err: cause}
	if r.finished() {
		return e
	}
	r.state = Failed
	logging.Logger().Warn("run failed", "stage", e.Stage, "err", cause)
	r.finish(e)
	return e
}

func (r *Run) transition(to Stage) bool {
	if !isAllowedTransition(r.state, to) {
		r.fail(ErrScheduling, fmt.Errorf("invalid transition %s -> %s", r.state, to))
		return false
	}
	r.state = to
	return true
}

// scheduleNext moves to a *Scheduled state and registers fire with a
// cumulative delay: step, 2*step, 3*step, 4*step.
func (r *Run) scheduleNext(to Stage) error {
	if !r.transition(to) {
		return r.err
	}
	r.delay += r.opts.step
	if _, err := r.keeper.Schedule(r.fire, r.delay); err != nil {
		return r.fail(ErrScheduling, err)
	}
	return nil
}

// fire is the driver. It runs exactly one step per call.
func (r *Run) fire() {
	if r.finished() {
		return
	}

	start := time.Now()
	switch r.state {
	case ResizeScheduled:
		r.resized = r.gen.Resize()
		r.completeStep(ResizeDone, start, r.resized, BlurScheduled)

	case BlurScheduled:
		r.foreground = r.gen.BlurInvert(r.resized)
		r.completeStep(BlurDone, start, r.foreground, BlendScheduled)

	case BlendScheduled:
		r.blended = r.gen.BlendAdjust(r.resized, r.foreground)
		r.resized, r.foreground = nil, nil
		r.completeStep(BlendDone, start, r.blended, GlyphMapScheduled)

	case GlyphMapScheduled:
		r.rows = r.gen.Glyphs(r.blended)
		r.blended = nil
		if !r.transition(Complete) {
			return
		}
		r.record(Complete, start)
		if err := r.opts.final(r.draw); err != nil {
			r.fail(ErrPresentation, fmt.Errorf("final callback: %w", err))
		}

	default:
		r.fail(ErrScheduling, fmt.Errorf("step fired in state %s", r.state))
	}
}

func (r *Run) completeStep(done Stage, start time.Time, img image.Image, next Stage) {
	if !r.transition(done) {
		return
	}
	r.record(done, start)
	if err := r.opts.observer(done, img); err != nil {
		r.fail(ErrPresentation, fmt.Errorf("observe %s: %w", done.Step(), err))
		return
	}
	r.scheduleNext(next)
}

func (r *Run) record(s Stage, start time.Time) {
	elapsed := time.Since(start)
	r.timings = append(r.timings, Timing{Stage: s, Elapsed: elapsed})
	logging.Logger().Debug("step done", "step", s.Step(), "elapsed", elapsed)
}

// draw writes every row to the sink. It is handed to the final callback
// and keeps the run, and with it the keeper, alive until it is invoked.
func (r *Run) draw() error {
	switch {
	case r.state == Canceled:
		return &Error{Stage: Canceled, Kind: ErrCanceled}
	case r.drawn:
		return ErrAlreadyDrawn
	case r.finished():
		return r.err
	}
	r.drawn = true

	n := 0
	for r.rows.Next() {
		if err := r.sink.WriteRow(r.rows.Text()); err != nil {
			return r.fail(ErrPresentation, fmt.Errorf("write row %d: %w", n, err))
		}
		n++
	}
	if f, ok := r.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return r.fail(ErrPresentation, fmt.Errorf("flush sink: %w", err))
		}
	}

	logging.Logger().Info("art drawn", "rows", n)
	r.finish(nil)
	return nil
}
