package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Driver errors.
var (
	ErrAlreadyActive = errors.New("simulation is already running")
	ErrCompleted     = errors.New("simulation is completed, reset it first")
)

// Option configures a Driver.
type Option func(*Driver)

// WithTickHandler registers a callback invoked with the state after every tick.
func WithTickHandler(fn func(State)) Option {
	return func(d *Driver) { d.onTick = fn }
}

// WithTransitionHandler registers a callback invoked on every status change.
func WithTransitionHandler(fn func(Transition)) Option {
	return func(d *Driver) { d.onTransition = fn }
}

// Driver runs a simulation on a periodic ticker.
//
// The ticker is owned by a single goroutine started in Start. It is released when the run
// reaches 100%, when Stop or Reset is called, or when the parent context is canceled.
// Handlers are called from that goroutine and must not call Stop or Reset.
type Driver struct {
	log      *slog.Logger
	interval time.Duration

	onTick       func(State)
	onTransition func(Transition)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver creates a driver in the reset state.
func NewDriver(log *slog.Logger, interval time.Duration, opts ...Option) *Driver {
	d := &Driver{
		log:      log,
		interval: interval,
		state:    NewState(),
		done:     closedChan(),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start begins ticking. It fails if a run is in progress or the state is terminal.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return ErrAlreadyActive
	}
	if d.state.Done() {
		return ErrCompleted
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done
	d.state.Active = true
	d.state.Visible = visible(d.state)

	ticker := time.NewTicker(d.interval)
	go d.loop(runCtx, ticker, done)

	d.log.DebugContext(ctx, "Simulation started", "simulation", d.state.ID, "progress", d.state.Progress)

	return nil
}

func (d *Driver) loop(ctx context.Context, ticker *time.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	defer d.release()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if finished := d.step(ctx); finished {
				return
			}
		}
	}
}

// step applies one tick and runs the handlers outside the lock.
func (d *Driver) step(ctx context.Context) bool {
	d.mu.Lock()
	if ctx.Err() != nil {
		// Stop won the race against this tick.
		d.mu.Unlock()
		return true
	}
	next, tr, changed := Tick(d.state)
	d.state = next
	d.mu.Unlock()

	if changed {
		d.log.DebugContext(ctx, "Simulation status changed",
			"simulation", next.ID, "from", tr.From, "to", tr.To, "tick", tr.Tick)
		if d.onTransition != nil {
			d.onTransition(tr)
		}
	}
	if d.onTick != nil {
		d.onTick(next)
	}

	return next.Done()
}

// release drops the run handle. It is called exactly once per run, from the loop goroutine.
func (d *Driver) release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.state.Active = false
	d.state.Visible = false
}

// Stop cancels the running ticker and waits for it to be released. It is safe to call
// at any time and more than once.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-done
}

// Reset stops any run and returns the driver to progress 0 with a new ID.
func (d *Driver) Reset() State {
	d.Stop()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = NewState()

	return d.state
}

// State returns a snapshot of the current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

// Done is closed when the current run ends, for whatever reason.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.done
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)

	return ch
}
