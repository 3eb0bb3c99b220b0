package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sisyphus/core"
	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/status"
)

// Stepper is a single-writer state the loop owns and advances
type Stepper interface {
	// Tick advances the state by dt of game time
	Tick(dt time.Duration)

	// Drain returns and clears events emitted since the previous call
	Drain() []event.GameEvent
}

// Loop runs a Stepper on one goroutine: a fixed ticker advances it and every
// external mutation arrives as a command on the same goroutine, so no two
// mutations interleave. After each tick or command the loop dispatches pending
// events to handlers and notifies observers
type Loop[S Stepper] struct {
	state S
	clock TimeProvider

	tickInterval time.Duration
	maxDelta     time.Duration
	lastTick     time.Time

	commands  chan func(S)
	router    *event.Router
	observers []func(S)

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statTicks    *atomic.Int64
	statCommands *atomic.Int64
	statDropped  *atomic.Int64
	statEvents   *atomic.Int64
	statMaxDelta *status.AtomicFloat
}

// NewLoop creates a loop owning state, ticking every tickInterval
// Deltas handed to Tick are measured with clock and capped at two intervals so a
// stalled process does not replay seconds of gravity at once
func NewLoop[S Stepper](state S, clock TimeProvider, tickInterval time.Duration, queueSize int, reg *status.Registry) *Loop[S] {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Loop[S]{
		state:        state,
		clock:        clock,
		tickInterval: tickInterval,
		maxDelta:     tickInterval * 2,
		commands:     make(chan func(S), queueSize),
		router:       event.NewRouter(),
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get("loop.ticks"),
		statCommands: reg.Ints.Get("loop.commands"),
		statDropped:  reg.Ints.Get("loop.dropped"),
		statEvents:   reg.Ints.Get("loop.events"),
		statMaxDelta: reg.Floats.Get("loop.max_delta_ms"),
	}
}

// RegisterHandler adds an event handler, must be called before Start
func (l *Loop[S]) RegisterHandler(h event.Handler) {
	l.router.Register(h)
}

// Observe adds a callback run on the loop goroutine after every settle, must be called before Start
func (l *Loop[S]) Observe(fn func(S)) {
	l.observers = append(l.observers, fn)
}

// Start launches the loop goroutine
func (l *Loop[S]) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the goroutine to exit, idempotent
func (l *Loop[S]) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.Load() {
			l.wg.Wait()
		}
	})
}

// Submit enqueues cmd without blocking; false when the queue is full or the loop stopped
func (l *Loop[S]) Submit(cmd func(S)) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.commands <- cmd:
		return true
	default:
		l.statDropped.Add(1)
		return false
	}
}

// Do runs cmd on the loop goroutine and waits for it; false if the loop stopped first
func (l *Loop[S]) Do(cmd func(S)) bool {
	done := make(chan struct{})
	wrapped := func(s S) {
		cmd(s)
		close(done)
	}
	select {
	case l.commands <- wrapped:
	case <-l.stopChan:
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopChan:
		return false
	}
}

func (l *Loop[S]) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.tickInterval)
	defer ticker.Stop()
	l.lastTick = l.clock.Now()

	// Settle once so observers see the initial state
	l.settle()

	for {
		select {
		case <-l.stopChan:
			return
		case cmd := <-l.commands:
			l.statCommands.Add(1)
			cmd(l.state)
			l.settle()
		case <-ticker.C:
			l.step()
		}
	}
}

// step advances the state by the measured delta since the previous tick
func (l *Loop[S]) step() {
	now := l.clock.Now()
	dt := now.Sub(l.lastTick)
	l.lastTick = now
	if dt <= 0 {
		return
	}
	l.statMaxDelta.Max(float64(dt) / float64(time.Millisecond))
	if dt > l.maxDelta {
		dt = l.maxDelta
	}
	l.state.Tick(dt)
	l.statTicks.Add(1)
	l.settle()
}

// settle dispatches pending events and notifies observers
func (l *Loop[S]) settle() {
	if events := l.state.Drain(); len(events) > 0 {
		l.statEvents.Add(int64(len(events)))
		l.router.Dispatch(events)
	}
	for _, fn := range l.observers {
		fn(l.state)
	}
}
