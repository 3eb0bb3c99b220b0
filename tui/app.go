// Package tui is the terminal front-end: it draws simulation snapshots with tcell
// and turns keys and mouse buttons into simulation commands
package tui

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sisyphus/core"
	"github.com/lixenwraith/sisyphus/parameter"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
)

// Controller accepts simulation mutations; engine.Loop satisfies it
type Controller interface {
	Submit(cmd func(*sim.Simulation)) bool
}

// Muter toggles audio and reports the new state
type Muter interface {
	ToggleMute() bool
}

// App owns the screen on its own goroutine
// Snapshots and leaderboard rows arrive from other goroutines through atomics
type App struct {
	screen tcell.Screen
	ctrl   Controller
	keys   *KeyTable
	orch   *Orchestrator

	username string
	lines    func() []string
	muter    Muter
	frame    time.Duration

	snap  atomic.Pointer[sim.Snapshot]
	board atomic.Pointer[[]BoardEntry]
	muted atomic.Bool

	// UI goroutine only
	mouseDown bool

	statFrames *atomic.Int64
	statInputs *atomic.Int64
}

// Option configures an App
type Option func(*App)

// WithUsername sets the name shown in the header and highlighted on the leaderboard
func WithUsername(name string) Option {
	return func(a *App) { a.username = name }
}

// WithLog sets the source of narrative lines
func WithLog(lines func() []string) Option {
	return func(a *App) { a.lines = lines }
}

// WithMuter wires the mute key; muted is the initial state
func WithMuter(m Muter, muted bool) Option {
	return func(a *App) {
		a.muter = m
		a.muted.Store(muted)
	}
}

// WithKeys replaces the default key bindings
func WithKeys(t *KeyTable) Option {
	return func(a *App) { a.keys = t }
}

// NewApp builds the UI on an initialized screen
func NewApp(screen tcell.Screen, ctrl Controller, reg *status.Registry, opts ...Option) *App {
	if reg == nil {
		reg = status.NewRegistry()
	}
	w, h := screen.Size()
	a := &App{
		screen:     screen,
		ctrl:       ctrl,
		keys:       DefaultKeyTable(),
		orch:       NewOrchestrator(w, h),
		frame:      parameter.FrameUpdateInterval,
		lines:      func() []string { return nil },
		statFrames: reg.Ints.Get("ui.frames"),
		statInputs: reg.Ints.Get("ui.inputs"),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.orch.Register(hillRenderer{}, PriorityHill)
	a.orch.Register(statsRenderer{}, PriorityPanel)
	a.orch.Register(logRenderer{}, PriorityPanel)
	a.orch.Register(boardRenderer{}, PriorityPanel)
	a.orch.Register(headerRenderer{}, PriorityUI)
	a.orch.Register(helpRenderer{}, PriorityUI)
	a.orch.Register(bannerRenderer{}, PriorityOverlay)
	return a
}

// Observe stores the latest snapshot; called on the simulation loop goroutine
func (a *App) Observe(s *sim.Simulation) {
	snap := s.Snapshot()
	a.snap.Store(&snap)
}

// SetBoard replaces the leaderboard rows
func (a *App) SetBoard(entries []BoardEntry) {
	a.board.Store(&entries)
}

// View captures the current frame inputs
func (a *App) View() *View {
	v := &View{
		Username: a.username,
		Muted:    a.muted.Load(),
		Lines:    a.lines(),
	}
	if s := a.snap.Load(); s != nil {
		v.Snap = *s
	}
	if b := a.board.Load(); b != nil {
		v.Board = *b
	}
	return v
}

// Draw renders one frame
func (a *App) Draw() {
	a.orch.RenderFrame(a.View(), a.screen)
	a.statFrames.Add(1)
}

// Run draws and handles input until the player quits
// The caller finalizes the screen, which also ends the input goroutine
func (a *App) Run() {
	a.screen.EnableMouse()
	a.screen.SetStyle(styleBase)

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()
	a.Draw()

	for {
		select {
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.Draw()
		}
	}
}

// HandleEvent processes one terminal event, false means quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		a.statInputs.Add(1)
		return a.Apply(a.keys.Lookup(e.Key(), e.Rune()))
	case *tcell.EventMouse:
		a.mouse(e.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		w, h := a.screen.Size()
		a.orch.Resize(w, h)
		a.screen.Sync()
	}
	return true
}

// mouse holds while the primary button is down
func (a *App) mouse(down bool) {
	if down == a.mouseDown {
		return
	}
	a.mouseDown = down
	a.submit(func(s *sim.Simulation) { s.Hold(down) })
}

// Apply executes an intent, false means quit
func (a *App) Apply(intent Intent) bool {
	switch intent {
	case IntentQuit:
		return false
	case IntentPush:
		a.submit(func(s *sim.Simulation) { s.Push() })
	case IntentHoldToggle:
		on := true
		if snap := a.snap.Load(); snap != nil {
			on = !snap.Holding
		}
		a.submit(func(s *sim.Simulation) { s.Hold(on) })
	case IntentUpgradeMitigation:
		a.submit(func(s *sim.Simulation) { s.SpendLevel(sim.UpgradeMitigation) })
	case IntentUpgradeSpeed:
		a.submit(func(s *sim.Simulation) { s.SpendLevel(sim.UpgradeSpeed) })
	case IntentResetRun:
		a.submit(func(s *sim.Simulation) { s.ResetRun() })
	case IntentResetAll:
		a.submit(func(s *sim.Simulation) { s.ResetAll() })
	case IntentToggleMute:
		if a.muter != nil {
			a.muted.Store(a.muter.ToggleMute())
		}
	}
	return true
}

func (a *App) submit(cmd func(*sim.Simulation)) {
	a.ctrl.Submit(cmd)
}
