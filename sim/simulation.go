package sim

import (
	"time"

	"github.com/lixenwraith/sisyphus/engine"
	"github.com/lixenwraith/sisyphus/engine/fsm"
	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/parameter"
)

// Simulation owns one player's run, progression and modifiers
// It is single-writer: every method must be called from the same goroutine,
// which engine.Loop guarantees in the real-time driver
type Simulation struct {
	cfg Config
	rng Rand

	run       RunState
	prog      ProgressionState
	mods      Modifiers
	lifecycle *fsm.Table[Phase, trigger]
	timers    *engine.Timers
	events    *event.EventQueue
	board     Leaderboard

	// nearGoalTriggered is the one-shot forced-fall latch, cleared only by ResetAll
	nearGoalTriggered bool
	holding           bool
	tick              uint64

	// capacity is the endurance maximum carried from run to run
	capacity float64

	gravityID  engine.TimerID
	regenID    engine.TimerID
	momentumID engine.TimerID
	holdID     engine.TimerID
}

// Option configures a Simulation at construction
type Option func(*Simulation)

// WithLeaderboard reports personal bests to lb
func WithLeaderboard(lb Leaderboard) Option {
	return func(s *Simulation) { s.board = lb }
}

// WithProgression starts from a saved progression instead of defaults
func WithProgression(ps *ProgressionSnapshot) Option {
	return func(s *Simulation) { s.Restore(ps) }
}

// New creates a simulation at the bottom of the hill with a fresh progression
func New(cfg Config, rng Rand, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:      cfg,
		rng:      rng,
		prog:     defaultProgression(),
		mods:     defaultModifiers(),
		capacity: cfg.EnduranceBase,
		timers:   engine.NewTimers(),
		events:   event.NewEventQueue(),
	}
	s.run = s.newRun()
	s.lifecycle = newLifecycle(s)
	s.gravityID = s.timers.Every(cfg.GravityInterval, groupSession, s.gravityStep)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push performs one manual push
// Outside Ascending it is rejected and nothing changes
func (s *Simulation) Push() PushResult {
	if s.lifecycle.State() != PhaseAscending {
		return PushResult{}
	}
	speed := s.prog.SpeedMultiplier
	before := s.run.Height()

	res := PushResult{Accepted: true}
	res.Gained = s.run.ApplyPush(s.cfg.BasePush * speed * s.mods.PushMultiplier)
	res.Drained, res.Mitigated = drainFor(&s.mods, s.cfg.EnduranceDrain*speed, s.prog.MitigationChance, s.rng)
	s.run.ApplyDrain(res.Drained)
	consumeSurge(&s.mods)

	s.run.hasLeftBottom = true
	s.run.fallTime = 0
	reached := s.run.Height()

	if s.smite() {
		res.Smitten = true
		return res
	}
	s.rollEvent()
	s.GrantExperience(s.cfg.XPPerPush)
	s.announceMilestones(before, reached)
	s.observe()
	return res
}

// announceMilestones emits every milestone the push carried height across
func (s *Simulation) announceMilestones(before, after float64) {
	for i, m := range parameter.Milestones {
		if before < m && after >= m {
			s.emit(event.EventMilestone, i, m)
		}
	}
}

// Tick advances game time, running gravity, regen, momentum and hold timers that come due
func (s *Simulation) Tick(dt time.Duration) {
	s.tick++
	s.timers.Advance(dt)
}

// Hold starts or stops hold-to-push
// Starting pushes immediately, then every PushRepeatInterval divided by the speed multiplier
func (s *Simulation) Hold(on bool) {
	if !on {
		s.stopHold()
		return
	}
	if s.holding || s.lifecycle.State() != PhaseAscending {
		return
	}
	s.holding = true
	s.scheduleHold()
	s.Push()
}

func (s *Simulation) scheduleHold() {
	s.timers.Cancel(s.holdID)
	interval := time.Duration(float64(s.cfg.PushRepeatInterval) / s.prog.SpeedMultiplier)
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.holdID = s.timers.Every(interval, groupRun, func() { s.Push() })
}

func (s *Simulation) stopHold() {
	s.timers.Cancel(s.holdID)
	s.holdID = 0
	s.holding = false
}

// ResetRun abandons the current run for a fresh one, keeping the progression
// Every run-scoped timer is cancelled in one step
func (s *Simulation) ResetRun() {
	s.lifecycle.Fire(triggerReset)
	s.timers.CancelGroup(groupRun)
	s.regenID, s.momentumID, s.holdID = 0, 0, 0
	s.holding = false
	s.mods = defaultModifiers()
	s.run = s.newRun()
}

// ResetAll wipes the progression back to defaults and starts a fresh run
func (s *Simulation) ResetAll() {
	s.prog = defaultProgression()
	s.capacity = s.cfg.EnduranceBase
	s.nearGoalTriggered = false
	s.ResetRun()
	s.emit(event.EventResetAll, pick(s.rng, parameter.ResetLines), 0)
}

// Phase returns the current run state
func (s *Simulation) Phase() Phase {
	return s.lifecycle.State()
}

// Snapshot copies everything a front-end needs to draw one frame
func (s *Simulation) Snapshot() Snapshot {
	phase := s.lifecycle.State()
	return Snapshot{
		Phase:            phase,
		PhaseName:        phase.String(),
		Height:           s.run.Height(),
		Endurance:        s.run.Endurance(),
		MaxEndurance:     s.run.MaxEndurance(),
		FallTime:         s.run.fallTime,
		Alive:            phase == PhaseAscending,
		Recovering:       phase == PhaseRecovering,
		ForcedFall:       phase == PhaseForced,
		Holding:          s.holding,
		Level:            s.prog.Level,
		Experience:       s.prog.Experience,
		NextLevelAt:      s.cfg.Threshold(s.prog.Level),
		RunCount:         s.prog.RunCount,
		SpeedMultiplier:  s.prog.SpeedMultiplier,
		MitigationChance: s.prog.MitigationChance,
		PersonalBest:     s.prog.PersonalBest,
		Unlocked:         append([]string(nil), s.prog.Unlocked...),
		Modifiers:        s.mods,
		Tick:             s.tick,
	}
}

// Events returns and clears the events emitted since the previous call, oldest first
func (s *Simulation) Events() []event.GameEvent {
	return s.events.Consume()
}

// Drain implements engine.Stepper
func (s *Simulation) Drain() []event.GameEvent {
	return s.Events()
}

func (s *Simulation) emit(t event.EventType, index int, value float64) {
	s.events.Push(event.GameEvent{Type: t, Index: index, Value: value, Tick: s.tick})
}

func (s *Simulation) emitCue(c event.Cue) {
	s.events.Push(event.GameEvent{Type: event.EventSoundCue, Cue: c, Tick: s.tick})
}
