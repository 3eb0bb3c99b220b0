package sim

import (
	"github.com/lixenwraith/sisyphus/engine"
	"github.com/lixenwraith/sisyphus/engine/fsm"
	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/parameter"
)

// Timer groups: gravity lives for the whole session, the rest belongs to the current run
const (
	groupSession engine.TimerGroup = iota
	groupRun
)

var allPhases = []Phase{PhaseAscending, PhaseForced, PhaseRecovering, PhaseCollapsed}

// newLifecycle builds the run-state table and binds its actions to s
//
//	ascending  --near-goal-->  forced
//	ascending  --exhausted-->  collapsed
//	ascending  --smitten-->    collapsed
//	ascending, forced, collapsed --bottom--> recovering
//	recovering --restored-->   ascending
//	any        --reset-->      ascending
func newLifecycle(s *Simulation) *fsm.Table[Phase, trigger] {
	t := fsm.New[Phase, trigger](PhaseAscending)
	t.Allow(PhaseAscending, triggerNearGoal, PhaseForced).
		Allow(PhaseAscending, triggerExhausted, PhaseCollapsed).
		Allow(PhaseAscending, triggerSmitten, PhaseCollapsed).
		AllowFrom([]Phase{PhaseAscending, PhaseForced, PhaseCollapsed}, triggerBottom, PhaseRecovering).
		Allow(PhaseRecovering, triggerRestored, PhaseAscending).
		AllowFrom(allPhases, triggerReset, PhaseAscending)

	t.OnExit(PhaseAscending, func(_, _ Phase, _ trigger) {
		s.stopMomentum()
		s.stopHold()
	})
	t.OnEnter(PhaseForced, func(_, _ Phase, _ trigger) {
		s.run.Exhaust()
		s.emit(event.EventNearGoal, pick(s.rng, parameter.NearGoalLines), s.run.Height())
		s.endRun()
	})
	t.OnEnter(PhaseCollapsed, func(_, _ Phase, on trigger) {
		if on == triggerExhausted {
			s.emit(event.EventStrengthFails, 0, s.run.Height())
		}
		s.endRun()
	})
	t.OnEnter(PhaseRecovering, func(_, _ Phase, _ trigger) {
		s.emit(event.EventRecoveryStarted, 0, s.run.Endurance())
		s.regenID = s.timers.Every(s.cfg.RecoveryInterval, groupRun, s.regenStep)
	})
	t.OnEnter(PhaseAscending, func(_, _ Phase, on trigger) {
		if on != triggerRestored {
			return
		}
		s.prog.RunCount++
		s.run = s.newRun()
		s.emit(event.EventRunStarted, pick(s.rng, parameter.RecoveryLines), float64(s.prog.RunCount))
	})
	return t
}

// observe checks the ledger after a push for the transitions a push can cause
// Near-goal outranks exhaustion: the forced fall already zeroes endurance
func (s *Simulation) observe() {
	if s.lifecycle.State() != PhaseAscending {
		return
	}
	if s.run.Height() >= s.cfg.NearGoalHeight && !s.nearGoalTriggered {
		s.nearGoalTriggered = true
		s.lifecycle.Fire(triggerNearGoal)
		return
	}
	if s.run.Endurance() <= 0 {
		s.lifecycle.Fire(triggerExhausted)
	}
}

// endRun records the personal best of a finished run
func (s *Simulation) endRun() {
	h := s.run.Height()
	if h <= s.prog.PersonalBest {
		return
	}
	s.prog.PersonalBest = h
	s.emit(event.EventPersonalBest, 0, h)
	s.checkUnlocks()
	if s.board != nil {
		s.board.SubmitIfRecord(s.cfg.Username, h, s.prog.Level)
	}
}

// regenStep refills endurance while recovering, faster at the bottom
// Recovering is only entered at height 0, so the stuck rate is unreachable under the
// current transition table; it is kept for a mid-hill recovery edge
func (s *Simulation) regenStep() {
	rate := s.cfg.RegenRateStuck
	if s.run.Height() == 0 {
		rate = s.cfg.RegenRateBottom
	}
	s.run.Restore(s.run.MaxEndurance() * rate)
	if !s.run.Full() {
		return
	}
	s.timers.Cancel(s.regenID)
	s.regenID = 0
	s.lifecycle.Fire(triggerRestored)
}

// newRun is a fresh attempt at full endurance
func (s *Simulation) newRun() RunState {
	return RunState{Ledger: newLedger(s.cfg.ceiling(), s.capacity)}
}
