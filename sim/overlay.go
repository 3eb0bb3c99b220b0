package sim

import (
	"math"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/parameter"
)

// overlayEvent is one entry of the random event catalog
type overlayEvent struct {
	kind  event.EventType
	lines int
	cue   event.Cue
	apply func(s *Simulation) float64
}

// catalog is drawn uniformly; apply returns the value reported on the event
var catalog = [...]overlayEvent{
	{event.EventBlessing, parameter.BlessingLines, event.CuePositive, (*Simulation).bless},
	{event.EventMomentum, parameter.MomentumLines, event.CueNegative, (*Simulation).curseMomentum},
	{event.EventSlippery, parameter.SlipperyLines, event.CueNegative, (*Simulation).slick},
	{event.EventGrace, parameter.GraceLines, event.CuePositive, (*Simulation).grace},
	{event.EventSurge, parameter.SurgeLines, event.CuePositive, (*Simulation).surge},
	{event.EventMalfunction, parameter.MalfunctionLines, event.CueNegative, (*Simulation).malfunction},
}

// smite rolls divine punishment; on a hit the run is grounded and collapses
func (s *Simulation) smite() bool {
	if s.run.Height() <= 0 || s.rng.Float64() >= s.cfg.DivinePunishmentChance {
		return false
	}
	lost := s.run.Ground()
	s.emit(event.EventDivinePunishment, 0, lost)
	s.emitCue(event.CueNegative)
	s.lifecycle.Fire(triggerSmitten)
	return true
}

// rollEvent draws at most one catalog entry
func (s *Simulation) rollEvent() {
	if s.rng.Float64() >= s.cfg.RandomEventChance {
		return
	}
	s.applyEvent(pick(s.rng, len(catalog)))
}

func (s *Simulation) applyEvent(slot int) {
	e := catalog[slot]
	line := pick(s.rng, e.lines)
	value := e.apply(s)
	s.emit(e.kind, line, value)
	s.emitCue(e.cue)
}

func (s *Simulation) bless() float64 {
	s.mods.NoDrain = parameter.BlessingPushes
	return parameter.BlessingPushes
}

func (s *Simulation) slick() float64 {
	s.mods.TripleDrain = parameter.SlipperyPushes
	return parameter.SlipperyPushes
}

func (s *Simulation) surge() float64 {
	s.mods.Surge = parameter.SurgePushes
	s.mods.PushMultiplier = parameter.SurgeMultiplier
	return parameter.SurgePushes
}

func (s *Simulation) grace() float64 {
	s.run.Restore(math.Floor(s.run.MaxEndurance() * parameter.GraceFraction))
	return s.run.Endurance()
}

func (s *Simulation) malfunction() float64 {
	fraction := parameter.MalfunctionMinLoss + s.rng.Float64()*parameter.MalfunctionLossSpread
	return s.run.ApplyDecay(math.Floor(s.run.Height() * fraction))
}

// curseMomentum arms the auto-push chain; a chain already running keeps its timer
func (s *Simulation) curseMomentum() float64 {
	s.mods.AutoPush = parameter.MomentumPushes
	if !s.timers.Active(s.momentumID) {
		s.momentumID = s.timers.Every(s.cfg.MomentumInterval, groupRun, s.autoPush)
	}
	return parameter.MomentumPushes
}

// autoPush is one involuntary push at reduced power and drain
// No mitigation roll, no experience, no overlay rolls
func (s *Simulation) autoPush() {
	if s.lifecycle.State() != PhaseAscending || s.mods.AutoPush <= 0 {
		s.stopMomentum()
		return
	}
	speed := s.prog.SpeedMultiplier
	s.run.ApplyPush(s.cfg.BasePush * speed * parameter.MomentumFactor)
	s.run.ApplyDrain(s.cfg.EnduranceDrain * speed * parameter.MomentumFactor)
	s.run.hasLeftBottom = true
	s.mods.AutoPush--
	if s.mods.AutoPush == 0 {
		s.stopMomentum()
	}
	s.observe()
}

func (s *Simulation) stopMomentum() {
	s.timers.Cancel(s.momentumID)
	s.momentumID = 0
	s.mods.AutoPush = 0
}
