package sim

import (
	"math"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/parameter"
)

// Upgrade selects what SpendLevel buys
type Upgrade uint8

const (
	// UpgradeMitigation trades levels for a chance to skip push drain
	UpgradeMitigation Upgrade = iota
	// UpgradeSpeed trades levels for global speed, which scales push, drain and gravity alike
	UpgradeSpeed
)

func (u Upgrade) String() string {
	switch u {
	case UpgradeMitigation:
		return "mitigation"
	case UpgradeSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// Threshold is the experience needed to leave level
// Clamped to a finite value so snapshots always encode
func (c Config) Threshold(level int) float64 {
	t := c.rawThreshold(level)
	switch {
	case t < 1 || math.IsNaN(t):
		return 1
	case math.IsInf(t, 1):
		return math.MaxFloat64
	}
	return t
}

func (c Config) rawThreshold(level int) float64 {
	return math.Floor(c.XPLevelBase * math.Pow(c.XPLevelScale, float64(level-1)))
}

// reachable reports whether level has a finite threshold, i.e. could have been earned
func (c Config) reachable(level int) bool {
	return level >= 0 && !math.IsInf(c.rawThreshold(level), 0)
}

// MaxEnduranceFor is the endurance capacity at level
func (c Config) MaxEnduranceFor(level int) float64 {
	return c.EnduranceBase + float64(level)*c.EndurancePerLevel
}

// GrantExperience adds xp and applies every level-up it pays for
// Each level-up raises capacity and refills endurance
func (s *Simulation) GrantExperience(xp float64) {
	if xp <= 0 || math.IsNaN(xp) || math.IsInf(xp, 0) {
		return
	}
	s.prog.Experience += xp
	leveled := false
	for s.prog.Experience >= s.cfg.Threshold(s.prog.Level) {
		s.prog.Experience -= s.cfg.Threshold(s.prog.Level)
		s.prog.Level++
		s.setCapacity(s.cfg.MaxEnduranceFor(s.prog.Level))
		s.run.Refill()
		s.emit(event.EventLevelUp, 0, float64(s.prog.Level))
		leveled = true
	}
	if leveled {
		s.checkUnlocks()
	}
}

// SpendLevel buys an upgrade with levels
// A refused spend emits EventUpgradeRejected and returns false, state untouched
func (s *Simulation) SpendLevel(kind Upgrade) bool {
	switch kind {
	case UpgradeMitigation:
		if s.prog.MitigationChance >= parameter.MitigationCap {
			return s.reject(kind, event.RejectCap)
		}
		if s.prog.Level < parameter.MitigationCost {
			return s.reject(kind, event.RejectLevel)
		}
		s.prog.Level -= parameter.MitigationCost
		s.prog.MitigationChance = math.Min(s.prog.MitigationChance+parameter.MitigationStep, parameter.MitigationCap)
		s.applyLevelChange()
		s.emit(event.EventUpgradeMitigation, pick(s.rng, parameter.MitigationLines), s.prog.MitigationChance)
		return true

	case UpgradeSpeed:
		if s.prog.Level < parameter.SpeedCost {
			return s.reject(kind, event.RejectLevel)
		}
		s.prog.Level -= parameter.SpeedCost
		s.prog.SpeedMultiplier += parameter.SpeedStep
		s.applyLevelChange()
		s.emit(event.EventUpgradeSpeed, pick(s.rng, parameter.SpeedLines), s.prog.SpeedMultiplier)
		if s.holding {
			s.scheduleHold()
		}
		return true
	}
	return false
}

// reject reports a refused spend; Value carries the upgrade kind
func (s *Simulation) reject(kind Upgrade, reason int) bool {
	s.emit(event.EventUpgradeRejected, reason, float64(kind))
	return false
}

// applyLevelChange recomputes capacity after a spend and refills to it
func (s *Simulation) applyLevelChange() {
	s.setCapacity(s.cfg.MaxEnduranceFor(s.prog.Level))
	s.run.Refill()
}

// setCapacity changes endurance capacity for this and every later run
// A fresh progression starts at EnduranceBase; the level formula applies from the first level change
func (s *Simulation) setCapacity(max float64) {
	s.capacity = max
	s.run.SetMaxEndurance(max)
}
