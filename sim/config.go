// Package sim is the simulation core: it owns the run, the progression and the
// active modifiers, advances them on Push and Tick, and emits pure-data events
package sim

import (
	"time"

	"github.com/lixenwraith/sisyphus/parameter"
)

// Config holds the tunables of one simulation instance
// DefaultConfig mirrors the parameter package; tests override fields directly
type Config struct {
	// Username is handed to the leaderboard on a new personal best
	Username string

	MaxHeight      float64
	SummitMargin   float64
	NearGoalHeight float64

	BasePush           float64
	EnduranceDrain     float64
	PushRepeatInterval time.Duration

	GravityInterval    time.Duration
	BaseGravity        float64
	GravityHeightScale float64
	FallTimeStep       float64
	FallTimeAccel      float64

	RecoveryInterval time.Duration
	RegenRateBottom  float64
	RegenRateStuck   float64

	DivinePunishmentChance float64
	RandomEventChance      float64
	MomentumInterval       time.Duration

	XPPerPush         float64
	XPLevelBase       float64
	XPLevelScale      float64
	EnduranceBase     float64
	EndurancePerLevel float64
}

// DefaultConfig returns the tuning of the shipped game
func DefaultConfig() Config {
	return Config{
		MaxHeight:              parameter.MaxHeight,
		SummitMargin:           parameter.SummitMargin,
		NearGoalHeight:         parameter.NearGoalHeight,
		BasePush:               parameter.BasePush,
		EnduranceDrain:         parameter.EnduranceDrain,
		PushRepeatInterval:     parameter.PushRepeatInterval,
		GravityInterval:        parameter.GravityInterval,
		BaseGravity:            parameter.BaseGravity,
		GravityHeightScale:     parameter.GravityHeightScale,
		FallTimeStep:           parameter.FallTimeStep,
		FallTimeAccel:          parameter.FallTimeAccel,
		RecoveryInterval:       parameter.RecoveryInterval,
		RegenRateBottom:        parameter.RegenRateBottom,
		RegenRateStuck:         parameter.RegenRateStuck,
		DivinePunishmentChance: parameter.DivinePunishmentChance,
		RandomEventChance:      parameter.RandomEventChance,
		MomentumInterval:       parameter.MomentumInterval,
		XPPerPush:              parameter.XPPerPush,
		XPLevelBase:            parameter.XPLevelBase,
		XPLevelScale:           parameter.XPLevelScale,
		EnduranceBase:          parameter.EnduranceBase,
		EndurancePerLevel:      parameter.EndurancePerLevel,
	}
}

// ceiling is the highest height the ledger accepts
func (c Config) ceiling() float64 {
	return c.MaxHeight - c.SummitMargin
}
