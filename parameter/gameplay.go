package parameter

import "time"

// Hill
const (
	// MaxHeight is the summit; height is clamped strictly below it
	MaxHeight = 500.0

	// SummitMargin is the gap kept between the clamp and MaxHeight
	SummitMargin = 1.0

	// NearGoalHeight triggers the one-shot forced fall
	NearGoalHeight = 480.0
)

// Push & Drain
const (
	// BasePush is height gained per push at speed 1
	BasePush = 1.0

	// EnduranceDrain is endurance spent per push at speed 1
	EnduranceDrain = 6.0

	// PushRepeatInterval is the hold-to-push cadence at speed 1
	PushRepeatInterval = 100 * time.Millisecond
)

// Gravity
const (
	// GravityInterval is the decay cadence
	GravityInterval = 100 * time.Millisecond

	// BaseGravity is the flat decay per gravity step
	BaseGravity = 0.8

	// GravityHeightScale makes decay proportional to height
	GravityHeightScale = 0.002

	// FallTimeStep is fallTime gained per gravity step at speed 1
	FallTimeStep = 0.2

	// FallTimeAccel scales decay by time since the last push
	FallTimeAccel = 0.05
)

// Recovery
const (
	// RecoveryInterval is the regeneration cadence while recovering
	RecoveryInterval = 500 * time.Millisecond

	// RegenRateBottom is the fraction of max endurance restored per step at height 0
	RegenRateBottom = 0.12

	// RegenRateStuck is the fraction restored per step when recovering mid-hill
	RegenRateStuck = 0.05
)

// Random Events
const (
	DivinePunishmentChance = 0.002
	RandomEventChance      = 0.015

	BlessingPushes  = 5
	MomentumPushes  = 3
	SlipperyPushes  = 3
	SurgePushes     = 5
	SlipperyFactor  = 3.0
	SurgeMultiplier = 2.0

	// MomentumInterval is the delay between automatic pushes
	MomentumInterval = 200 * time.Millisecond

	// MomentumFactor scales power and drain of automatic pushes
	MomentumFactor = 0.5

	// GraceFraction of max endurance restored by the grace event
	GraceFraction = 0.5

	// MalfunctionMinLoss and MalfunctionLossSpread bound the fraction of height lost
	MalfunctionMinLoss    = 0.1
	MalfunctionLossSpread = 0.2
)

// Milestones announced once per crossing
var Milestones = [...]float64{100, 250, 400}
