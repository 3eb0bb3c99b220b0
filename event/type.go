package event

// EventType represents the type of simulation event
type EventType int

const (
	// === Run Lifecycle ===

	// EventRunStarted signals a fresh run after recovery completed
	// Trigger: Recovering -> Ascending | Index: recovery line | Value: run number
	EventRunStarted EventType = iota

	// EventStrengthFails signals endurance reaching zero mid-push
	// Trigger: Ascending -> Collapsed | Value: height at collapse
	EventStrengthFails

	// EventPersonalBest signals a run ended above the previous best
	// Trigger: any run end with height > personal best | Value: new best
	EventPersonalBest

	// EventNearGoal signals the one-shot forced fall near the summit
	// Trigger: Ascending -> Forced | Index: escape line | Value: height
	EventNearGoal

	// EventRecoveryStarted signals the boulder reached the bottom
	// Trigger: bottom handoff -> Recovering | Value: endurance at start
	EventRecoveryStarted

	// EventMilestone signals a milestone height was crossed
	// Trigger: push | Index: milestone slot | Value: milestone height
	EventMilestone

	// === Progression ===

	// EventLevelUp signals a level gained from experience
	// Trigger: GrantExperience | Value: new level
	EventLevelUp

	// EventUpgradeMitigation signals a level spent on mitigation chance
	// Trigger: SpendLevel | Index: flavor line | Value: new mitigation chance
	EventUpgradeMitigation

	// EventUpgradeSpeed signals levels spent on the speed multiplier
	// Trigger: SpendLevel | Index: flavor line | Value: new speed multiplier
	EventUpgradeSpeed

	// EventUpgradeRejected signals a spend request that was refused
	// Trigger: SpendLevel | Index: RejectLevel or RejectCap | Value: upgrade kind
	EventUpgradeRejected

	// EventUnlock signals a cosmetic threshold was reached
	// Trigger: level up, personal best | Index: cosmetic slot
	EventUnlock

	// EventResetAll signals the progression was wiped
	// Trigger: ResetAll | Index: reset line
	EventResetAll

	// === Event Overlay ===

	// EventDivinePunishment signals the instant fall to height zero
	// Trigger: push roll | Value: height lost
	EventDivinePunishment

	// EventBlessing grants no-drain pushes
	// Trigger: random event | Index: flavor line | Value: pushes granted
	EventBlessing

	// EventMomentum grants automatic pushes
	// Trigger: random event | Index: flavor line | Value: pushes granted
	EventMomentum

	// EventSlippery grants triple-drain pushes
	// Trigger: random event | Index: flavor line | Value: pushes granted
	EventSlippery

	// EventGrace restores endurance
	// Trigger: random event | Index: flavor line | Value: endurance after restore
	EventGrace

	// EventSurge grants double-power pushes
	// Trigger: random event | Index: flavor line | Value: pushes granted
	EventSurge

	// EventMalfunction removes a fraction of height
	// Trigger: random event | Index: flavor line | Value: height lost
	EventMalfunction

	// === Audio ===

	// EventSoundCue requests a one-shot cue
	// Trigger: overlay events | Cue: CuePositive or CueNegative
	EventSoundCue

	eventTypeCount
)

// Upgrade rejection reasons carried in GameEvent.Index
const (
	RejectLevel = 0
	RejectCap   = 1
)

var eventNames = [...]string{
	EventRunStarted:        "run_started",
	EventStrengthFails:     "strength_fails",
	EventPersonalBest:      "personal_best",
	EventNearGoal:          "near_goal",
	EventRecoveryStarted:   "recovery_started",
	EventMilestone:         "milestone",
	EventLevelUp:           "level_up",
	EventUpgradeMitigation: "upgrade_mitigation",
	EventUpgradeSpeed:      "upgrade_speed",
	EventUpgradeRejected:   "upgrade_rejected",
	EventUnlock:            "unlock",
	EventResetAll:          "reset_all",
	EventDivinePunishment:  "divine_punishment",
	EventBlessing:          "blessing",
	EventMomentum:          "momentum",
	EventSlippery:          "slippery",
	EventGrace:             "grace",
	EventSurge:             "surge",
	EventMalfunction:       "malfunction",
	EventSoundCue:          "sound_cue",
}

// String returns the wire name of the event type
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventNames[t]
}

// AllTypes returns every defined event type in declaration order
func AllTypes() []EventType {
	types := make([]EventType, 0, eventTypeCount)
	for t := EventType(0); t < eventTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Cue identifies a one-shot sound
type Cue int

const (
	CueNone Cue = iota
	CuePositive
	CueNegative
)

// String returns the wire name of the cue
func (c Cue) String() string {
	switch c {
	case CuePositive:
		return "positive"
	case CueNegative:
		return "negative"
	default:
		return "none"
	}
}

// GameEvent is a pure-data record emitted by the simulation
// Rendering text for Index is the collaborator's job
type GameEvent struct {
	Type  EventType `json:"type"`
	Index int       `json:"index"`
	Value float64   `json:"value"`
	Cue   Cue       `json:"cue,omitempty"`
	Tick  uint64    `json:"tick"`
}
