package sim

import "github.com/lixenwraith/sisyphus/parameter"

// Phase is the run-state tag; alive, recovering and forced-fall are derived from it
type Phase uint8

const (
	PhaseAscending Phase = iota
	PhaseForced
	PhaseRecovering
	PhaseCollapsed
)

var phaseNames = [...]string{
	PhaseAscending:  "ascending",
	PhaseForced:     "forced",
	PhaseRecovering: "recovering",
	PhaseCollapsed:  "collapsed",
}

func (p Phase) String() string {
	if int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// trigger drives the lifecycle table
type trigger uint8

const (
	triggerNearGoal trigger = iota
	triggerExhausted
	triggerSmitten
	triggerBottom
	triggerRestored
	triggerReset
)

var triggerNames = [...]string{
	triggerNearGoal:  "near-goal",
	triggerExhausted: "exhausted",
	triggerSmitten:   "smitten",
	triggerBottom:    "bottom",
	triggerRestored:  "restored",
	triggerReset:     "reset",
}

func (t trigger) String() string {
	if int(t) >= len(triggerNames) {
		return "unknown"
	}
	return triggerNames[t]
}

// RunState is one attempt at the hill
type RunState struct {
	Ledger

	fallTime      float64
	hasLeftBottom bool
}

// FallTime is the gravity acceleration accumulated since the last push
func (r *RunState) FallTime() float64 { return r.fallTime }

// HasLeftBottom reports whether this run ever moved off height zero
func (r *RunState) HasLeftBottom() bool { return r.hasLeftBottom }

// ProgressionState survives runs until ResetAll
type ProgressionState struct {
	Level            int
	Experience       float64
	RunCount         int
	SpeedMultiplier  float64
	MitigationChance float64
	PersonalBest     float64
	Unlocked         []string
}

func defaultProgression() ProgressionState {
	return ProgressionState{
		Level:           parameter.StartLevel,
		RunCount:        1,
		SpeedMultiplier: 1,
	}
}

// HasUnlocked reports whether the cosmetic id is owned
func (p *ProgressionState) HasUnlocked(id string) bool {
	for _, u := range p.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// Modifiers are the overlay counters consumed by the push pipeline
// NoDrain and TripleDrain may both be set; NoDrain wins
type Modifiers struct {
	NoDrain        int     `json:"no_drain"`
	TripleDrain    int     `json:"triple_drain"`
	Surge          int     `json:"surge"`
	AutoPush       int     `json:"auto_push"`
	PushMultiplier float64 `json:"push_multiplier"`
}

func defaultModifiers() Modifiers {
	return Modifiers{PushMultiplier: 1}
}

// DrainMultiplier is the factor the next manual push pays
func (m Modifiers) DrainMultiplier() float64 {
	switch {
	case m.NoDrain > 0:
		return 0
	case m.TripleDrain > 0:
		return parameter.SlipperyFactor
	default:
		return 1
	}
}

// Snapshot is a read-only copy of everything a front-end draws
type Snapshot struct {
	Phase        Phase   `json:"-"`
	PhaseName    string  `json:"phase"`
	Height       float64 `json:"height"`
	Endurance    float64 `json:"endurance"`
	MaxEndurance float64 `json:"max_endurance"`
	FallTime     float64 `json:"fall_time"`

	Alive      bool `json:"alive"`
	Recovering bool `json:"recovering"`
	ForcedFall bool `json:"forced_fall"`
	Holding    bool `json:"holding"`

	Level            int      `json:"level"`
	Experience       float64  `json:"experience"`
	NextLevelAt      float64  `json:"next_level_at"`
	RunCount         int      `json:"run_count"`
	SpeedMultiplier  float64  `json:"speed_multiplier"`
	MitigationChance float64  `json:"mitigation_chance"`
	PersonalBest     float64  `json:"personal_best"`
	Unlocked         []string `json:"unlocked,omitempty"`

	Modifiers Modifiers `json:"modifiers"`
	Tick      uint64    `json:"tick"`
}

// PushResult reports what one push did
type PushResult struct {
	Accepted  bool
	Gained    float64
	Drained   float64
	Mitigated bool
	Smitten   bool
}
