package sim

import (
	"encoding/json"
	"math"

	"github.com/lixenwraith/sisyphus/parameter"
)

// Store persists progression between sessions
// Load returns nil, nil when nothing was saved yet
type Store interface {
	Save(ProgressionSnapshot) error
	Load() (*ProgressionSnapshot, error)
}

// Leaderboard receives a run's height when it beats the personal best
type Leaderboard interface {
	SubmitIfRecord(username string, height float64, level int)
}

// ProgressionSnapshot is the persisted form of ProgressionState
// Nil fields were absent or unreadable and fall back to defaults one by one
type ProgressionSnapshot struct {
	Level            *int     `json:"level,omitempty"`
	Experience       *float64 `json:"experience,omitempty"`
	RunCount         *int     `json:"run_count,omitempty"`
	SpeedMultiplier  *float64 `json:"speed_multiplier,omitempty"`
	MitigationChance *float64 `json:"mitigation_chance,omitempty"`
	PersonalBest     *float64 `json:"personal_best,omitempty"`
	Unlocked         []string `json:"unlocked,omitempty"`
}

// snapshotOf captures every field of p
func snapshotOf(p ProgressionState) ProgressionSnapshot {
	unlocked := append([]string(nil), p.Unlocked...)
	return ProgressionSnapshot{
		Level:            &p.Level,
		Experience:       &p.Experience,
		RunCount:         &p.RunCount,
		SpeedMultiplier:  &p.SpeedMultiplier,
		MitigationChance: &p.MitigationChance,
		PersonalBest:     &p.PersonalBest,
		Unlocked:         unlocked,
	}
}

// Apply builds a ProgressionState from the snapshot, validating each field
// against its invariant and keeping the default for anything missing or out of range
func (ps ProgressionSnapshot) Apply() ProgressionState {
	p := defaultProgression()
	if ps.Level != nil && *ps.Level >= 0 {
		p.Level = *ps.Level
	}
	if ps.Experience != nil && finite(*ps.Experience) && *ps.Experience >= 0 {
		p.Experience = *ps.Experience
	}
	if ps.RunCount != nil && *ps.RunCount >= 1 {
		p.RunCount = *ps.RunCount
	}
	if ps.SpeedMultiplier != nil && finite(*ps.SpeedMultiplier) && *ps.SpeedMultiplier >= 1 {
		p.SpeedMultiplier = *ps.SpeedMultiplier
	}
	if ps.MitigationChance != nil && finite(*ps.MitigationChance) && *ps.MitigationChance >= 0 && *ps.MitigationChance <= 100 {
		p.MitigationChance = *ps.MitigationChance
	}
	if ps.PersonalBest != nil && finite(*ps.PersonalBest) && *ps.PersonalBest >= 0 && *ps.PersonalBest < parameter.MaxHeight {
		p.PersonalBest = *ps.PersonalBest
	}
	for _, id := range ps.Unlocked {
		if knownCosmetic(id) && !p.HasUnlocked(id) {
			p.Unlocked = append(p.Unlocked, id)
		}
	}
	return p
}

// Encode serializes the snapshot as JSON
func (ps ProgressionSnapshot) Encode() ([]byte, error) {
	return json.Marshal(ps)
}

// DecodeProgression parses stored JSON one field at a time
// A malformed field is dropped without affecting the others; a malformed document yields an empty snapshot
func DecodeProgression(data []byte) ProgressionSnapshot {
	var fields map[string]json.RawMessage
	var ps ProgressionSnapshot
	if err := json.Unmarshal(data, &fields); err != nil {
		return ps
	}
	ps.Level = decodeField[int](fields, "level")
	ps.Experience = decodeField[float64](fields, "experience")
	ps.RunCount = decodeField[int](fields, "run_count")
	ps.SpeedMultiplier = decodeField[float64](fields, "speed_multiplier")
	ps.MitigationChance = decodeField[float64](fields, "mitigation_chance")
	ps.PersonalBest = decodeField[float64](fields, "personal_best")
	if u := decodeField[[]string](fields, "unlocked"); u != nil {
		ps.Unlocked = *u
	}
	return ps
}

func decodeField[T any](fields map[string]json.RawMessage, key string) *T {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Progression returns the persistable state
func (s *Simulation) Progression() ProgressionSnapshot {
	return snapshotOf(s.prog)
}

// Restore replaces the progression with a saved one, nil keeps the current state
// The current run is resized to the restored level and refilled
func (s *Simulation) Restore(ps *ProgressionSnapshot) {
	if ps == nil {
		return
	}
	s.prog = ps.Apply()
	if !s.cfg.reachable(s.prog.Level) {
		s.prog.Level = defaultProgression().Level
	}
	s.setCapacity(s.cfg.MaxEnduranceFor(s.prog.Level))
	s.run.Refill()
}
