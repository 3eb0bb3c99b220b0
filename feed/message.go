package feed

import (
	"encoding/json"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/narrative"
	"github.com/lixenwraith/sisyphus/sim"
)

// Outgoing message kinds
const (
	KindSnapshot = "snapshot"
	KindEvent    = "event"
	KindError    = "error"
)

// Message is one outgoing frame
type Message struct {
	Kind     string        `json:"kind"`
	Snapshot *sim.Snapshot `json:"snapshot,omitempty"`
	Event    *EventPayload `json:"event,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// EventPayload is a GameEvent with names resolved and its narrative line attached
type EventPayload struct {
	Type  string  `json:"type"`
	Index int     `json:"index"`
	Value float64 `json:"value"`
	Cue   string  `json:"cue,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Command is one incoming frame
type Command struct {
	Action  string `json:"action"`
	Upgrade string `json:"upgrade,omitempty"`
}

// Command actions
// Resets are terminal-only: the feed is unauthenticated and must not wipe saved progression
const (
	ActionPush    = "push"
	ActionHold    = "hold"
	ActionRelease = "release"
	ActionUpgrade = "upgrade"
)

func encodeEvent(ev event.GameEvent) ([]byte, error) {
	p := &EventPayload{
		Type:  ev.Type.String(),
		Index: ev.Index,
		Value: ev.Value,
	}
	if ev.Cue != event.CueNone {
		p.Cue = ev.Cue.String()
	}
	if text, ok := narrative.Line(ev); ok {
		p.Text = text
	}
	return json.Marshal(Message{Kind: KindEvent, Event: p})
}

func encodeSnapshot(snap sim.Snapshot) ([]byte, error) {
	return json.Marshal(Message{Kind: KindSnapshot, Snapshot: &snap})
}

func encodeError(msg string) []byte {
	data, _ := json.Marshal(Message{Kind: KindError, Error: msg})
	return data
}

// parseUpgrade maps a wire name to an upgrade kind
func parseUpgrade(name string) (sim.Upgrade, bool) {
	switch name {
	case sim.UpgradeMitigation.String():
		return sim.UpgradeMitigation, true
	case sim.UpgradeSpeed.String():
		return sim.UpgradeSpeed, true
	}
	return 0, false
}

// toCommand turns a decoded frame into a simulation mutation
func (c Command) toCommand() (func(*sim.Simulation), error) {
	switch c.Action {
	case ActionPush:
		return func(s *sim.Simulation) { s.Push() }, nil
	case ActionHold:
		return func(s *sim.Simulation) { s.Hold(true) }, nil
	case ActionRelease:
		return func(s *sim.Simulation) { s.Hold(false) }, nil
	case ActionUpgrade:
		kind, ok := parseUpgrade(c.Upgrade)
		if !ok {
			return nil, errUnknownUpgrade
		}
		return func(s *sim.Simulation) { s.SpendLevel(kind) }, nil
	}
	return nil, errUnknownAction
}
