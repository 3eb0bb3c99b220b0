// Package narrative turns simulation events into log text
// The simulation only picks indices; every word the player reads lives here
package narrative

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/lixenwraith/sisyphus/event"
)

// Line renders ev, false for events without text
func Line(ev event.GameEvent) (string, bool) {
	switch ev.Type {
	case event.EventRunStarted:
		return pick(recoveryLines[:], ev.Index), true
	case event.EventStrengthFails:
		return "Your strength fails.", true
	case event.EventPersonalBest:
		return fmt.Sprintf("New personal record! %.0f ft.", ev.Value), true
	case event.EventNearGoal:
		return pick(nearGoalLines[:], ev.Index), true
	case event.EventRecoveryStarted:
		return "The boulder rests at the bottom. So do you.", true
	case event.EventMilestone:
		return pick(milestoneLines[:], ev.Index), true
	case event.EventLevelUp:
		return fmt.Sprintf("Level %.0f", ev.Value), true
	case event.EventUpgradeMitigation:
		return pick(mitigationLines[:], ev.Index), true
	case event.EventUpgradeSpeed:
		return pick(speedLines[:], ev.Index), true
	case event.EventUpgradeRejected:
		kind := int(ev.Value)
		if kind < 0 || kind >= len(rejectLines) {
			kind = 0
		}
		return pick(rejectLines[kind][:], ev.Index), true
	case event.EventUnlock:
		return fmt.Sprintf("Unlocked: %s", pick(cosmeticNames[:], ev.Index)), true
	case event.EventResetAll:
		return pick(resetLines[:], ev.Index), true
	case event.EventDivinePunishment:
		return "The gods laugh at your hubris and cast you down!", true
	case event.EventBlessing:
		return format(blessingLines[:], ev), true
	case event.EventMomentum:
		return format(momentumLines[:], ev), true
	case event.EventSlippery:
		return format(slipperyLines[:], ev), true
	case event.EventGrace:
		return format(graceLines[:], ev), true
	case event.EventSurge:
		return format(surgeLines[:], ev), true
	case event.EventMalfunction:
		return format(malfunctionLines[:], ev), true
	}
	return "", false
}

// TextTypes lists every event type Line renders
func TextTypes() []event.EventType {
	types := make([]event.EventType, 0, len(event.AllTypes()))
	for _, t := range event.AllTypes() {
		if _, ok := Line(event.GameEvent{Type: t}); ok {
			types = append(types, t)
		}
	}
	return types
}

func pick(pool []string, i int) string {
	if i < 0 || i >= len(pool) {
		i = 0
	}
	return pool[i]
}

// format fills the value into lines that carry a verb, the others are used verbatim
func format(pool []string, ev event.GameEvent) string {
	line := pick(pool, ev.Index)
	if strings.Contains(line, "%") {
		return fmt.Sprintf(line, ev.Value)
	}
	return line
}

// Logger keeps the most recent narrative lines for display and mirrors them to the log
type Logger struct {
	mu    sync.RWMutex
	lines []string
	size  int
}

// NewLogger creates a logger keeping size lines
func NewLogger(size int) *Logger {
	if size < 1 {
		size = 1
	}
	return &Logger{size: size, lines: make([]string, 0, size)}
}

// HandleEvent implements event.Handler
func (l *Logger) HandleEvent(ev event.GameEvent) {
	line, ok := Line(ev)
	if !ok {
		return
	}
	log.Printf("narrative: tick=%d %s: %s", ev.Tick, ev.Type, line)
	l.Append(line)
}

// EventTypes implements event.Handler
func (l *Logger) EventTypes() []event.EventType {
	return TextTypes()
}

// Append adds a line, dropping the oldest when full
func (l *Logger) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == l.size {
		copy(l.lines, l.lines[1:])
		l.lines = l.lines[:l.size-1]
	}
	l.lines = append(l.lines, line)
}

// Lines returns a copy of the kept lines, oldest first
func (l *Logger) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
