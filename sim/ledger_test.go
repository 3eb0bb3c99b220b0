package sim

import (
	"math"
	"testing"
)

// TestLedgerClamps verifies every mutator keeps height and endurance in bounds
func TestLedgerClamps(t *testing.T) {
	l := newLedger(499, 100)

	if gained := l.ApplyPush(600); gained != 499 {
		t.Errorf("Expected push gain clamped to 499, got %f", gained)
	}
	if l.Height() != 499 {
		t.Errorf("Expected height 499, got %f", l.Height())
	}
	if lost := l.ApplyDecay(1000); lost != 499 {
		t.Errorf("Expected decay loss 499, got %f", lost)
	}
	if l.Height() != 0 {
		t.Errorf("Expected height 0, got %f", l.Height())
	}

	l.ApplyDrain(250)
	if l.Endurance() != 0 {
		t.Errorf("Expected endurance 0 after overdrain, got %f", l.Endurance())
	}
	l.Restore(1000)
	if l.Endurance() != 100 || !l.Full() {
		t.Errorf("Expected endurance capped at 100, got %f", l.Endurance())
	}
	l.ApplyDrain(-50)
	if l.Endurance() != 100 {
		t.Errorf("Expected negative drain to stay capped, got %f", l.Endurance())
	}

	l.SetMaxEndurance(40)
	if l.Endurance() != 40 || l.MaxEndurance() != 40 {
		t.Errorf("Expected endurance pulled to new max 40, got %f/%f", l.Endurance(), l.MaxEndurance())
	}
	l.ApplyPush(math.NaN())
	if l.Height() != 0 {
		t.Errorf("Expected NaN push to clamp to 0, got %f", l.Height())
	}

	l.ApplyPush(10)
	if lost := l.Ground(); lost != 10 || l.Height() != 0 {
		t.Errorf("Expected ground to lose 10, got %f (height %f)", lost, l.Height())
	}
	l.Exhaust()
	if l.Endurance() != 0 {
		t.Errorf("Expected exhaust to zero endurance, got %f", l.Endurance())
	}
	l.Refill()
	if l.Endurance() != 40 {
		t.Errorf("Expected refill to 40, got %f", l.Endurance())
	}
}
