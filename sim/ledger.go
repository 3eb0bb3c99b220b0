package sim

import "math"

// Ledger owns height and endurance and is the only place either changes
// Every mutator clamps, so no caller ever sees an out-of-bound value
type Ledger struct {
	height       float64
	endurance    float64
	maxEndurance float64
	ceiling      float64
}

func newLedger(ceiling, maxEndurance float64) Ledger {
	return Ledger{
		endurance:    maxEndurance,
		maxEndurance: maxEndurance,
		ceiling:      ceiling,
	}
}

func (l *Ledger) Height() float64       { return l.height }
func (l *Ledger) Endurance() float64    { return l.endurance }
func (l *Ledger) MaxEndurance() float64 { return l.maxEndurance }

// ApplyPush raises height by amount and returns the height actually gained
func (l *Ledger) ApplyPush(amount float64) float64 {
	before := l.height
	l.height = clamp(l.height+amount, 0, l.ceiling)
	return l.height - before
}

// ApplyDecay lowers height by amount and returns the height actually lost
func (l *Ledger) ApplyDecay(amount float64) float64 {
	before := l.height
	l.height = clamp(l.height-amount, 0, l.ceiling)
	return before - l.height
}

// Ground drops height to zero and returns what was lost
func (l *Ledger) Ground() float64 {
	lost := l.height
	l.height = 0
	return lost
}

// ApplyDrain spends endurance
func (l *Ledger) ApplyDrain(amount float64) {
	l.endurance = clamp(l.endurance-amount, 0, l.maxEndurance)
}

// Restore adds endurance up to the maximum
func (l *Ledger) Restore(amount float64) {
	l.endurance = clamp(l.endurance+amount, 0, l.maxEndurance)
}

// Refill sets endurance to the maximum
func (l *Ledger) Refill() {
	l.endurance = l.maxEndurance
}

// Exhaust forces endurance to zero
func (l *Ledger) Exhaust() {
	l.endurance = 0
}

// SetMaxEndurance changes capacity and pulls endurance inside it
func (l *Ledger) SetMaxEndurance(max float64) {
	if max < 0 || math.IsNaN(max) {
		max = 0
	}
	l.maxEndurance = max
	l.endurance = clamp(l.endurance, 0, max)
}

// Full reports whether endurance is at capacity
func (l *Ledger) Full() bool {
	return l.endurance >= l.maxEndurance
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
