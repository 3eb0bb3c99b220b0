package sim

import "github.com/lixenwraith/sisyphus/parameter"

// drainFor resolves the endurance cost of one manual push and consumes the modifier that decided it
// Exactly one branch applies: no-drain, then triple-drain, then the mitigation roll
func drainFor(mods *Modifiers, base, mitigation float64, rng Rand) (amount float64, mitigated bool) {
	switch {
	case mods.NoDrain > 0:
		mods.NoDrain--
		return 0, false
	case mods.TripleDrain > 0:
		mods.TripleDrain--
		return base * parameter.SlipperyFactor, false
	case rng.Float64()*100 >= mitigation:
		return base, false
	default:
		return 0, true
	}
}

// consumeSurge counts down the double-power modifier after a push
// The multiplier falls back to 1 once the last surged push is spent
func consumeSurge(mods *Modifiers) {
	if mods.Surge > 0 {
		mods.Surge--
	}
	if mods.Surge == 0 {
		mods.PushMultiplier = 1
	}
}
