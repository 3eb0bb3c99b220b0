package sim

import (
	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/parameter"
)

// Cosmetic is an unlockable look, earned by level or by personal best
type Cosmetic struct {
	ID    string
	Level int
	Best  float64
}

// Cosmetics is the unlock table; EventUnlock carries the slot index
var Cosmetics = [...]Cosmetic{
	{ID: "warrior", Level: parameter.WarriorLevel},
	{ID: "spectral", Best: parameter.SpectralBest},
	{ID: "titan", Level: parameter.TitanLevel},
	{ID: "cursed", Best: parameter.CursedBest},
}

func (c Cosmetic) earned(p *ProgressionState) bool {
	if c.Level > 0 && p.Level >= c.Level {
		return true
	}
	return c.Best > 0 && p.PersonalBest >= c.Best
}

// checkUnlocks grants every newly earned cosmetic; unlocks are never revoked
func (s *Simulation) checkUnlocks() {
	for i, c := range Cosmetics {
		if s.prog.HasUnlocked(c.ID) || !c.earned(&s.prog) {
			continue
		}
		s.prog.Unlocked = append(s.prog.Unlocked, c.ID)
		s.emit(event.EventUnlock, i, 0)
	}
}

func knownCosmetic(id string) bool {
	for _, c := range Cosmetics {
		if c.ID == id {
			return true
		}
	}
	return false
}
