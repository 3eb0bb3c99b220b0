package parameter

// Experience & Levels
const (
	// XPPerPush is experience granted by every accepted push
	XPPerPush = 0.5

	// XPLevelBase and XPLevelScale define threshold(level) = floor(base * scale^(level-1))
	XPLevelBase  = 25.0
	XPLevelScale = 1.3

	// EnduranceBase and EndurancePerLevel define maxEndurance = base + level*perLevel
	EnduranceBase     = 100.0
	EndurancePerLevel = 10.0

	// StartLevel is the level of a fresh progression
	StartLevel = 1
)

// Upgrades
const (
	// MitigationCost in levels buys MitigationStep percentage points
	MitigationCost = 1
	MitigationStep = 10.0
	MitigationCap  = 80.0

	// SpeedCost in levels buys SpeedStep of global speed multiplier
	SpeedCost = 2
	SpeedStep = 0.25
)

// Cosmetic unlock thresholds
const (
	WarriorLevel = 5
	TitanLevel   = 15
	SpectralBest = 200.0
	CursedBest   = 400.0
)
