package parameter

// Narrative pool sizes; the simulation picks an index, the narrative package owns the text
const (
	RecoveryLines    = 5
	NearGoalLines    = 5
	MitigationLines  = 3
	SpeedLines       = 3
	ResetLines       = 3
	BlessingLines    = 3
	MomentumLines    = 3
	SlipperyLines    = 3
	GraceLines       = 3
	SurgeLines       = 3
	MalfunctionLines = 3
)
