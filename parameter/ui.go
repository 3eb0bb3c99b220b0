package parameter

import "time"

// UI Layout
const (
	// LogLines is the narrative history kept by the terminal UI
	LogLines = 12

	// LeaderboardSize is the number of leaderboard rows queried and shown
	LeaderboardSize = 10

	// HillMinWidth is the narrowest hill bar drawn
	HillMinWidth = 20

	// SidePanelWidth is the leaderboard column; hidden below SidePanelMinScreen columns
	SidePanelWidth     = 28
	SidePanelMinScreen = 64
)

// UI Timing
const (
	// FrameUpdateInterval is the redraw period, independent of the simulation tick
	FrameUpdateInterval = 33 * time.Millisecond

	// LeaderboardRefresh is how often the top list is re-read from storage
	LeaderboardRefresh = 5 * time.Second
)
