package tui

import (
	"github.com/lixenwraith/sisyphus/parameter"
	"github.com/lixenwraith/sisyphus/sim"
)

// BoardEntry is one leaderboard row as drawn
type BoardEntry struct {
	Name   string
	Height float64
	Level  int
}

// View is everything a frame is drawn from, captured once per frame
type View struct {
	Snap     sim.Snapshot
	Lines    []string
	Board    []BoardEntry
	Username string
	Muted    bool
}

// mainWidth is the columns left of the side panel
func mainWidth(buf *Buffer) int {
	w, _ := buf.Size()
	if sideVisible(buf) {
		return w - parameter.SidePanelWidth - 1
	}
	return w
}

func sideVisible(buf *Buffer) bool {
	w, _ := buf.Size()
	return w >= parameter.SidePanelMinScreen
}

// Fixed rows
const (
	rowHeader    = 0
	rowHillTop   = 2
	hillRows     = 8
	rowHillScale = rowHillTop + hillRows
	rowStats     = rowHillScale + 2
	statsRows    = 4
	rowLog       = rowStats + statsRows + 1
)
