package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sisyphus/parameter"
	"github.com/lixenwraith/sisyphus/sim"
)

// headerRenderer draws the title row
type headerRenderer struct{}

func (headerRenderer) Render(v *View, buf *Buffer) {
	w, _ := buf.Size()
	buf.Fill(0, rowHeader, w, ' ', styleTitle)
	x := buf.Text(1, rowHeader, w, "SISYPHUS", styleTitle)
	x = buf.Text(x+2, rowHeader, w, fmt.Sprintf("run #%d", v.Snap.RunCount), styleDim)

	right := v.Username
	if v.Muted {
		right += "  [muted]"
	}
	start := w - len([]rune(right)) - 1
	if start > x+1 {
		buf.Text(start, rowHeader, w, right, styleBase)
	}
}

// hillRenderer draws the slope, the boulder and milestone ticks
type hillRenderer struct{}

func (hillRenderer) IsVisible(_ *View, buf *Buffer) bool {
	_, h := buf.Size()
	return mainWidth(buf) >= parameter.HillMinWidth && h > rowHillScale
}

// slopeRow is the row of the hill surface at column x of a width-wide hill
func slopeRow(x, width int) int {
	if width <= 1 {
		return rowHillTop + hillRows - 1
	}
	return rowHillTop + hillRows - 1 - x*(hillRows-1)/(width-1)
}

// heightColumn maps a height onto the hill
func heightColumn(height float64, width int) int {
	col := int(math.Round(height / parameter.MaxHeight * float64(width-1)))
	if col < 0 {
		return 0
	}
	if col > width-1 {
		return width - 1
	}
	return col
}

func (hillRenderer) Render(v *View, buf *Buffer) {
	width := mainWidth(buf)
	for x := 0; x < width; x++ {
		top := slopeRow(x, width)
		buf.Set(x, top, '/', styleHill)
		for y := top + 1; y < rowHillTop+hillRows; y++ {
			buf.Set(x, y, '.', styleHill)
		}
	}
	buf.Set(width-1, slopeRow(width-1, width)-1, '^', styleSummit)

	for _, m := range parameter.Milestones {
		col := heightColumn(m, width)
		buf.Set(col, rowHillScale, '|', styleDim)
		buf.Text(col+1, rowHillScale, width, fmt.Sprintf("%.0f", m), styleDim)
	}

	bx := heightColumn(v.Snap.Height, width)
	buf.Set(bx, slopeRow(bx, width)-1, 'O', styleBoulder)
}

// statsRenderer draws endurance, progression and active modifiers
type statsRenderer struct{}

func bar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

func (statsRenderer) Render(v *View, buf *Buffer) {
	s := &v.Snap
	width := mainWidth(buf)

	frac := 0.0
	if s.MaxEndurance > 0 {
		frac = s.Endurance / s.MaxEndurance
	}
	x := buf.Text(1, rowStats, width, "Endurance ", styleBase)
	x = buf.Text(x, rowStats, width, "["+bar(frac, 20)+"]", enduranceStyle(frac))
	buf.Text(x+1, rowStats, width, fmt.Sprintf("%.0f/%.0f", s.Endurance, s.MaxEndurance), styleBase)

	buf.Text(1, rowStats+1, width, fmt.Sprintf("Height %.1f ft   Level %d   XP %.1f/%.0f",
		s.Height, s.Level, s.Experience, s.NextLevelAt), styleBase)
	buf.Text(1, rowStats+2, width, fmt.Sprintf("Speed x%.2f   Mitigation %.0f%%   Best %.0f ft",
		s.SpeedMultiplier, s.MitigationChance, s.PersonalBest), styleBase)

	x = buf.Text(1, rowStats+3, width, phaseLabel(s), styleDim)
	for _, m := range modifierTags(s.Modifiers) {
		x = buf.Text(x+2, rowStats+3, width, m.text, m.style)
	}
	if len(s.Unlocked) > 0 {
		buf.Text(x+2, rowStats+3, width, "["+strings.Join(s.Unlocked, ",")+"]", styleTitle)
	}
}

func phaseLabel(s *sim.Snapshot) string {
	label := s.PhaseName
	if s.Holding {
		label += " (holding)"
	}
	return label
}

type tag struct {
	text  string
	style tcell.Style
}

func modifierTags(m sim.Modifiers) []tag {
	var tags []tag
	if m.NoDrain > 0 {
		tags = append(tags, tag{fmt.Sprintf("blessed %d", m.NoDrain), styleBlessed})
	}
	if m.Surge > 0 {
		tags = append(tags, tag{fmt.Sprintf("surge x%.0f %d", m.PushMultiplier, m.Surge), styleBlessed})
	}
	if m.TripleDrain > 0 {
		tags = append(tags, tag{fmt.Sprintf("slippery %d", m.TripleDrain), styleCursed})
	}
	if m.AutoPush > 0 {
		tags = append(tags, tag{fmt.Sprintf("momentum %d", m.AutoPush), styleCursed})
	}
	return tags
}

// logRenderer draws the newest narrative lines that fit, newest last
type logRenderer struct{}

func (logRenderer) IsVisible(v *View, buf *Buffer) bool {
	_, h := buf.Size()
	return len(v.Lines) > 0 && h-1 > rowLog
}

func (logRenderer) Render(v *View, buf *Buffer) {
	_, h := buf.Size()
	width := mainWidth(buf)
	rows := h - 1 - rowLog
	lines := v.Lines
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, line := range lines {
		style := styleDim
		if i == len(lines)-1 {
			style = styleBase
		}
		buf.Text(1, rowLog+i, width, line, style)
	}
}

// boardRenderer draws the leaderboard column
type boardRenderer struct{}

func (boardRenderer) IsVisible(_ *View, buf *Buffer) bool {
	return sideVisible(buf)
}

func (boardRenderer) Render(v *View, buf *Buffer) {
	w, h := buf.Size()
	x0 := w - parameter.SidePanelWidth
	for y := rowHillTop; y < h-1; y++ {
		buf.Set(x0-1, y, '|', styleDim)
	}
	buf.Text(x0+1, rowHillTop, w, "LEADERBOARD", styleTitle)
	if len(v.Board) == 0 {
		buf.Text(x0+1, rowHillTop+2, w, "no records yet", styleDim)
		return
	}
	for i, e := range v.Board {
		y := rowHillTop + 2 + i
		if y >= h-1 {
			break
		}
		style := styleBase
		if e.Name == v.Username {
			style = styleTitle
		}
		name := e.Name
		if len([]rune(name)) > 12 {
			name = string([]rune(name)[:12])
		}
		buf.Text(x0+1, y, w, fmt.Sprintf("%2d. %-12s %4.0f L%d", i+1, name, e.Height, e.Level), style)
	}
}

// bannerRenderer overlays the run-ended and recovery states on the hill
type bannerRenderer struct{}

func (bannerRenderer) IsVisible(v *View, buf *Buffer) bool {
	return v.Snap.Phase != sim.PhaseAscending && mainWidth(buf) >= parameter.HillMinWidth
}

func (bannerRenderer) Render(v *View, buf *Buffer) {
	text, style := banner(&v.Snap)
	width := mainWidth(buf)
	if len(text) > width-2 {
		text = text[:width-2]
	}
	x := (width - len(text) - 2) / 2
	y := rowHillTop + 1
	buf.Fill(x, y, len(text)+2, ' ', style)
	buf.Text(x+1, y, width, text, style)
}

func banner(s *sim.Snapshot) (string, tcell.Style) {
	switch s.Phase {
	case sim.PhaseRecovering:
		frac := 0.0
		if s.MaxEndurance > 0 {
			frac = s.Endurance / s.MaxEndurance
		}
		return "RECOVERING [" + bar(frac, 10) + "]", styleBase.Background(RgbRecoverBg)
	case sim.PhaseForced:
		return "THE SUMMIT REFUSES YOU", styleCursed.Background(RgbBannerBg).Bold(true)
	case sim.PhaseCollapsed:
		return "YOUR STRENGTH FAILS", styleCursed.Background(RgbBannerBg).Bold(true)
	}
	return "", styleBase
}

// helpRenderer draws the key legend on the last row
type helpRenderer struct{}

const helpText = "space push  h hold  m mitigation  s speed  r reset  ^R reset all  ^S mute  q quit"

func (helpRenderer) Render(_ *View, buf *Buffer) {
	w, h := buf.Size()
	if h < 2 {
		return
	}
	buf.Text(1, h-1, w, helpText, styleDim)
}
