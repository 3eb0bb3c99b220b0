package tui

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground    = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText          = tcell.NewRGBColor(192, 202, 245) // Default text
	RgbDim           = tcell.NewRGBColor(86, 95, 137)   // Secondary text, frames
	RgbTitle         = tcell.NewRGBColor(224, 175, 104) // Header, milestones
	RgbHill          = tcell.NewRGBColor(115, 90, 60)   // Slope behind the boulder
	RgbBoulder       = tcell.NewRGBColor(200, 200, 200) // Boulder glyph
	RgbSummit        = tcell.NewRGBColor(255, 255, 0)   // Unreachable summit marker
	RgbEnduranceOk   = tcell.NewRGBColor(0, 200, 0)
	RgbEnduranceLow  = tcell.NewRGBColor(255, 200, 0)
	RgbEnduranceGone = tcell.NewRGBColor(255, 80, 80)
	RgbBlessed       = tcell.NewRGBColor(100, 150, 255) // Positive modifier
	RgbCursed        = tcell.NewRGBColor(255, 80, 80)   // Negative modifier
	RgbBannerBg      = tcell.NewRGBColor(60, 20, 20)
	RgbRecoverBg     = tcell.NewRGBColor(20, 40, 60)
)

var (
	styleBase    = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	styleDim     = styleBase.Foreground(RgbDim)
	styleTitle   = styleBase.Foreground(RgbTitle).Bold(true)
	styleHill    = styleBase.Foreground(RgbHill)
	styleBoulder = styleBase.Foreground(RgbBoulder).Bold(true)
	styleSummit  = styleBase.Foreground(RgbSummit)
	styleBlessed = styleBase.Foreground(RgbBlessed)
	styleCursed  = styleBase.Foreground(RgbCursed)
)

// enduranceStyle colors the bar by remaining fraction
func enduranceStyle(frac float64) tcell.Style {
	switch {
	case frac > 0.5:
		return styleBase.Foreground(RgbEnduranceOk)
	case frac > 0.2:
		return styleBase.Foreground(RgbEnduranceLow)
	default:
		return styleBase.Foreground(RgbEnduranceGone)
	}
}
