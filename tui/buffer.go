package tui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ScreenWriter is the part of tcell.Screen a Buffer flushes into
type ScreenWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Cell is one composed screen position
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var blankCell = Cell{Rune: ' ', Style: styleBase}

// staleCell never equals a drawn cell, forcing a rewrite after resize
var staleCell = Cell{Rune: -1}

// Buffer is a frame compositor with dirty tracking against the last flushed frame
type Buffer struct {
	cells  []Cell
	shown  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions and invalidates the shown frame
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.shown = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
		b.shown = b.shown[:size]
	}
	b.width = width
	b.height = height
	for i := range b.shown {
		b.shown[i] = staleCell
	}
	b.Clear()
}

// Clear resets every cell to blank
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = blankCell
	}
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes one cell, ignoring out-of-bounds positions
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at x, y; blank when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return blankCell
	}
	return b.cells[y*b.width+x]
}

// Text writes s from x, clipped at maxX (exclusive), and returns the next column
func (b *Buffer) Text(x, y, maxX int, s string, style tcell.Style) int {
	if maxX > b.width {
		maxX = b.width
	}
	for len(s) > 0 && x < maxX {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		b.Set(x, y, r, style)
		x++
	}
	return x
}

// Fill writes r over w cells starting at x
func (b *Buffer) Fill(x, y, w int, r rune, style tcell.Style) {
	for i := 0; i < w; i++ {
		b.Set(x+i, y, r, style)
	}
}

// Flush writes cells that changed since the previous flush, then shows the screen
// Returns the number of cells written
func (b *Buffer) Flush(screen ScreenWriter) int {
	written := 0
	for i, c := range b.cells {
		if c == b.shown[i] {
			continue
		}
		screen.SetContent(i%b.width, i/b.width, c.Rune, nil, c.Style)
		b.shown[i] = c
		written++
	}
	screen.Show()
	return written
}
