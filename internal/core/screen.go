package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a fixed-size grid of cells the arena draws into each frame.
// The platform layer turns it into terminal output. Cells are stored row
// by row in one slice.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a blank screen of the given size. Negative sizes are
// treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.reshape(width, height)
	return s
}

func (s *Screen) reshape(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// row returns the cells of line y. y must be inside the screen.
func (s *Screen) row(y int) []Cell {
	return s.cells[y*s.width : (y+1)*s.width]
}

// Width and Height return the size in cells.
func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions. The top-left area that fits both the old
// and new size keeps its content.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	old := *s
	s.reshape(width, height)

	keepW := min(old.width, s.width)
	for y := range min(old.height, s.height) {
		copy(s.row(y)[:keepW], old.row(y)[:keepW])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set draws r in the default color. Positions off the screen are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored draws r in color c. Positions off the screen are ignored.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at (x, y), or a space off the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell off the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blankCell
	}
	return s.cells[y*s.width+x]
}

// DrawText writes text in the default color starting at (x, y), one
// cell per rune. Whatever falls off the screen is clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored is DrawText in color c.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centered on line y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.width-utf8.RuneCountInString(text))/2, y, text)
}

// DrawBox outlines a w by h rectangle with box-drawing runes.
func (s *Screen) DrawBox(x, y, w, h int, c Color) {
	right, bottom := x+w-1, y+h-1

	for i := x + 1; i < right; i++ {
		s.SetColored(i, y, '─', c)
		s.SetColored(i, bottom, '─', c)
	}
	for j := y + 1; j < bottom; j++ {
		s.SetColored(x, j, '│', c)
		s.SetColored(right, j, '│', c)
	}

	s.SetColored(x, y, '┌', c)
	s.SetColored(right, y, '┐', c)
	s.SetColored(x, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// String returns the screen as plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := range s.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.row(y) {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// Row returns line y as plain text. Lines off the screen are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.row(y) {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
