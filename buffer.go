package vtui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Buffer is a grid of cells. Draw callbacks write to it through a Canvas;
// drivers read it back out.
type Buffer struct {
	cells  []Cell
	width  int
	height int
	dirty  []bool // rows written since ClearDirty
}

// NewBuffer returns a blank buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at (x, y), or an empty cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set writes c at (x, y). Out of bounds writes are dropped. Box drawing
// characters merge with box drawing characters already in the cell.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	idx := b.index(x, y)
	if merged, ok := mergeBorders(b.cells[idx].Rune, c.Rune); ok {
		c.Rune = merged
	}
	b.cells[idx] = c
	b.dirty[y] = true
}

// put writes c at (x, y) as is.
func (b *Buffer) put(x, y int, c Cell) {
	if b.InBounds(x, y) {
		b.cells[b.index(x, y)] = c
		b.dirty[y] = true
	}
}

// Clear blanks every cell.
func (b *Buffer) Clear() {
	empty := EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
	for y := range b.dirty {
		b.dirty[y] = true
	}
}

// RowDirty reports whether row y was written since the last ClearDirty.
func (b *Buffer) RowDirty(y int) bool {
	return y >= 0 && y < b.height && b.dirty[y]
}

// ClearDirty resets the dirty row flags.
func (b *Buffer) ClearDirty() {
	for y := range b.dirty {
		b.dirty[y] = false
	}
}

// WriteString writes s starting at (x, y) and returns the number of columns
// used. Wide characters take two columns; the second holds a Rune of 0.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > b.width {
			break
		}
		b.Set(x, y, NewCell(r, style))
		if w == 2 {
			b.Set(x+1, y, Cell{Style: style})
		}
		x += w
	}
	return x - start
}

// Box drawing characters.
const (
	BoxHorizontal         = '─'
	BoxVertical           = '│'
	BoxTopLeft            = '┌'
	BoxTopRight           = '┐'
	BoxBottomLeft         = '└'
	BoxBottomRight        = '┘'
	BoxRoundedTopLeft     = '╭'
	BoxRoundedTopRight    = '╮'
	BoxRoundedBottomLeft  = '╰'
	BoxRoundedBottomRight = '╯'
	BoxTeeDown            = '┬'
	BoxTeeUp              = '┴'
	BoxTeeRight           = '├'
	BoxTeeLeft            = '┤'
	BoxCross              = '┼'
)

// borderEdges maps box characters to the edges they touch.
// Bits: 1=top, 2=right, 4=bottom, 8=left.
var borderEdges = map[rune]uint8{
	BoxHorizontal:         0b1010,
	BoxVertical:           0b0101,
	BoxTopLeft:            0b0110,
	BoxTopRight:           0b1100,
	BoxBottomLeft:         0b0011,
	BoxBottomRight:        0b1001,
	BoxTeeDown:            0b1110,
	BoxTeeUp:              0b1011,
	BoxTeeRight:           0b0111,
	BoxTeeLeft:            0b1101,
	BoxCross:              0b1111,
	BoxRoundedTopLeft:     0b0110,
	BoxRoundedTopRight:    0b1100,
	BoxRoundedBottomLeft:  0b0011,
	BoxRoundedBottomRight: 0b1001,
}

var edgesToBorder = map[uint8]rune{
	0b1010: BoxHorizontal,
	0b0101: BoxVertical,
	0b0110: BoxTopLeft,
	0b1100: BoxTopRight,
	0b0011: BoxBottomLeft,
	0b1001: BoxBottomRight,
	0b1110: BoxTeeDown,
	0b1011: BoxTeeUp,
	0b0111: BoxTeeRight,
	0b1101: BoxTeeLeft,
	0b1111: BoxCross,
}

// mergeBorders joins two box characters, e.g. a corner drawn over a line
// becomes a tee.
func mergeBorders(existing, next rune) (rune, bool) {
	a, ok1 := borderEdges[existing]
	b, ok2 := borderEdges[next]
	if !ok1 || !ok2 {
		return next, false
	}
	if r, ok := edgesToBorder[a|b]; ok {
		return r, true
	}
	return next, false
}

// BorderStyle is the set of characters a border is drawn with.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

var (
	BorderSingle = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxTopLeft,
		TopRight:    BoxTopRight,
		BottomLeft:  BoxBottomLeft,
		BottomRight: BoxBottomRight,
	}
	BorderRounded = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxRoundedTopLeft,
		TopRight:    BoxRoundedTopRight,
		BottomLeft:  BoxRoundedBottomLeft,
		BottomRight: BoxRoundedBottomRight,
	}
)

// Line returns row y as text with trailing blanks removed.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		r := b.cells[b.index(x, y)].Rune
		if r == 0 {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the buffer as text, one line per row, trailing blanks and
// trailing empty rows removed.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Render returns the buffer as styled text, rows joined by newlines. Runs of
// equally styled cells are rendered with lipgloss.
func (b *Buffer) Render() string {
	lines := make([]string, b.height)
	var run strings.Builder
	for y := 0; y < b.height; y++ {
		var line strings.Builder
		var style Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style == (Style{}) {
				line.WriteString(run.String())
			} else {
				line.WriteString(style.lipgloss().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < b.width; x++ {
			c := b.cells[b.index(x, y)]
			if c.Rune == 0 {
				continue
			}
			if c.Style != style {
				flush()
				style = c.Style
			}
			run.WriteRune(c.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// Resize changes the buffer size, keeping what fits. The whole buffer is
// marked dirty.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == b.width && height == b.height && b.cells != nil {
		return
	}
	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	for y := 0; y < min(height, b.height); y++ {
		for x := 0; x < min(width, b.width); x++ {
			cells[y*width+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = cells
	b.width = width
	b.height = height
	b.dirty = make([]bool, height)
	for y := range b.dirty {
		b.dirty[y] = true
	}
}
