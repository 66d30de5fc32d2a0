// Package vtui is a retained-mode terminal UI engine: components declare how
// they draw, what events they listen for and which children they have, and
// the engine keeps the resulting tree, lays it out, renders it and routes
// input through it.
package vtui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Attribute is a set of text attributes.
type Attribute uint8

const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// Has reports whether a contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// ColorMode says how a Color is encoded.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default
	Color16                       // basic 16 colors (0-15)
	Color256                      // 256 color palette
	ColorRGB                      // 24-bit
)

// Color is a terminal color.
type Color struct {
	Mode    ColorMode
	R, G, B uint8 // ColorRGB
	Index   uint8 // Color16, Color256
}

// BasicColor returns one of the 16 basic colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack = BasicColor(8)
	BrightRed   = BasicColor(9)
	BrightCyan  = BasicColor(14)
	BrightWhite = BasicColor(15)
)

// lipgloss returns the color in lipgloss form, or false for the default.
func (c Color) lipgloss() (lipgloss.TerminalColor, bool) {
	switch c.Mode {
	case Color16, Color256:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	case ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}
	return nil, false
}

// Style is the foreground, background and attributes of a cell.
// The zero Style is the terminal default.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// Foreground returns s with foreground c.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns s with background c.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns s with bold set.
func (s Style) Bold() Style {
	s.Attr |= AttrBold
	return s
}

// Inverse returns s with inverse set.
func (s Style) Inverse() Style {
	s.Attr |= AttrInverse
	return s
}

// Dim returns s with dim set.
func (s Style) Dim() Style {
	s.Attr |= AttrDim
	return s
}

// lipgloss converts s for rendering through lipgloss.
func (s Style) lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if c, ok := s.FG.lipgloss(); ok {
		ls = ls.Foreground(c)
	}
	if c, ok := s.BG.lipgloss(); ok {
		ls = ls.Background(c)
	}
	if s.Attr.Has(AttrBold) {
		ls = ls.Bold(true)
	}
	if s.Attr.Has(AttrDim) {
		ls = ls.Faint(true)
	}
	if s.Attr.Has(AttrItalic) {
		ls = ls.Italic(true)
	}
	if s.Attr.Has(AttrUnderline) {
		ls = ls.Underline(true)
	}
	if s.Attr.Has(AttrBlink) {
		ls = ls.Blink(true)
	}
	if s.Attr.Has(AttrInverse) {
		ls = ls.Reverse(true)
	}
	if s.Attr.Has(AttrStrikethrough) {
		ls = ls.Strikethrough(true)
	}
	return ls
}

// Cell is one character cell. A Rune of 0 marks the second column of a
// wide character.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// NewCell returns a cell holding r in style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}
