package vtui

import "github.com/mattn/go-runewidth"

// Widget is anything that can draw itself onto a Canvas.
type Widget interface {
	Draw(c *Canvas)
}

// WidgetFunc adapts a function to Widget.
type WidgetFunc func(c *Canvas)

// Draw calls f(c).
func (f WidgetFunc) Draw(c *Canvas) { f(c) }

// Canvas is a node's view of the shared buffer. Coordinates are relative to
// the node's rect, shifted by the node's content offset. Writes outside the
// node's visible region are dropped.
type Canvas struct {
	buf    *Buffer
	rect   Rect // absolute
	bounds Rect // absolute, writes outside are dropped
	dx, dy int  // origin in buffer coordinates
}

func newCanvas(buf *Buffer, n *node) *Canvas {
	bounds := n.visible().Intersect(Rect{Width: buf.Width(), Height: buf.Height()})
	return &Canvas{
		buf:    buf,
		rect:   n.rect,
		bounds: bounds,
		dx:     n.rect.X - n.attrs.OffsetX,
		dy:     n.rect.Y - n.attrs.OffsetY,
	}
}

// Rect returns the node's rect in screen coordinates.
func (c *Canvas) Rect() Rect {
	return c.rect
}

// Width returns the width of the node's rect.
func (c *Canvas) Width() int {
	return c.rect.Width
}

// Height returns the height of the node's rect.
func (c *Canvas) Height() int {
	return c.rect.Height
}

func (c *Canvas) inBounds(bx, by int) bool {
	return c.bounds.ContainsPoint(bx, by)
}

// Set writes cell at (x, y).
func (c *Canvas) Set(x, y int, cell Cell) {
	bx, by := x+c.dx, y+c.dy
	if c.inBounds(bx, by) {
		c.buf.Set(bx, by, cell)
	}
}

// Text writes s at (x, y) and returns the columns it advanced. Characters
// that don't fit entirely inside the canvas are skipped.
func (c *Canvas) Text(x, y int, s string, style Style) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		bx, by := x+c.dx, y+c.dy
		if c.inBounds(bx, by) && c.inBounds(bx+w-1, by) {
			c.buf.Set(bx, by, NewCell(r, style))
			if w == 2 {
				c.buf.Set(bx+1, by, Cell{Style: style})
			}
		}
		x += w
	}
	return x - start
}

// Fill paints every visible cell of the canvas with cell.
func (c *Canvas) Fill(cell Cell) {
	for by := c.bounds.Y; by < c.bounds.Bottom(); by++ {
		for bx := c.bounds.X; bx < c.bounds.Right(); bx++ {
			c.buf.Set(bx, by, cell)
		}
	}
}

// Border draws a border along the edge of the node's rect. It is not
// affected by the content offset.
func (c *Canvas) Border(border BorderStyle, style Style) {
	r := c.rect
	if r.Width < 2 || r.Height < 2 {
		return
	}
	set := func(bx, by int, ch rune) {
		if c.inBounds(bx, by) {
			c.buf.Set(bx, by, NewCell(ch, style))
		}
	}
	set(r.X, r.Y, border.TopLeft)
	set(r.Right()-1, r.Y, border.TopRight)
	set(r.X, r.Bottom()-1, border.BottomLeft)
	set(r.Right()-1, r.Bottom()-1, border.BottomRight)
	for x := r.X + 1; x < r.Right()-1; x++ {
		set(x, r.Y, border.Horizontal)
		set(x, r.Bottom()-1, border.Horizontal)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		set(r.X, y, border.Vertical)
		set(r.Right()-1, y, border.Vertical)
	}
}

// Sub returns a canvas for area, given in this canvas's coordinates. The
// sub-canvas never writes outside this one.
func (c *Canvas) Sub(area Rect) *Canvas {
	abs := area.Offset(c.dx, c.dy)
	return &Canvas{
		buf:    c.buf,
		rect:   abs,
		bounds: abs.Intersect(c.bounds),
		dx:     abs.X,
		dy:     abs.Y,
	}
}

// Widget draws w into area.
func (c *Canvas) Widget(w Widget, area Rect) {
	w.Draw(c.Sub(area))
}
