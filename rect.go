package vtui

// Rect is a rectangle in logical cell coordinates.
// Coordinates are signed and not clamped to the terminal, so content may
// extend past the viewport in any direction.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect returns a rect at (x, y) with the given size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the first column.
func (r Rect) Left() int { return r.X }

// Right returns the column just past the last one.
func (r Rect) Right() int { return r.X + r.Width }

// Top returns the first row.
func (r Rect) Top() int { return r.Y }

// Bottom returns the row just past the last one.
func (r Rect) Bottom() int { return r.Y + r.Height }

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and o.
// Returns a zero-size rect anchored at r's origin if they don't overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Contains reports whether o lies entirely inside r.
// An empty o is never contained.
func (r Rect) Contains(o Rect) bool {
	if o.IsEmpty() || r.IsEmpty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether the cell at (x, y) lies inside r.
func (r Rect) ContainsPoint(x, y int) bool {
	return r.Contains(Rect{X: x, Y: y, Width: 1, Height: 1})
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset returns r shrunk by the given insets, never below zero size.
func (r Rect) Inset(in Insets) Rect {
	r.X += in.Left
	r.Y += in.Top
	r.Width = max(r.Width-in.Left-in.Right, 0)
	r.Height = max(r.Height-in.Top-in.Bottom, 0)
	return r
}
