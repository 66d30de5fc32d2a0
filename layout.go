package vtui

import (
	"math"
	"sort"
)

// Flow is the axis along which a node stacks its children.
type Flow uint8

const (
	FlowVertical   Flow = iota // children stacked top to bottom
	FlowHorizontal             // children stacked left to right
)

// Placement decides whether children may overflow their parent.
type Placement uint8

const (
	// PlacementOverflow allocates every measure at its full size, even past
	// the end of the parent. Used for scrollable content.
	PlacementOverflow Placement = iota
	// PlacementFit constrains the total to the parent's length. Percent
	// measures share whatever Exact measures leave over.
	PlacementFit
)

// MeasureKind identifies how a Measure sizes its child.
type MeasureKind uint8

const (
	MeasureExact MeasureKind = iota
	MeasurePercent
	MeasureFixed
)

// Measure sizes one child along its parent's flow axis.
type Measure struct {
	Kind   MeasureKind
	Size   int     // Exact: cells
	Weight float64 // Percent: fraction of the axis (Overflow) or share weight (Fit)
	Area   Rect    // Fixed: position and size relative to the parent's origin
}

// Exact sizes a child to n cells.
func Exact(n int) Measure {
	return Measure{Kind: MeasureExact, Size: n}
}

// Percent sizes a child to a fraction of the parent's axis length.
// 1.0 is the full length.
func Percent(p float64) Measure {
	return Measure{Kind: MeasurePercent, Weight: p}
}

// Fixed places a child at an absolute offset from the parent's origin.
// Fixed children take no part in flow allocation.
func Fixed(x, y, width, height int) Measure {
	return Measure{Kind: MeasureFixed, Area: Rect{X: x, Y: y, Width: width, Height: height}}
}

// Insets are per-edge distances used for margin and padding.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Uniform returns insets of n on every edge.
func Uniform(n int) Insets {
	return Insets{Top: n, Right: n, Bottom: n, Left: n}
}

// ComputeSplit divides area among measures along the flow axis.
// The result has one rect per measure, in measure order.
func ComputeSplit(flow Flow, placement Placement, area Rect, measures []Measure) []Rect {
	out := make([]Rect, len(measures))

	axisStart, axisLen := area.Y, area.Height
	if flow == FlowHorizontal {
		axisStart, axisLen = area.X, area.Width
	}

	var sizes []int
	if placement == PlacementFit {
		sizes = fitSizes(axisLen, measures)
	} else {
		sizes = overflowSizes(axisLen, measures)
	}

	cursor := axisStart
	for i, m := range measures {
		if m.Kind == MeasureFixed {
			out[i] = m.Area.Offset(area.X, area.Y)
			continue
		}
		size := sizes[i]
		if flow == FlowHorizontal {
			out[i] = Rect{X: cursor, Y: area.Y, Width: size, Height: area.Height}
		} else {
			out[i] = Rect{X: area.X, Y: cursor, Width: area.Width, Height: size}
		}
		cursor += size
	}
	return out
}

// overflowSizes sizes every flow measure independently of the others.
// The total is not clamped to axisLen.
func overflowSizes(axisLen int, measures []Measure) []int {
	sizes := make([]int, len(measures))
	for i, m := range measures {
		switch m.Kind {
		case MeasureExact:
			sizes[i] = max(m.Size, 0)
		case MeasurePercent:
			sizes[i] = max(int(math.Round(float64(axisLen)*m.Weight)), 0)
		}
	}
	return sizes
}

// fitSizes keeps the total within axisLen. Exact measures are served first,
// in order, each clamped to what is left. Percent measures split the
// remainder by weight using largest-remainder rounding so their sizes sum to
// exactly the remainder.
func fitSizes(axisLen int, measures []Measure) []int {
	sizes := make([]int, len(measures))
	axisLen = max(axisLen, 0)

	used := 0
	totalWeight := 0.0
	for i, m := range measures {
		switch m.Kind {
		case MeasureExact:
			size := min(max(m.Size, 0), axisLen-used)
			sizes[i] = size
			used += size
		case MeasurePercent:
			if m.Weight > 0 {
				totalWeight += m.Weight
			}
		}
	}

	remaining := axisLen - used
	if remaining <= 0 || totalWeight <= 0 {
		return sizes
	}

	type share struct {
		index int
		frac  float64
	}
	var shares []share
	allocated := 0
	for i, m := range measures {
		if m.Kind != MeasurePercent || m.Weight <= 0 {
			continue
		}
		exact := float64(remaining) * m.Weight / totalWeight
		floor := math.Floor(exact)
		sizes[i] = int(floor)
		allocated += sizes[i]
		shares = append(shares, share{index: i, frac: exact - floor})
	}

	// largest fractional part first, ties keep measure order
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].frac > shares[b].frac
	})
	for k := 0; allocated < remaining; k++ {
		sizes[shares[k%len(shares)].index]++
		allocated++
	}
	return sizes
}

// Layout assigns every node a rect, starting with viewport for the root.
// Each node's children split the node's rect (less padding, shifted by the
// node's offset) according to the node's flow and placement. A child's
// margin shrinks the slot it receives. Clipping nodes restrict the visible
// region of their whole subtree.
func (a *Arena) Layout(viewport Rect) {
	root := a.node(a.root)
	root.rect = viewport.Inset(root.attrs.Margin)
	root.clip, root.clipped = Rect{}, false

	stack := []NodeID{a.root}
	measures := make([]Measure, 0, 8)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.node(id)
		if len(n.children) == 0 {
			continue
		}

		area := n.rect.Inset(n.attrs.Padding).Offset(-n.attrs.OffsetX, -n.attrs.OffsetY)

		measures = measures[:0]
		for _, c := range n.children {
			measures = append(measures, a.node(c).measure)
		}
		rects := ComputeSplit(n.attrs.Flow, n.attrs.Placement, area, measures)

		for i, c := range n.children {
			child := a.node(c)
			child.rect = rects[i].Inset(child.attrs.Margin)
			child.clip, child.clipped = n.clip, n.clipped
			if n.attrs.Clipped {
				child.clip = n.content()
				child.clipped = true
			}
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}
