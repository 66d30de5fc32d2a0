package vtui

// SpacerProps configures a Spacer. A zero Size grows to fill the space
// its parent leaves over.
type SpacerProps struct {
	Size int
}

// Spacer is an invisible component that only takes up room.
func Spacer(c *Component, p SpacerProps) {
	if p.Size > 0 {
		c.SetMeasure(Exact(p.Size))
		return
	}
	c.SetMeasure(Percent(1))
}
