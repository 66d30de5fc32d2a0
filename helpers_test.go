package vtui

import "testing"

// box is a configurable test component. Its props hold a pointer, so a box
// is reused for as long as the same *box is declared.
type box struct {
	name      string
	measure   *Measure
	focusable bool
	clipped   bool
	flow      Flow
	placement Placement
	padding   Insets
	layer     int
	children  []*box

	log    *[]string // listeners append "name:event" here
	builds int

	onKey   func(*EventContext[KeyPress])
	onMouse func(*EventContext[MouseDown])
	onFocus func(*EventContext[FocusChanged])
	draw    func(*Canvas)
}

type boxProps struct {
	B *box
}

func boxFactory(c *Component, p boxProps) {
	b := p.B
	b.builds++
	c.SetFocusable(b.focusable)
	c.SetClipped(b.clipped)
	c.SetFlow(b.flow)
	c.SetPlacement(b.placement)
	c.SetPadding(b.padding)
	c.SetLayer(b.layer)
	if b.measure != nil {
		c.SetMeasure(*b.measure)
	}
	if b.draw != nil {
		c.Draw(b.draw)
	}

	record := func(event string) {
		if b.log != nil {
			*b.log = append(*b.log, b.name+":"+event)
		}
	}
	Listen(c, func(e *EventContext[Tick]) {
		record("tick")
	})
	Listen(c, func(e *EventContext[KeyPress]) {
		record("key")
		if b.onKey != nil {
			b.onKey(e)
		}
	})
	Listen(c, func(e *EventContext[MouseDown]) {
		if e.IsPointerHit() {
			record("hit")
		}
		if b.onMouse != nil {
			b.onMouse(e)
		}
	})
	Listen(c, func(e *EventContext[FocusChanged]) {
		record("focus")
		if b.onFocus != nil {
			b.onFocus(e)
		}
	})

	c.Compose(func(ui *Ui) {
		for i, child := range b.children {
			Child(ui, boxFactory, boxProps{B: child}).Key(i)
		}
	})
}

func measure(m Measure) *Measure {
	return &m
}

// mount builds an arena for root, sharing log across the whole tree.
func mount(root *box, log *[]string) *Arena {
	var walk func(*box)
	walk = func(b *box) {
		b.log = log
		for _, c := range b.children {
			walk(c)
		}
	}
	walk(root)
	return NewArena(Describe(boxFactory, boxProps{B: root}))
}

// expectPanic runs fn and returns the value it panicked with.
func expectPanic[T any](t *testing.T, fn func()) (v T) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %T, got none", v)
		}
		got, ok := r.(T)
		if !ok {
			t.Fatalf("expected panic with %T, got %T: %v", v, r, r)
		}
		v = got
	}()
	fn()
	return v
}
