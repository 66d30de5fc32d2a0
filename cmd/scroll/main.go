// scroll shows a list taller than its viewport. Scroll with the wheel,
// arrows or page keys; q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/kungfusheep/vtui"
)

type rowProps struct {
	Index int
}

type viewportProps struct {
	Rows int
}

func row(c *vtui.Component, p rowProps) {
	c.SetMeasure(vtui.Exact(1))
	theme := vtui.UseTheme(c)
	hover := vtui.NewState(c, false)

	vtui.Listen(c, func(e *vtui.EventContext[vtui.MouseHover]) {
		hover.Set(e.IsPointerHit())
	})

	c.Draw(func(cv *vtui.Canvas) {
		style := theme.Text
		if p.Index%2 == 1 {
			style = theme.Dim
		}
		style = theme.Pointer(style, hover.Get())
		cv.Text(0, 0, fmt.Sprintf("%4d  row %d", p.Index, p.Index), style)
	})
}

func viewport(c *vtui.Component, p viewportProps) {
	c.SetClipped(true)
	c.SetPadding(vtui.Uniform(1))
	c.SetPlacement(vtui.PlacementOverflow)

	scrollBy := func(e interface {
		Rect() vtui.Rect
		Offset() (int, int)
		SetOffset(x, y int)
	}, dy int) {
		_, y := e.Offset()
		visible := e.Rect().Height - 2
		y = min(max(y+dy, 0), max(p.Rows-visible, 0))
		e.SetOffset(0, y)
	}

	vtui.Listen(c, func(e *vtui.EventContext[vtui.MouseScroll]) {
		if !e.Rect().ContainsPoint(e.Event.X, e.Event.Y) {
			return
		}
		switch e.Event.Direction {
		case vtui.ScrollUp:
			scrollBy(e, -3)
		case vtui.ScrollDown:
			scrollBy(e, 3)
		}
	})
	vtui.Listen(c, func(e *vtui.EventContext[vtui.KeyPress]) {
		page := e.Rect().Height - 2
		switch e.Event.Key.Key {
		case vtui.KeyUp:
			scrollBy(e, -1)
		case vtui.KeyDown:
			scrollBy(e, 1)
		case vtui.KeyPageUp:
			scrollBy(e, -page)
		case vtui.KeyPageDown:
			scrollBy(e, page)
		case vtui.KeyHome:
			scrollBy(e, -p.Rows)
		case vtui.KeyEnd:
			scrollBy(e, p.Rows)
		}
	})

	c.Draw(func(cv *vtui.Canvas) {
		cv.Border(vtui.BorderSingle, vtui.Style{})
	})

	c.Compose(func(ui *vtui.Ui) {
		for i := range p.Rows {
			vtui.Child(ui, row, rowProps{Index: i}).Key(i)
		}
	})
}

func app(c *vtui.Component, p viewportProps) {
	c.SetPlacement(vtui.PlacementFit)
	theme := vtui.ProvideTheme(c, vtui.ThemeDark).Get()
	vtui.Listen(c, func(e *vtui.EventContext[vtui.KeyPress]) {
		if e.Event.Key.IsRune('q') || e.Event.Key.Key == vtui.KeyEsc {
			e.RequestShutdown()
		}
	})
	c.Draw(func(cv *vtui.Canvas) {
		cv.Text(0, 0, fmt.Sprintf("%d rows, wheel or arrows to scroll, q to quit", p.Rows), theme.Dim)
	})
	c.Compose(func(ui *vtui.Ui) {
		vtui.Child(ui, vtui.Spacer, vtui.SpacerProps{Size: 1})
		vtui.Child(ui, viewport, p).Measure(vtui.Percent(1))
	})
}

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	rows := flag.Int("rows", 200, "number of rows")
	flag.Parse()

	cfg, err := vtui.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := vtui.Describe(app, viewportProps{Rows: *rows})
	screen := vtui.NewScreen(os.Stdin, os.Stdout, cfg)
	if err := vtui.Launch(ctx, root, cfg, screen, vtui.NewTeaInput(os.Stdin)); err != nil {
		log.Fatal(err)
	}
}
