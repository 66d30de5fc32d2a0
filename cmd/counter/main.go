// counter shows focusable counters. Click one to focus it, +/- to change
// it, tab to move focus, q to quit.
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

type appProps struct {
	Title    string
	Counters int
	Theme    vtui.Theme
}

type counterProps struct {
	Label string
	Start int
	Index int
	Of    int
}

type headerProps struct {
	Title string
}

// shared is provided by the app to every counter.
type shared struct {
	Changes int
	Focused int // index of the focused counter, -1 for none
}

func header(c *vtui.Component, p headerProps) {
	c.SetMeasure(vtui.Exact(1))
	st := vtui.UseContext[shared](c)
	theme := vtui.UseTheme(c)
	c.Draw(func(cv *vtui.Canvas) {
		cv.Text(0, 0, p.Title, theme.Title)
		status := fmt.Sprintf("changes: %d", st.Get().Changes)
		cv.Text(cv.Width()-len(status), 0, status, theme.Dim)
	})
}

func counter(c *vtui.Component, p counterProps) {
	c.SetFocusable(true)
	c.SetMeasure(vtui.Exact(3))

	count := vtui.NewState(c, p.Start)
	hasFocus := vtui.NewState(c, false)
	st := vtui.UseContext[shared](c)
	theme := vtui.UseTheme(c)

	bump := func(d int) {
		count.Write(func(n *int) { *n += d })
		st.Write(func(s *shared) { s.Changes++ })
	}

	vtui.Listen(c, func(e *vtui.EventContext[vtui.MouseDown]) {
		if e.IsPointerHit() {
			e.RequestFocus()
		}
	})
	vtui.Listen(c, func(e *vtui.EventContext[vtui.FocusChanged]) {
		mine := e.Event.Current == e.Node()
		hasFocus.Set(mine)
		if mine {
			st.Write(func(s *shared) { s.Focused = p.Index })
		}
	})
	vtui.Listen(c, func(e *vtui.EventContext[vtui.KeyPress]) {
		if e.Event.Key.Key == vtui.KeyTab {
			if (st.Get().Focused+1)%p.Of == p.Index {
				e.RequestFocus()
			}
			return
		}
		if !e.IsFocused() {
			return
		}
		switch {
		case e.Event.Key.IsRune('+'), e.Event.Key.Key == vtui.KeyUp:
			bump(1)
		case e.Event.Key.IsRune('-'), e.Event.Key.Key == vtui.KeyDown:
			bump(-1)
		}
	})

	c.Draw(func(cv *vtui.Canvas) {
		cv.Border(theme.Frame, theme.Border(hasFocus.Get()))
		text := theme.Text
		if count.Get() < 0 {
			text = theme.Error
		}
		cv.Text(2, 1, fmt.Sprintf("%s: %d", p.Label, count.Get()), text)
	})
}

func app(c *vtui.Component, p appProps) {
	c.SetPadding(vtui.Uniform(1))
	vtui.Provide(c, shared{Focused: -1})
	vtui.ProvideTheme(c, p.Theme)

	vtui.Listen(c, func(e *vtui.EventContext[vtui.KeyPress]) {
		switch {
		case e.Event.Key.IsRune('q'), e.Event.Key.Key == vtui.KeyEsc:
			e.RequestShutdown()
		}
	})

	c.Compose(func(ui *vtui.Ui) {
		vtui.Child(ui, header, headerProps{Title: p.Title})
		for i := range p.Counters {
			vtui.Child(ui, counter, counterProps{
				Label: fmt.Sprintf("counter %d", i+1),
				Start: i * 10,
				Index: i,
				Of:    p.Counters,
			}).Key(i)
		}
	})
}

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	useTea := flag.Bool("tea", false, "run under bubbletea instead of driving the terminal directly")
	n := flag.Int("n", 3, "number of counters")
	themeName := flag.String("theme", "dark", "dark, light or mono")
	flag.Parse()

	cfg, err := vtui.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	themes := map[string]vtui.Theme{
		"dark":  vtui.ThemeDark,
		"light": vtui.ThemeLight,
		"mono":  vtui.ThemeMonochrome,
	}
	theme, ok := themes[*themeName]
	if !ok {
		log.Fatalf("unknown theme %q", *themeName)
	}

	root := vtui.Describe(app, appProps{Title: "vtui counters", Counters: *n, Theme: theme})

	if *useTea {
		err = vtui.RunTea(ctx, root, cfg)
	} else {
		screen := vtui.NewScreen(os.Stdin, os.Stdout, cfg)
		err = vtui.Launch(ctx, root, cfg, screen, vtui.NewTeaInput(os.Stdin))
	}
	if err != nil {
		log.Fatal(err)
	}
}
