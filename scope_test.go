package vtui

import "testing"

type theme struct {
	Name string
}

type themeProps struct {
	Provide string // empty provides nothing
	Seen    *[]string
	Depth   int
}

func themed(c *Component, p themeProps) {
	if p.Provide != "" {
		Provide(c, theme{Name: p.Provide})
	}
	st, ok := Consume[theme](c)
	if ok {
		*p.Seen = append(*p.Seen, st.Get().Name)
	} else {
		*p.Seen = append(*p.Seen, "-")
	}
	c.Compose(func(ui *Ui) {
		if p.Depth > 0 {
			Child(ui, themed, themeProps{Seen: p.Seen, Depth: p.Depth - 1})
		}
	})
}

func TestScope(t *testing.T) {
	t.Run("descendants see the provider", func(t *testing.T) {
		var seen []string
		NewArena(Describe(themed, themeProps{Provide: "dark", Seen: &seen, Depth: 2}))
		want := []string{"dark", "dark", "dark"}
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("depth %d: expected %q, got %q", i, want[i], seen[i])
			}
		}
	})

	t.Run("nothing provided", func(t *testing.T) {
		var seen []string
		NewArena(Describe(themed, themeProps{Seen: &seen, Depth: 1}))
		if seen[0] != "-" || seen[1] != "-" {
			t.Errorf("expected no theme anywhere, got %v", seen)
		}
	})

	t.Run("nearest provider wins", func(t *testing.T) {
		var inner State[theme]
		var outer State[theme]
		NewArena(Describe(func(c *Component, _ struct{}) {
			outer = Provide(c, theme{Name: "outer"})
			c.Compose(func(ui *Ui) {
				Child(ui, func(c *Component, _ struct{}) {
					Provide(c, theme{Name: "inner"})
					c.Compose(func(ui *Ui) {
						Child(ui, func(c *Component, _ struct{}) {
							inner = UseContext[theme](c)
						}, struct{}{})
					})
				}, struct{}{})
			})
		}, struct{}{}))

		if got := inner.Get().Name; got != "inner" {
			t.Errorf("expected inner, got %q", got)
		}
		if got := outer.Get().Name; got != "outer" {
			t.Errorf("expected outer untouched, got %q", got)
		}
	})

	t.Run("writes are shared", func(t *testing.T) {
		var provided, consumed State[int]
		NewArena(Describe(func(c *Component, _ struct{}) {
			provided = Provide(c, 1)
			c.Compose(func(ui *Ui) {
				Child(ui, func(c *Component, _ struct{}) {
					consumed = UseContext[int](c)
				}, struct{}{})
			})
		}, struct{}{}))

		consumed.Set(5)
		if got := provided.Get(); got != 5 {
			t.Errorf("expected provider to see 5, got %d", got)
		}
	})

	t.Run("use context provides a zero value", func(t *testing.T) {
		var first, second State[theme]
		NewArena(Describe(func(c *Component, _ struct{}) {
			first = UseContext[theme](c)
			c.Compose(func(ui *Ui) {
				Child(ui, func(c *Component, _ struct{}) {
					second = UseContext[theme](c)
				}, struct{}{})
			})
		}, struct{}{}))

		first.Set(theme{Name: "set"})
		if got := second.Get().Name; got != "set" {
			t.Errorf("expected the child to share the implicit provider, got %q", got)
		}
	})
}

func TestTheme(t *testing.T) {
	var got []Theme
	NewArena(Describe(func(c *Component, _ struct{}) {
		got = append(got, UseTheme(c))
		c.Compose(func(ui *Ui) {
			Child(ui, func(c *Component, _ struct{}) {
				ProvideTheme(c, ThemeDark)
				c.Compose(func(ui *Ui) {
					Child(ui, func(c *Component, _ struct{}) {
						got = append(got, UseTheme(c))
					}, struct{}{})
				})
			}, struct{}{})
		})
	}, struct{}{}))

	if got[0] != ThemeMonochrome {
		t.Errorf("expected monochrome without a provider, got %+v", got[0])
	}
	if got[1] != ThemeDark {
		t.Errorf("expected the provided dark theme, got %+v", got[1])
	}
}

func TestThemeStyles(t *testing.T) {
	th := ThemeDark
	if got := th.Border(true); got != th.Focus {
		t.Errorf("expected focus style, got %+v", got)
	}
	if got := th.Border(false); got != th.Outline {
		t.Errorf("expected outline style, got %+v", got)
	}
	if got := th.Pointer(th.Dim, false); got != th.Dim {
		t.Errorf("expected base style without hover, got %+v", got)
	}
	if got := ThemeMonochrome.Pointer(Style{}, true); !got.Attr.Has(AttrInverse) {
		t.Errorf("expected monochrome hover to invert, got %+v", got)
	}
}

func TestThemedBorder(t *testing.T) {
	root := &box{focusable: true, draw: func(c *Canvas) {
		th := ThemeMonochrome
		c.Border(th.Frame, th.Border(true))
	}}
	buf := render(t, root, 3, 2)
	if got := buf.Get(0, 0); got.Rune != '┌' || !got.Style.Attr.Has(AttrBold) {
		t.Errorf("expected a bold single corner, got %+v", got)
	}
}
