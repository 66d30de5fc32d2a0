package vtui

// Theme is the look shared by a subtree. Provide one with ProvideTheme and
// read it with UseTheme from any descendant's factory.
type Theme struct {
	Text    Style // body text
	Dim     Style // secondary text, e.g. status lines
	Title   Style
	Error   Style
	Outline Style // border of a node without focus
	Focus   Style // border of the focused node
	Hover   Style // node under the pointer
	Frame   BorderStyle
}

// ThemeDark suits terminals with a dark background.
var ThemeDark = Theme{
	Text:    Style{FG: White},
	Dim:     Style{FG: BrightBlack},
	Title:   Style{FG: BrightCyan, Attr: AttrBold},
	Error:   Style{FG: BrightRed},
	Outline: Style{FG: BrightBlack},
	Focus:   Style{FG: BrightCyan, Attr: AttrBold},
	Hover:   Style{FG: Black, BG: BrightCyan},
	Frame:   BorderRounded,
}

// ThemeLight suits terminals with a light background.
var ThemeLight = Theme{
	Text:    Style{FG: Black},
	Dim:     Style{FG: BrightBlack},
	Title:   Style{FG: Blue, Attr: AttrBold},
	Error:   Style{FG: Red},
	Outline: Style{FG: BrightBlack},
	Focus:   Style{FG: Blue, Attr: AttrBold},
	Hover:   Style{FG: White, BG: Blue},
	Frame:   BorderSingle,
}

// ThemeMonochrome uses attributes only.
var ThemeMonochrome = Theme{
	Dim:     Style{Attr: AttrDim},
	Title:   Style{Attr: AttrBold},
	Error:   Style{Attr: AttrBold | AttrUnderline},
	Outline: Style{Attr: AttrDim},
	Focus:   Style{Attr: AttrBold},
	Hover:   Style{Attr: AttrInverse},
	Frame:   BorderSingle,
}

// Border returns the outline style for a node with or without focus.
func (t Theme) Border(focused bool) Style {
	if focused {
		return t.Focus
	}
	return t.Outline
}

// Pointer returns base, or the hover style when the pointer is over the node.
func (t Theme) Pointer(base Style, hovered bool) Style {
	if hovered {
		return t.Hover
	}
	return base
}

// ProvideTheme makes t the theme for c and its descendants.
func ProvideTheme(c *Component, t Theme) State[Theme] {
	return Provide(c, t)
}

// UseTheme returns the nearest provided theme. Without a provider it is
// ThemeMonochrome.
func UseTheme(c *Component) Theme {
	if st, ok := Consume[Theme](c); ok {
		return st.Get()
	}
	return ThemeMonochrome
}
