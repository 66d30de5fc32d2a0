package vtui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Screen.Setup when output isn't a terminal.
var ErrNotTerminal = errors.New("vtui: output is not a terminal")

const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqClear        = "\x1b[2J"
	seqHome         = "\x1b[H"
	seqHideCursor   = "\x1b[?25l"
	seqShowCursor   = "\x1b[?25h"
	seqMouseAll     = "\x1b[?1003h\x1b[?1006h" // any motion, SGR coordinates
	seqMouseCell    = "\x1b[?1002h\x1b[?1006h" // button motion, SGR coordinates
	seqMouseOff     = "\x1b[?1003l\x1b[?1002l\x1b[?1006l"
	seqReset        = "\x1b[0m"
)

// Screen drives a terminal directly: raw mode, the alternate screen and
// diffed output of a double buffer. It also reports terminal resizes as
// Resize events when started as a Producer.
type Screen struct {
	in  *os.File
	out *os.File
	cfg Config

	front *Buffer // what the terminal shows
	back  *Buffer // what the next frame draws into

	oldState *term.State

	mu            sync.Mutex // guards width and height
	width, height int
	full          bool // next flush repaints everything

	sig  chan os.Signal
	done chan struct{}

	lastStyle Style
	frame     bytes.Buffer
}

// NewScreen returns a screen reading keys from in and drawing to out.
// Nil files default to stdin and stdout.
func NewScreen(in, out *os.File, cfg Config) *Screen {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Screen{
		in:    in,
		out:   out,
		cfg:   cfg,
		front: NewBuffer(0, 0),
		back:  NewBuffer(0, 0),
	}
}

func terminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Setup enters raw mode and prepares the terminal for drawing.
func (s *Screen) Setup() error {
	if !isatty.IsTerminal(s.out.Fd()) {
		return ErrNotTerminal
	}
	w, h, err := terminalSize(int(s.out.Fd()))
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}
	s.mu.Lock()
	s.width, s.height = w, h
	s.mu.Unlock()

	if isatty.IsTerminal(s.in.Fd()) {
		st, err := term.MakeRaw(int(s.in.Fd()))
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		s.oldState = st
	}

	var seq bytes.Buffer
	if s.cfg.AltScreen {
		seq.WriteString(seqAltScreenOn)
	}
	seq.WriteString(seqClear + seqHome + seqHideCursor)
	switch s.cfg.Mouse {
	case MouseAll:
		seq.WriteString(seqMouseAll)
	case MouseCell:
		seq.WriteString(seqMouseCell)
	}
	if _, err := s.out.Write(seq.Bytes()); err != nil {
		return fmt.Errorf("writing setup sequence: %w", err)
	}
	s.full = true
	return nil
}

// Teardown restores the terminal to how Setup found it.
func (s *Screen) Teardown() error {
	seq := seqReset + seqMouseOff + seqShowCursor
	if s.cfg.AltScreen {
		seq += seqAltScreenOff
	}
	_, werr := s.out.WriteString(seq)
	if werr != nil {
		werr = fmt.Errorf("writing teardown sequence: %w", werr)
	}
	if s.oldState != nil {
		if err := term.Restore(int(s.in.Fd()), s.oldState); err != nil {
			return errors.Join(werr, fmt.Errorf("restoring terminal: %w", err))
		}
		s.oldState = nil
	}
	return werr
}

// Size returns the terminal size as of the last resize.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Buffer returns the back buffer, resized to the terminal if it changed.
func (s *Screen) Buffer() *Buffer {
	w, h := s.Size()
	if s.back.Width() != w || s.back.Height() != h {
		s.back.Resize(w, h)
		s.front.Resize(w, h)
		s.full = true
	}
	return s.back
}

// Start watches for SIGWINCH and sends a Resize event for each change.
func (s *Screen) Start(sink Sink) {
	s.sig = make(chan os.Signal, 1)
	s.done = make(chan struct{})
	signal.Notify(s.sig, syscall.SIGWINCH)
	go func() {
		defer close(s.done)
		for range s.sig {
			w, h, err := terminalSize(int(s.out.Fd()))
			if err != nil {
				continue
			}
			s.mu.Lock()
			changed := w != s.width || h != s.height
			s.width, s.height = w, h
			s.mu.Unlock()
			if !changed {
				continue
			}
			if err := sink.Send(Resize{Width: w, Height: h}); err != nil {
				return
			}
		}
	}()
}

// Stop stops watching for resizes.
func (s *Screen) Stop() {
	if s.sig == nil {
		return
	}
	signal.Stop(s.sig)
	close(s.sig)
	<-s.done
	s.sig = nil
}

// Flush writes the cells that changed since the last flush.
func (s *Screen) Flush() error {
	buf := &s.frame
	buf.Reset()

	if s.full {
		buf.WriteString(seqReset + seqClear)
		s.front.Clear()
		s.lastStyle = Style{}
		s.full = false
	}

	cursorX, cursorY := -1, -1
	changed := false
	for y := 0; y < s.back.Height(); y++ {
		if !s.back.RowDirty(y) {
			continue
		}
		for x := 0; x < s.back.Width(); x++ {
			c := s.back.Get(x, y)
			if c == s.front.Get(x, y) {
				continue
			}
			s.front.put(x, y, c)
			if c.Rune == 0 {
				continue
			}
			changed = true
			if cursorX != x || cursorY != y {
				buf.WriteString("\x1b[")
				buf.WriteString(strconv.Itoa(y + 1))
				buf.WriteByte(';')
				buf.WriteString(strconv.Itoa(x + 1))
				buf.WriteByte('H')
			}
			if c.Style != s.lastStyle {
				writeStyle(buf, c.Style)
				s.lastStyle = c.Style
			}
			buf.WriteRune(c.Rune)
			cursorX, cursorY = x+max(runewidth.RuneWidth(c.Rune), 1), y
		}
	}
	if changed {
		buf.WriteString(seqReset)
		s.lastStyle = Style{}
	}
	s.back.ClearDirty()

	if buf.Len() == 0 {
		return nil
	}
	if _, err := s.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func writeStyle(buf *bytes.Buffer, s Style) {
	buf.WriteString("\x1b[0")
	for _, a := range []struct {
		attr Attribute
		code string
	}{
		{AttrBold, ";1"},
		{AttrDim, ";2"},
		{AttrItalic, ";3"},
		{AttrUnderline, ";4"},
		{AttrBlink, ";5"},
		{AttrInverse, ";7"},
		{AttrStrikethrough, ";9"},
	} {
		if s.Attr.Has(a.attr) {
			buf.WriteString(a.code)
		}
	}
	writeColor(buf, s.FG, true)
	writeColor(buf, s.BG, false)
	buf.WriteByte('m')
}

func writeColor(buf *bytes.Buffer, c Color, fg bool) {
	switch c.Mode {
	case ColorDefault:
		if fg {
			buf.WriteString(";39")
		} else {
			buf.WriteString(";49")
		}
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		buf.WriteByte(';')
		buf.WriteString(strconv.Itoa(base + idx))
	case Color256:
		if fg {
			buf.WriteString(";38;5;")
		} else {
			buf.WriteString(";48;5;")
		}
		buf.WriteString(strconv.Itoa(int(c.Index)))
	case ColorRGB:
		if fg {
			buf.WriteString(";38;2;")
		} else {
			buf.WriteString(";48;2;")
		}
		fmt.Fprintf(buf, "%d;%d;%d", c.R, c.G, c.B)
	}
}
