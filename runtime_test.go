package vtui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeDriver struct {
	w, h     int
	buf      *Buffer
	frames   []string
	setupErr error
	flushErr error

	setup, teardown bool
}

func (d *fakeDriver) Setup() error {
	d.setup = true
	return d.setupErr
}

func (d *fakeDriver) Teardown() error {
	d.teardown = true
	return nil
}

func (d *fakeDriver) Size() (int, int) {
	return d.w, d.h
}

func (d *fakeDriver) Buffer() *Buffer {
	if d.buf == nil {
		d.buf = NewBuffer(d.w, d.h)
	}
	return d.buf
}

func (d *fakeDriver) Flush() error {
	if d.flushErr != nil {
		return d.flushErr
	}
	d.frames = append(d.frames, d.buf.String())
	return nil
}

type fakeProducer struct {
	events  []any
	done    chan struct{}
	started bool
}

func (p *fakeProducer) Start(sink Sink) {
	p.started = true
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		for _, ev := range p.events {
			if err := sink.Send(ev); err != nil {
				return
			}
		}
	}()
}

func (p *fakeProducer) Stop() {
	<-p.done
}

// producingDriver is a driver that also feeds events, like Screen does.
type producingDriver struct {
	*fakeDriver
	*fakeProducer
}

// keyApp counts key presses and quits on q.
func keyApp(c *Component, _ struct{}) {
	keys := NewState(c, 0)
	size := NewState(c, Resize{})
	Listen(c, func(e *EventContext[KeyPress]) {
		if e.Event.Key.IsRune('q') {
			e.RequestShutdown()
			return
		}
		keys.Write(func(n *int) { *n++ })
	})
	Listen(c, func(e *EventContext[Resize]) {
		size.Set(e.Event)
	})
	c.Draw(func(cv *Canvas) {
		s := size.Get()
		cv.Text(0, 0, fmt.Sprintf("keys %d", keys.Get()), Style{})
		cv.Text(0, 1, fmt.Sprintf("%dx%d", s.Width, s.Height), Style{})
	})
}

func TestLaunch(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("runs until shutdown", func(t *testing.T) {
		d := &fakeDriver{w: 10, h: 3}
		p := &fakeProducer{events: []any{
			KeyPress{Key: Char('a')},
			KeyPress{Key: Char('q')},
			KeyPress{Key: Char('b')},
		}}

		err := Launch(context.Background(), Describe(keyApp, struct{}{}), cfg, d, p)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !d.setup || !d.teardown {
			t.Errorf("expected setup and teardown, got %v %v", d.setup, d.teardown)
		}
		if got := d.frames[0]; got != "keys 0\n10x3" {
			t.Errorf("expected first frame to see the initial size, got %q", got)
		}
		if got := d.frames[len(d.frames)-1]; got != "keys 1\n10x3" {
			t.Errorf("expected final frame %q, got %q", "keys 1\n10x3", got)
		}
	})

	t.Run("driver can produce", func(t *testing.T) {
		d := producingDriver{
			fakeDriver:   &fakeDriver{w: 4, h: 2},
			fakeProducer: &fakeProducer{events: []any{KeyPress{Key: Char('q')}}},
		}
		if err := Launch(context.Background(), Describe(keyApp, struct{}{}), cfg, d); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !d.started {
			t.Error("expected the driver to be started as a producer")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := &fakeDriver{w: 4, h: 2}
		if err := Launch(ctx, Describe(keyApp, struct{}{}), cfg, d); err != nil {
			t.Errorf("expected cancellation to end cleanly, got %v", err)
		}
		if len(d.frames) != 1 || !d.teardown {
			t.Errorf("expected one frame and teardown, got %d frames", len(d.frames))
		}
	})

	t.Run("setup failure", func(t *testing.T) {
		boom := errors.New("boom")
		d := &fakeDriver{w: 4, h: 2, setupErr: boom}
		err := Launch(context.Background(), Describe(keyApp, struct{}{}), cfg, d)
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if d.teardown {
			t.Error("expected no teardown after failed setup")
		}
	})

	t.Run("flush failure tears down", func(t *testing.T) {
		boom := errors.New("boom")
		d := &fakeDriver{w: 4, h: 2, flushErr: boom}
		err := Launch(context.Background(), Describe(keyApp, struct{}{}), cfg, d)
		if !errors.Is(err, boom) || !strings.Contains(err.Error(), "flush") {
			t.Errorf("expected wrapped flush error, got %v", err)
		}
		if !d.teardown {
			t.Error("expected teardown")
		}
	})

	t.Run("debug log", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "debug.log")
		cfg := cfg
		cfg.DebugLog = path
		d := &fakeDriver{w: 4, h: 2}
		p := &fakeProducer{events: []any{KeyPress{Key: Char('q')}}}

		if err := Launch(context.Background(), Describe(keyApp, struct{}{}), cfg, d, p); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "shutdown requested") {
			t.Errorf("expected shutdown in the debug log, got %q", data)
		}
	})
}

func TestRuntime(t *testing.T) {
	t.Run("drain stops at shutdown", func(t *testing.T) {
		rt := NewRuntime(Describe(keyApp, struct{}{}), DefaultConfig())
		sink := rt.Sink()
		for _, r := range "abqcd" {
			if err := sink.Send(KeyPress{Key: Char(r)}); err != nil {
				t.Fatal(err)
			}
		}

		if n := rt.drain(time.Second); n != 3 {
			t.Errorf("expected 3 events dispatched, got %d", n)
		}
		if !rt.ShouldExit() {
			t.Error("expected shutdown")
		}
	})

	t.Run("spent budget dispatches nothing", func(t *testing.T) {
		rt := NewRuntime(Describe(keyApp, struct{}{}), DefaultConfig())
		rt.Sink().Send(KeyPress{Key: Char('a')})
		if n := rt.drain(0); n != 0 {
			t.Errorf("expected nothing dispatched, got %d", n)
		}
	})

	t.Run("focus is dropped with its node", func(t *testing.T) {
		rt := NewRuntime(Describe(func(c *Component, _ struct{}) {
			show := NewState(c, true)
			Listen(c, func(e *EventContext[KeyPress]) {
				if e.Event.Key.IsRune('h') {
					show.Set(false)
				}
			})
			c.Compose(func(ui *Ui) {
				if show.Get() {
					Child(ui, func(c *Component, _ struct{}) {
						c.SetFocusable(true)
						Listen(c, func(e *EventContext[KeyPress]) {
							if e.Event.Key.IsRune('f') {
								e.RequestFocus()
							}
						})
					}, struct{}{})
				}
			})
		}, struct{}{}), DefaultConfig())

		rt.Dispatch(KeyPress{Key: Char('f')})
		if rt.Context().Focused().IsZero() {
			t.Fatal("expected the child to take focus")
		}
		child := rt.Context().Focused()

		rt.Dispatch(KeyPress{Key: Char('h')})
		if rt.Arena().Contains(child) {
			t.Error("expected the child to be removed")
		}
		if !rt.Context().Focused().IsZero() {
			t.Errorf("expected focus cleared, got %v", rt.Context().Focused())
		}
	})

	t.Run("closed runtime refuses events", func(t *testing.T) {
		rt := NewRuntime(Describe(keyApp, struct{}{}), DefaultConfig())
		rt.Close()
		if err := rt.Sink().Send(Tick{}); !errors.Is(err, ErrBusClosed) {
			t.Errorf("expected ErrBusClosed, got %v", err)
		}
		if err := rt.Update(context.Background()); !errors.Is(err, ErrBusClosed) {
			t.Errorf("expected ErrBusClosed, got %v", err)
		}
	})
}
