package vtui

import (
	"context"
	"errors"
	"fmt"
)

// Driver is the terminal side of Launch.
type Driver interface {
	Setup() error
	Teardown() error
	Size() (width, height int)
	Buffer() *Buffer // the buffer the next frame is drawn into
	Flush() error
}

// Producer feeds events from outside the runtime goroutine. Start must not
// block; Stop blocks until the producer has stopped sending.
type Producer interface {
	Start(sink Sink)
	Stop()
}

// Launch runs root until a listener requests shutdown or ctx is cancelled.
//
// Each frame draws and flushes, blocks for one event, then keeps
// dispatching whatever is queued until cfg.FrameBudget runs out. A driver
// that is also a Producer is started along with producers.
func Launch(ctx context.Context, root Descriptor, cfg Config, driver Driver, producers ...Producer) (err error) {
	if cfg.DebugLog != "" {
		closer, lerr := openDebugLog(cfg.DebugLog)
		if lerr != nil {
			return fmt.Errorf("opening debug log: %w", lerr)
		}
		defer func() {
			SetLogOutput(nil)
			closer.Close()
		}()
	}

	rt := NewRuntime(root, cfg)

	if err := driver.Setup(); err != nil {
		return fmt.Errorf("driver setup: %w", err)
	}
	defer func() {
		if terr := driver.Teardown(); terr != nil {
			err = errors.Join(err, fmt.Errorf("driver teardown: %w", terr))
		}
	}()

	if p, ok := driver.(Producer); ok {
		producers = append([]Producer{p}, producers...)
	}
	sink := rt.Sink()
	for _, p := range producers {
		p.Start(sink)
		defer p.Stop()
	}
	// Close before the producers stop so none of them is left blocked in Send.
	defer rt.Close()

	w, h := driver.Size()
	rt.Dispatch(Resize{Width: w, Height: h})

	for {
		rt.Draw(driver.Buffer())
		if err := driver.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		if rt.ShouldExit() {
			return nil
		}

		if err := rt.Update(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("waiting for events: %w", err)
		}
		rt.drain(cfg.FrameBudget)
	}
}
