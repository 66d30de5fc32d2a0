package vtui

import (
	"context"
	"time"
)

// Runtime ties an Arena to its Context and the Bus events arrive on.
// Everything but Sink must be called from one goroutine.
type Runtime struct {
	arena *Arena
	ctx   *Context
	bus   *Bus
}

// NewRuntime mounts root and returns a runtime ready to draw.
func NewRuntime(root Descriptor, cfg Config) *Runtime {
	return &Runtime{
		arena: NewArena(root),
		ctx:   NewContext(),
		bus:   NewBus(cfg.QueueCapacity),
	}
}

// Arena returns the runtime's tree.
func (r *Runtime) Arena() *Arena {
	return r.arena
}

// Context returns the runtime's focus and shutdown state.
func (r *Runtime) Context() *Context {
	return r.ctx
}

// Sink returns a handle other goroutines can send events through.
func (r *Runtime) Sink() Sink {
	return r.bus.Sink()
}

// Draw clears buf, lays the tree out over it and runs every draw callback.
func (r *Runtime) Draw(buf *Buffer) {
	buf.Clear()
	r.arena.Render(buf)
}

// Dispatch delivers ev to the tree, then reconciles so composers see any
// state the listeners changed.
func (r *Runtime) Dispatch(ev any) {
	r.arena.Dispatch(ev, r.ctx)
	r.arena.Reconcile(r.arena.Root())
	r.ctx.prune(r.arena)
}

// Update blocks for one event from the bus and dispatches it.
func (r *Runtime) Update(ctx context.Context) error {
	ev, err := r.bus.Recv(ctx)
	if err != nil {
		return err
	}
	r.Dispatch(ev)
	return nil
}

// drain dispatches queued events until the bus is empty, shutdown is
// requested or budget has passed. It returns how many it dispatched.
func (r *Runtime) drain(budget time.Duration) int {
	deadline := time.Now().Add(budget)
	n := 0
	for !r.ShouldExit() {
		left := time.Until(deadline)
		if left <= 0 {
			logger.Printf("frame budget %v spent after %d events", budget, n)
			break
		}
		ev, ok := r.bus.TryRecv()
		if !ok {
			break
		}
		r.Dispatch(ev)
		n++
	}
	return n
}

// ShouldExit reports whether shutdown has been requested.
func (r *Runtime) ShouldExit() bool {
	return r.ctx.ShutdownRequested()
}

// Close stops the bus. Sends after Close fail with a *SendError.
func (r *Runtime) Close() {
	r.bus.Close()
}
