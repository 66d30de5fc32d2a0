package vtui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrBusClosed is wrapped by every SendError.
var ErrBusClosed = errors.New("vtui: bus closed")

// SendError is returned by Sink.Send once the runtime has stopped
// receiving. It carries the undelivered event.
type SendError struct {
	Event any
}

func (e *SendError) Error() string {
	return fmt.Sprintf("vtui: cannot deliver %T: bus closed", e.Event)
}

func (e *SendError) Unwrap() error {
	return ErrBusClosed
}

// Bus is the bounded queue events take from producers into the runtime.
// Any number of goroutines may send; the runtime goroutine receives.
type Bus struct {
	ch        chan any
	done      chan struct{}
	closeOnce sync.Once
}

// NewBus returns a bus holding up to capacity undelivered events.
func NewBus(capacity int) *Bus {
	if capacity < 1 {
		capacity = 1
	}
	return &Bus{
		ch:   make(chan any, capacity),
		done: make(chan struct{}),
	}
}

// Sink returns a send-only handle to the bus.
func (b *Bus) Sink() Sink {
	return Sink{bus: b}
}

// Close stops the bus. Pending events are discarded and later sends fail.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		logger.Printf("bus closed with %d undelivered events", len(b.ch))
	})
}

// Closed reports whether Close has been called.
func (b *Bus) Closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Recv blocks until an event arrives, ctx is done or the bus closes.
func (b *Bus) Recv(ctx context.Context) (any, error) {
	select {
	case ev := <-b.ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.done:
		return nil, ErrBusClosed
	}
}

// TryRecv returns the next event if one is queued.
func (b *Bus) TryRecv() (any, bool) {
	select {
	case ev := <-b.ch:
		return ev, true
	default:
		return nil, false
	}
}

// RecvTimeout waits up to d for the next event.
func (b *Bus) RecvTimeout(d time.Duration) (any, bool) {
	if d <= 0 {
		return b.TryRecv()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case ev := <-b.ch:
		return ev, true
	case <-t.C:
		return nil, false
	case <-b.done:
		return nil, false
	}
}

// Sink is the producer side of a Bus. It is a small value; copy it freely.
type Sink struct {
	bus *Bus
}

// Send queues ev, blocking while the bus is full. It returns a *SendError
// if the bus is closed before ev is queued.
func (s Sink) Send(ev any) error {
	if s.bus == nil || s.bus.Closed() {
		return &SendError{Event: ev}
	}
	select {
	case s.bus.ch <- ev:
		return nil
	case <-s.bus.done:
		return &SendError{Event: ev}
	}
}

// TrySend queues ev if there is room. It reports false if the bus is full.
func (s Sink) TrySend(ev any) (bool, error) {
	if s.bus == nil || s.bus.Closed() {
		return false, &SendError{Event: ev}
	}
	select {
	case s.bus.ch <- ev:
		return true, nil
	default:
		return false, nil
	}
}
