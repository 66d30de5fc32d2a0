package vtui

import (
	"errors"
	"fmt"
)

// ErrStateDropped is returned when a State handle outlives the node that
// owned it.
var ErrStateDropped = errors.New("vtui: state accessed after its owner was removed")

// BorrowError reports an access that conflicts with one already in progress,
// e.g. writing a state from inside its own Read callback.
type BorrowError struct {
	Op   string // access attempted: "read" or "write"
	Held string // access in progress: "read" or "write"
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("vtui: cannot %s state while it is borrowed for %s", e.Op, e.Held)
}

type stateKey struct {
	index      uint32
	generation uint32
}

type stateSlot struct {
	value      any // always a *T
	generation uint32
	live       bool
	readers    int
	writing    bool
}

// stateStore is a generation-checked slot table shared by every node of one
// arena. Nodes own keys into it and release them when torn down.
type stateStore struct {
	slots []stateSlot
	free  []uint32
}

func newStateStore() *stateStore {
	return &stateStore{}
}

func (s *stateStore) insert(ptr any) stateKey {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		slot := &s.slots[idx]
		slot.value = ptr
		slot.live = true
		slot.readers = 0
		slot.writing = false
		return stateKey{index: idx, generation: slot.generation}
	}
	s.slots = append(s.slots, stateSlot{value: ptr, generation: 1, live: true})
	return stateKey{index: uint32(len(s.slots) - 1), generation: 1}
}

func (s *stateStore) release(k stateKey) {
	slot, ok := s.lookup(k)
	if !ok {
		return
	}
	slot.value = nil
	slot.live = false
	slot.readers = 0
	slot.writing = false
	slot.generation++
	s.free = append(s.free, k.index)
}

func (s *stateStore) lookup(k stateKey) (*stateSlot, bool) {
	if s == nil || int(k.index) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[k.index]
	if !slot.live || slot.generation != k.generation {
		return nil, false
	}
	return slot, true
}

// live returns the number of occupied slots.
func (s *stateStore) live() int {
	return len(s.slots) - len(s.free)
}

// State is a copyable handle to a value owned by a node.
// Handles may be captured by draw callbacks, listeners and child props; the
// value lives until the owning node is removed from the arena.
//
// State is not safe for concurrent use. Access it only from the goroutine
// that drives the runtime.
type State[T any] struct {
	store *stateStore
	key   stateKey
}

// NewState allocates a state cell owned by the component being built.
func NewState[T any](c *Component, value T) State[T] {
	v := value
	key := c.arena.states.insert(&v)
	c.node.states = append(c.node.states, key)
	return State[T]{store: c.arena.states, key: key}
}

// Alive reports whether the owning node still exists.
func (s State[T]) Alive() bool {
	_, ok := s.store.lookup(s.key)
	return ok
}

// TryRead calls fn with the current value under a shared borrow.
func (s State[T]) TryRead(fn func(T)) error {
	slot, ok := s.store.lookup(s.key)
	if !ok {
		return ErrStateDropped
	}
	if slot.writing {
		return &BorrowError{Op: "read", Held: "write"}
	}
	ptr := slot.value.(*T)
	slot.readers++
	// fn may release the owner and let another state reuse the slot
	defer func() {
		if slot, ok := s.store.lookup(s.key); ok {
			slot.readers--
		}
	}()
	fn(*ptr)
	return nil
}

// TryWrite calls fn with a pointer to the value under an exclusive borrow.
func (s State[T]) TryWrite(fn func(*T)) error {
	slot, ok := s.store.lookup(s.key)
	if !ok {
		return ErrStateDropped
	}
	switch {
	case slot.writing:
		return &BorrowError{Op: "write", Held: "write"}
	case slot.readers > 0:
		return &BorrowError{Op: "write", Held: "read"}
	}
	ptr := slot.value.(*T)
	slot.writing = true
	defer func() {
		if slot, ok := s.store.lookup(s.key); ok {
			slot.writing = false
		}
	}()
	fn(ptr)
	return nil
}

// Read is TryRead that panics on failure.
// A failure here means the component used its own state re-entrantly or
// kept a handle past its owner's lifetime.
func (s State[T]) Read(fn func(T)) {
	if err := s.TryRead(fn); err != nil {
		panic(err)
	}
}

// Write is TryWrite that panics on failure.
func (s State[T]) Write(fn func(*T)) {
	if err := s.TryWrite(fn); err != nil {
		panic(err)
	}
}

// Get returns a copy of the value.
func (s State[T]) Get() T {
	var out T
	s.Read(func(v T) { out = v })
	return out
}

// Set replaces the value.
func (s State[T]) Set(value T) {
	s.Write(func(v *T) { *v = value })
}
