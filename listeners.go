package vtui

import (
	"fmt"
	"reflect"
)

// listenerBucket holds every listener a node registered for one event type.
// A bucket is monomorphic: it is created for type E and only ever holds
// func(*EventContext[E]).
type listenerBucket interface {
	dispatch(event any, p *pass, id NodeID)
}

type bucket[E any] struct {
	listeners []func(*EventContext[E])
}

func (b *bucket[E]) dispatch(event any, p *pass, id NodeID) {
	ev, ok := event.(E)
	if !ok {
		panic(fmt.Sprintf("vtui: listener bucket for %v received %T", reflect.TypeFor[E](), event))
	}
	ctx := &EventContext[E]{Event: ev, node: id, pass: p}
	for _, fn := range b.listeners {
		fn(ctx)
	}
}

// listenerStore maps event types to buckets.
type listenerStore struct {
	buckets map[reflect.Type]listenerBucket
}

func (s *listenerStore) get(t reflect.Type) (listenerBucket, bool) {
	b, ok := s.buckets[t]
	return b, ok
}

func (s *listenerStore) len() int {
	return len(s.buckets)
}

// Listen registers fn for events of type E on the component being built.
// Listeners for one type run in registration order. E must be the concrete
// type that gets dispatched.
//
// Listeners run on the runtime goroutine, one at a time. Never block in one.
func Listen[E any](c *Component, fn func(*EventContext[E])) {
	t := reflect.TypeFor[E]()
	s := &c.node.listeners
	if s.buckets == nil {
		s.buckets = make(map[reflect.Type]listenerBucket)
	}
	existing, ok := s.buckets[t]
	if !ok {
		existing = &bucket[E]{}
		s.buckets[t] = existing
	}
	b, ok := existing.(*bucket[E])
	if !ok {
		panic(fmt.Sprintf("vtui: listener bucket for %v has type %T", t, existing))
	}
	b.listeners = append(b.listeners, fn)
}
