package vtui

import "reflect"

// scope holds context values a node provides to its descendants.
// Each node's scope links to its parent's, so lookups see the nearest
// provider.
type scope struct {
	parent *scope
	values map[reflect.Type]any
}

func (s *scope) child() *scope {
	return &scope{parent: s}
}

func (s *scope) set(t reflect.Type, v any) {
	if s.values == nil {
		s.values = make(map[reflect.Type]any)
	}
	s.values[t] = v
}

func (s *scope) lookup(t reflect.Type) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[t]; ok {
			return v, true
		}
	}
	return nil, false
}

// Provide allocates state owned by c and makes it visible to c's
// descendants by type.
func Provide[T any](c *Component, value T) State[T] {
	st := NewState(c, value)
	c.node.scope.set(reflect.TypeFor[T](), st)
	return st
}

// Consume finds the nearest State[T] provided by c or an ancestor.
func Consume[T any](c *Component) (State[T], bool) {
	v, ok := c.node.scope.lookup(reflect.TypeFor[T]())
	if !ok {
		return State[T]{}, false
	}
	return v.(State[T]), true
}

// UseContext returns the nearest provided State[T], providing a zero T
// from c when no ancestor has one.
func UseContext[T any](c *Component) State[T] {
	if st, ok := Consume[T](c); ok {
		return st
	}
	var zero T
	return Provide(c, zero)
}
