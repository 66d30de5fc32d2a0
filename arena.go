package vtui

import (
	"fmt"
	"runtime"
	"sort"
)

// NodeID is a generation-checked handle to an arena node.
// The zero NodeID refers to nothing. A handle whose node has been removed
// never aliases a later node that reuses the slot.
type NodeID struct {
	index      uint32
	generation uint32
}

// IsZero reports whether id is the empty handle.
func (id NodeID) IsZero() bool {
	return id.generation == 0
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(none)"
	}
	return fmt.Sprintf("node(%dv%d)", id.index, id.generation)
}

// StaleNodeError is the panic value for use of a removed or foreign NodeID.
type StaleNodeError struct {
	ID NodeID
}

func (e *StaleNodeError) Error() string {
	return fmt.Sprintf("vtui: stale node handle %v", e.ID)
}

// DuplicateIdentityError is the panic value raised when one composer
// declares two children with the same call site and key.
type DuplicateIdentityError struct {
	Parent NodeID
	First  int // index of the first child with the identity
	Second int // index of the duplicate
	Site   string
	Key    int
	HasKey bool
}

func (e *DuplicateIdentityError) Error() string {
	if e.HasKey {
		return fmt.Sprintf("vtui: children %d and %d of %v share key %d at %s",
			e.First, e.Second, e.Parent, e.Key, e.Site)
	}
	return fmt.Sprintf("vtui: children %d and %d of %v are declared at %s without a key",
		e.First, e.Second, e.Parent, e.Site)
}

type slot struct {
	node       *node
	generation uint32
}

// Arena owns every node of a UI tree in a flat slot table.
//
// An Arena is not safe for concurrent use. Reconcile, Render and Dispatch
// are all driven from one goroutine.
type Arena struct {
	slots  []slot
	free   []uint32
	root   NodeID
	states *stateStore

	order      []NodeID
	orderValid bool
}

// NewArena mounts root and reconciles the whole tree below it.
func NewArena(root Descriptor) *Arena {
	a := &Arena{states: newStateStore()}
	n := a.newNode(&root, nil)
	a.root = a.insert(n)
	a.Reconcile(a.root)
	return a
}

// Root returns the root node.
func (a *Arena) Root() NodeID {
	return a.root
}

// Len returns the number of live nodes.
func (a *Arena) Len() int {
	return len(a.slots) - len(a.free)
}

// Contains reports whether id refers to a live node.
func (a *Arena) Contains(id NodeID) bool {
	_, ok := a.lookup(id)
	return ok
}

// Parent returns id's parent, or the zero NodeID for the root.
func (a *Arena) Parent(id NodeID) NodeID {
	return a.node(id).parent
}

// Children returns a copy of id's children in composition order.
func (a *Arena) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), a.node(id).children...)
}

// Rect returns the rect assigned to id by the last layout.
func (a *Arena) Rect(id NodeID) Rect {
	return a.node(id).rect
}

// Attributes returns id's current attributes.
func (a *Arena) Attributes(id NodeID) Attributes {
	return a.node(id).attrs
}

// Measure returns the measure id's parent lays it out with.
func (a *Arena) Measure(id NodeID) Measure {
	return a.node(id).measure
}

func (a *Arena) lookup(id NodeID) (*node, bool) {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[id.index]
	if s.node == nil || s.generation != id.generation {
		return nil, false
	}
	return s.node, true
}

// node resolves id or panics. A stale handle is a programming error.
func (a *Arena) node(id NodeID) *node {
	n, ok := a.lookup(id)
	if !ok {
		panic(&StaleNodeError{ID: id})
	}
	return n
}

func (a *Arena) insert(n *node) NodeID {
	a.orderValid = false
	if k := len(a.free); k > 0 {
		idx := a.free[k-1]
		a.free = a.free[:k-1]
		a.slots[idx].node = n
		return NodeID{index: idx, generation: a.slots[idx].generation}
	}
	a.slots = append(a.slots, slot{node: n, generation: 1})
	return NodeID{index: uint32(len(a.slots) - 1), generation: 1}
}

// release frees id's slot and the state it owns. Children are not touched.
func (a *Arena) release(id NodeID) {
	n := a.node(id)
	a.releaseState(n)
	s := &a.slots[id.index]
	s.node = nil
	s.generation++
	a.free = append(a.free, id.index)
	a.orderValid = false
}

func (a *Arena) releaseState(n *node) {
	for _, k := range n.states {
		a.states.release(k)
	}
	n.states = nil
}

// Traversal returns node handles in draw order: pre-order, parents before
// children, siblings in composition order re-sorted stably by layer.
// Dispatch walks the same order backwards.
func (a *Arena) Traversal() []NodeID {
	return append([]NodeID(nil), a.traversal()...)
}

func (a *Arena) traversal() []NodeID {
	if a.orderValid {
		return a.order
	}
	a.order = a.order[:0]
	stack := []NodeID{a.root}
	var sorted []NodeID
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a.order = append(a.order, id)

		children := a.node(id).children
		if a.layered(children) {
			sorted = append(sorted[:0], children...)
			sort.SliceStable(sorted, func(i, j int) bool {
				return a.node(sorted[i]).attrs.Layer < a.node(sorted[j]).attrs.Layer
			})
			children = sorted
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	a.orderValid = true
	return a.order
}

func (a *Arena) layered(children []NodeID) bool {
	for _, c := range children {
		if a.node(c).attrs.Layer != 0 {
			return true
		}
	}
	return false
}

// HitTest returns the topmost node whose visible region contains (x, y),
// or the zero NodeID. Topmost is the last in draw order.
func (a *Arena) HitTest(x, y int) NodeID {
	order := a.traversal()
	for i := len(order) - 1; i >= 0; i-- {
		if a.node(order[i]).visible().ContainsPoint(x, y) {
			return order[i]
		}
	}
	return NodeID{}
}

// Render lays the tree out over buf and runs every draw callback in
// traversal order.
func (a *Arena) Render(buf *Buffer) {
	a.Layout(Rect{Width: buf.Width(), Height: buf.Height()})
	for _, id := range a.traversal() {
		n := a.node(id)
		if n.draw == nil {
			continue
		}
		n.draw(newCanvas(buf, n))
	}
}

func siteString(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return fmt.Sprintf("pc=%#x", pc)
	}
	file, line := fn.FileLine(pc)
	return fmt.Sprintf("%s:%d", file, line)
}
