package vtui

import "reflect"

// maxFollowUps bounds the FocusChanged passes one Dispatch may trigger.
const maxFollowUps = 64

type commandKind uint8

const (
	cmdFocus commandKind = iota
	cmdResign
	cmdShutdown
	cmdOffset
)

// command is a side effect a listener asked for. Commands are queued while
// listeners run and applied in order once the pass is over.
type command struct {
	kind commandKind
	node NodeID
	x, y int
}

// Context is the state that outlives a single dispatch pass: focus, the
// last pointer target and the shutdown flag.
type Context struct {
	focused  NodeID
	target   NodeID
	shutdown bool

	queue       []command
	focusQueued bool
	pending     []any // events raised by the last commit
}

// NewContext returns a Context with nothing focused.
func NewContext() *Context {
	return &Context{}
}

// Focused returns the focused node, or the zero NodeID.
func (c *Context) Focused() NodeID {
	return c.focused
}

// Target returns the node hit by the most recent pointer event.
func (c *Context) Target() NodeID {
	return c.target
}

// ShutdownRequested reports whether any listener has asked to stop. Once
// set it stays set.
func (c *Context) ShutdownRequested() bool {
	return c.shutdown
}

func (c *Context) enqueue(cmd command) {
	c.queue = append(c.queue, cmd)
}

// commit applies queued commands in the order they were queued.
func (c *Context) commit(a *Arena) {
	queue := c.queue
	c.queue = nil
	c.focusQueued = false

	for _, cmd := range queue {
		switch cmd.kind {
		case cmdFocus:
			c.setFocus(a, cmd.node)
		case cmdResign:
			if c.focused == cmd.node {
				c.setFocus(a, NodeID{})
			}
		case cmdShutdown:
			if !c.shutdown {
				logger.Printf("shutdown requested by %v", cmd.node)
			}
			c.shutdown = true
		case cmdOffset:
			if n, ok := a.lookup(cmd.node); ok {
				n.attrs.OffsetX = cmd.x
				n.attrs.OffsetY = cmd.y
			}
		}
	}
}

// setFocus moves focus to id. Removed or non-focusable nodes are ignored.
// A FocusChanged event is queued only when focus actually moves.
func (c *Context) setFocus(a *Arena, id NodeID) {
	if !id.IsZero() {
		n, ok := a.lookup(id)
		if !ok || !n.attrs.Focusable {
			logger.Printf("focus request for %v ignored", id)
			return
		}
	}
	if id == c.focused {
		return
	}
	prev := c.focused
	c.focused = id
	c.pending = append(c.pending, FocusChanged{Previous: prev, Current: id})
	logger.Printf("focus %v -> %v", prev, id)
}

// prune drops references to nodes that reconciliation removed.
func (c *Context) prune(a *Arena) {
	if !c.focused.IsZero() {
		n, ok := a.lookup(c.focused)
		if !ok || !n.attrs.Focusable {
			logger.Printf("focused %v gone, clearing focus", c.focused)
			c.focused = NodeID{}
		}
	}
	if !c.target.IsZero() && !a.Contains(c.target) {
		c.target = NodeID{}
	}
}

// pass is what listeners see of one dispatch.
type pass struct {
	arena  *Arena
	ctx    *Context
	target NodeID // zero unless the event is a PointerEvent
}

// EventContext is handed to every listener invocation. It is scoped to the
// node whose listener is running.
type EventContext[E any] struct {
	Event E

	node NodeID
	pass *pass
}

// Node returns the node whose listener is running.
func (e *EventContext[E]) Node() NodeID {
	return e.node
}

// Rect returns the node's rect from the last layout.
func (e *EventContext[E]) Rect() Rect {
	return e.pass.arena.node(e.node).rect
}

// Offset returns the node's current content offset.
func (e *EventContext[E]) Offset() (x, y int) {
	a := e.pass.arena.node(e.node).attrs
	return a.OffsetX, a.OffsetY
}

// IsPointerHit reports whether this node is the target of the pointer event
// being dispatched. It is false for events without coordinates.
func (e *EventContext[E]) IsPointerHit() bool {
	return !e.pass.target.IsZero() && e.pass.target == e.node
}

// IsFocused reports whether this node holds focus.
func (e *EventContext[E]) IsFocused() bool {
	return e.pass.ctx.focused == e.node
}

// RequestFocus asks for focus to move to this node after the pass. The
// first request in a pass wins; later ones are dropped.
func (e *EventContext[E]) RequestFocus() {
	ctx := e.pass.ctx
	if ctx.focusQueued {
		return
	}
	ctx.focusQueued = true
	ctx.enqueue(command{kind: cmdFocus, node: e.node})
}

// ResignFocus clears focus after the pass if this node still holds it.
func (e *EventContext[E]) ResignFocus() {
	e.pass.ctx.enqueue(command{kind: cmdResign, node: e.node})
}

// RequestShutdown asks the runtime to stop after the pass.
func (e *EventContext[E]) RequestShutdown() {
	e.pass.ctx.enqueue(command{kind: cmdShutdown, node: e.node})
}

// SetOffset changes this node's content offset after the pass.
func (e *EventContext[E]) SetOffset(x, y int) {
	e.pass.ctx.enqueue(command{kind: cmdOffset, node: e.node, x: x, y: y})
}

// Dispatch routes event through the tree and commits what the listeners
// asked for.
//
// Pointer events are hit-tested first. Listeners then run bottom-up: the
// reverse of draw order, so a child hears an event before its parent. If
// the commit moved focus, the resulting FocusChanged events are dispatched
// the same way before Dispatch returns.
func (a *Arena) Dispatch(event any, ctx *Context) {
	a.dispatch(event, ctx)
	for i := 0; len(ctx.pending) > 0; i++ {
		if i >= maxFollowUps {
			logger.Printf("dropping %d focus events after %d follow-up passes", len(ctx.pending), i)
			ctx.pending = ctx.pending[:0]
			return
		}
		ev := ctx.pending[0]
		ctx.pending = ctx.pending[1:]
		a.dispatch(ev, ctx)
	}
}

func (a *Arena) dispatch(event any, ctx *Context) {
	p := &pass{arena: a, ctx: ctx}
	if pe, ok := event.(PointerEvent); ok {
		x, y := pe.Coords()
		ctx.target = a.HitTest(x, y)
		p.target = ctx.target
	}

	t := reflect.TypeOf(event)
	order := a.traversal()
	for i := len(order) - 1; i >= 0; i-- {
		n := a.node(order[i])
		if n.listeners.len() == 0 {
			continue
		}
		if b, ok := n.listeners.get(t); ok {
			b.dispatch(event, p, order[i])
		}
	}
	ctx.commit(a)
}
