package vtui

import (
	"reflect"
	"runtime"
)

// Factory builds a component from its props. It registers the draw
// callback, listeners, state and composer on c. A factory runs once per
// mount; it runs again only when the node is rebuilt.
type Factory[P any] func(c *Component, props P)

// Equaler is implemented by props types that define their own equality.
type Equaler[P any] interface {
	Equal(other P) bool
}

// Attributes are the per-node settings read by layout, draw and dispatch.
type Attributes struct {
	Flow      Flow
	Placement Placement
	Focusable bool
	Clipped   bool // children and own drawing are cut to this node's rect
	OffsetX   int  // content scroll, applied to children and the canvas
	OffsetY   int
	Margin    Insets
	Padding   Insets
	Layer     int // higher layers draw later among siblings
}

// identity matches a descriptor to a previous child: the call site of the
// Child call plus an optional explicit key.
type identity struct {
	site  uintptr
	key   int
	keyed bool
}

// node is the arena-resident form of one component instance.
type node struct {
	identity identity
	factory  uintptr
	props    any
	equal    func(a, b any) bool

	draw      func(*Canvas)
	listeners listenerStore
	states    []stateKey
	compose   func(*Ui)
	scope     *scope

	attrs   Attributes
	measure Measure // this node's share of its parent

	// what the factory itself set, restored when a parent override goes away
	ownMeasure Measure
	ownLayer   int

	parent   NodeID
	children []NodeID

	// layout output
	rect    Rect
	clip    Rect // clip inherited from clipping ancestors
	clipped bool
}

func (n *node) visible() Rect {
	if !n.clipped {
		return n.rect
	}
	return n.rect.Intersect(n.clip)
}

// content is the visible part of the area inside n's padding.
func (n *node) content() Rect {
	inner := n.rect.Inset(n.attrs.Padding)
	if n.clipped {
		inner = inner.Intersect(n.clip)
	}
	return inner
}

func (n *node) sameProps(d *Descriptor) bool {
	if n.factory != d.factory {
		return false
	}
	return d.equal(d.props, n.props)
}

// Component is the builder handed to a Factory.
type Component struct {
	arena *Arena
	node  *node
}

// Draw sets the callback that paints this component.
// Draw callbacks run every frame in traversal order and must not block.
func (c *Component) Draw(fn func(*Canvas)) {
	c.node.draw = fn
}

// Compose sets the function that lists this component's children.
// It runs on every reconciliation, so it may read state to decide what
// children exist.
func (c *Component) Compose(fn func(*Ui)) {
	c.node.compose = fn
}

// SetFlow sets the axis children are stacked on.
func (c *Component) SetFlow(f Flow) {
	c.node.attrs.Flow = f
}

// SetPlacement sets whether children may overflow this component.
func (c *Component) SetPlacement(p Placement) {
	c.node.attrs.Placement = p
}

// SetMeasure sets this component's default share of its parent.
// UiNode.Measure overrides it from the parent side.
func (c *Component) SetMeasure(m Measure) {
	c.node.measure = m
}

// SetFocusable marks the component as able to take focus.
func (c *Component) SetFocusable(focusable bool) {
	c.node.attrs.Focusable = focusable
}

// SetClipped stops the component and its subtree drawing outside its rect.
func (c *Component) SetClipped(clipped bool) {
	c.node.attrs.Clipped = clipped
}

// SetOffset sets the initial content offset. Listeners change it later with
// EventContext.SetOffset.
func (c *Component) SetOffset(x, y int) {
	c.node.attrs.OffsetX = x
	c.node.attrs.OffsetY = y
}

// SetMargin sets space left empty around the component.
func (c *Component) SetMargin(in Insets) {
	c.node.attrs.Margin = in
}

// SetPadding sets space between the component's edge and its children.
func (c *Component) SetPadding(in Insets) {
	c.node.attrs.Padding = in
}

// SetLayer sets the draw layer among siblings.
func (c *Component) SetLayer(layer int) {
	c.node.attrs.Layer = layer
}

// Descriptor describes a child that hasn't been materialized yet.
// Descriptors exist only while a composer runs.
type Descriptor struct {
	identity identity
	factory  uintptr
	props    any
	equal    func(a, b any) bool
	build    func(*Component)

	measure  Measure
	hasMeas  bool
	layer    int
	hasLayer bool
}

// apply sets n's measure and layer from d's overrides, falling back to
// what n's factory set when d has none.
func (d *Descriptor) apply(n *node) {
	n.measure = n.ownMeasure
	if d.hasMeas {
		n.measure = d.measure
	}
	n.attrs.Layer = n.ownLayer
	if d.hasLayer {
		n.attrs.Layer = d.layer
	}
}

// Describe returns a descriptor for a root component.
func Describe[P comparable](factory Factory[P], props P) Descriptor {
	return describe(factory, props, comparableEqual[P], 2)
}

func describe[P any](factory Factory[P], props P, eq func(a, b any) bool, skip int) Descriptor {
	pc, _, _, _ := runtime.Caller(skip)
	return Descriptor{
		identity: identity{site: pc},
		factory:  reflect.ValueOf(factory).Pointer(),
		props:    props,
		equal:    eq,
		build:    func(c *Component) { factory(c, props) },
	}
}

func comparableEqual[P comparable](a, b any) bool {
	pa, ok := a.(P)
	if !ok {
		return false
	}
	pb, ok := b.(P)
	return ok && pa == pb
}

func equalerEqual[P Equaler[P]](a, b any) bool {
	pa, ok := a.(P)
	if !ok {
		return false
	}
	pb, ok := b.(P)
	return ok && pa.Equal(pb)
}

// Ui collects the children a composer declares.
type Ui struct {
	children []Descriptor
}

// Len returns the number of children declared so far.
func (ui *Ui) Len() int {
	return len(ui.children)
}

// Child declares a child built by factory with props.
//
// Children match their previous incarnation by call site. A call site that
// runs more than once per composition (a loop) must give each child a
// distinct Key.
func Child[P comparable](ui *Ui, factory Factory[P], props P) *UiNode {
	ui.children = append(ui.children, describe(factory, props, comparableEqual[P], 2))
	return &UiNode{ui: ui, index: len(ui.children) - 1}
}

// ChildEqual is Child for props that aren't comparable with ==.
func ChildEqual[P Equaler[P]](ui *Ui, factory Factory[P], props P) *UiNode {
	ui.children = append(ui.children, describe(factory, props, equalerEqual[P], 2))
	return &UiNode{ui: ui, index: len(ui.children) - 1}
}

// UiNode configures a declared child from the parent side.
type UiNode struct {
	ui    *Ui
	index int
}

func (u *UiNode) desc() *Descriptor {
	return &u.ui.children[u.index]
}

// Key disambiguates children declared from the same call site.
func (u *UiNode) Key(key int) *UiNode {
	d := u.desc()
	d.identity.key = key
	d.identity.keyed = true
	return u
}

// Measure overrides the child's own measure.
func (u *UiNode) Measure(m Measure) *UiNode {
	d := u.desc()
	d.measure = m
	d.hasMeas = true
	return u
}

// Layer overrides the child's draw layer.
func (u *UiNode) Layer(layer int) *UiNode {
	d := u.desc()
	d.layer = layer
	d.hasLayer = true
	return u
}
