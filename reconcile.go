package vtui

// newNode builds a node from d by running its factory.
func (a *Arena) newNode(d *Descriptor, parentScope *scope) *node {
	n := &node{
		identity: d.identity,
		factory:  d.factory,
		props:    d.props,
		equal:    d.equal,
		measure:  Percent(1),
	}
	if parentScope != nil {
		n.scope = parentScope.child()
	} else {
		n.scope = &scope{}
	}
	d.build(&Component{arena: a, node: n})
	n.ownMeasure, n.ownLayer = n.measure, n.attrs.Layer
	d.apply(n)
	return n
}

// Reconcile re-runs the composer of id and of every node below it, diffing
// each fresh child list against the previous one.
//
// A declared child whose identity matches a previous child with equal props
// reuses that node and its state. Matching identity with different props
// rebuilds the node in place: same NodeID, fresh state, fresh subtree.
// Previous children that are no longer declared are removed with their
// subtrees. Reused children still reconcile their own children.
//
// Declaring two children with the same identity panics with a
// *DuplicateIdentityError.
func (a *Arena) Reconcile(id NodeID) {
	stack := []NodeID{id}
	var stats reconcileStats
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a.reconcileChildren(cur, &stats)

		children := a.node(cur).children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	a.orderValid = false
	if stats.changed() {
		logger.Printf("reconcile %v: built=%d rebuilt=%d removed=%d reused=%d live=%d",
			id, stats.built, stats.rebuilt, stats.removed, stats.reused, a.Len())
	}
}

type reconcileStats struct {
	built, rebuilt, removed, reused int
}

func (s *reconcileStats) changed() bool {
	return s.built+s.rebuilt+s.removed > 0
}

func (a *Arena) reconcileChildren(id NodeID, stats *reconcileStats) {
	n := a.node(id)
	descs := compose(n)
	checkIdentities(id, descs)

	prev := make(map[identity]NodeID, len(n.children))
	for _, c := range n.children {
		prev[a.node(c).identity] = c
	}

	next := make([]NodeID, 0, len(descs))
	for i := range descs {
		d := &descs[i]
		old, ok := prev[d.identity]
		if !ok {
			child := a.newNode(d, n.scope)
			child.parent = id
			next = append(next, a.insert(child))
			stats.built++
			continue
		}
		delete(prev, d.identity)

		if a.node(old).sameProps(d) {
			d.apply(a.node(old))
			stats.reused++
		} else {
			a.rebuild(old, d, n.scope)
			stats.rebuilt++
		}
		next = append(next, old)
	}

	for _, c := range n.children {
		if prev[a.node(c).identity] == c {
			stats.removed += a.remove(c)
		}
	}
	n.children = next
}

// compose runs n's composer and returns what it declared.
func compose(n *node) []Descriptor {
	if n.compose == nil {
		return nil
	}
	ui := &Ui{}
	n.compose(ui)
	return ui.children
}

func checkIdentities(parent NodeID, descs []Descriptor) {
	if len(descs) < 2 {
		return
	}
	seen := make(map[identity]int, len(descs))
	for i := range descs {
		idn := descs[i].identity
		if j, dup := seen[idn]; dup {
			panic(&DuplicateIdentityError{
				Parent: parent,
				First:  j,
				Second: i,
				Site:   siteString(idn.site),
				Key:    idn.key,
				HasKey: idn.keyed,
			})
		}
		seen[idn] = i
	}
}

// rebuild replaces the node at id with a fresh one built from d. The old
// subtree and state are torn down first. id stays valid.
func (a *Arena) rebuild(id NodeID, d *Descriptor, parentScope *scope) {
	old := a.node(id)
	for _, c := range old.children {
		a.remove(c)
	}
	old.children = nil
	a.releaseState(old)

	fresh := a.newNode(d, parentScope)
	fresh.parent = old.parent
	a.slots[id.index].node = fresh
	a.orderValid = false
}

// remove tears down id and its whole subtree, returning the number of
// nodes freed.
func (a *Arena) remove(id NodeID) int {
	if id == a.root {
		panic("vtui: cannot remove the root node")
	}
	count := 0
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, a.node(cur).children...)
		a.release(cur)
		count++
	}
	return count
}
