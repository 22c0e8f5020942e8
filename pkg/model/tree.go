package model

// Tree specializes Network with single-root semantics: at most one node has
// no parent edge, and the edge-induced graph is assumed acyclic and
// connected. Traversals verify acyclicity rather than looping forever.
type Tree struct {
	Network

	rootEdge *Edge
}

// Root returns the unique parentless node. A tree with no parentless node
// fails with ErrNoRoot (some cycle swallowed the root), one with several
// fails with ErrMultipleRoots rather than silently picking one.
func (t *Tree) Root() (*Node, error) {
	var root *Node
	for _, n := range t.nodes {
		if len(t.incoming[n]) > 0 {
			continue
		}
		if root != nil {
			return nil, opError("find root of", "tree", t.id, ErrMultipleRoots)
		}
		root = n
	}
	if root == nil {
		if len(t.nodes) == 0 {
			return nil, nil
		}
		return nil, opError("find root of", "tree", t.id, ErrNoRoot)
	}
	return root, nil
}

// CreateRootEdge creates the edge subtending the root: a parentless edge
// whose target is the current root node. A tree carries at most one.
func (t *Tree) CreateRootEdge() (*Edge, error) {
	if t.rootEdge != nil {
		return nil, opError("create root edge on", "tree", t.id, ErrDuplicateName)
	}
	root, err := t.Root()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, opError("create root edge on", "tree", t.id, ErrNoRoot)
	}
	e := &Edge{
		id:       newID("rootedge"),
		network:  &t.Network,
		target:   root,
		rootEdge: true,
	}
	t.rootEdge = e
	return e, nil
}

// RootEdge returns the root edge, or nil when none is defined.
func (t *Tree) RootEdge() *Edge {
	return t.rootEdge
}

// Terminals returns every node without outgoing edges, in creation order.
// A single isolated node is a terminal.
func (t *Tree) Terminals() []*Node {
	terminals := make([]*Node, 0)
	for _, n := range t.nodes {
		if n.IsTerminal() {
			terminals = append(terminals, n)
		}
	}
	return terminals
}

// Internals returns every node with at least one outgoing edge, in creation
// order.
func (t *Tree) Internals() []*Node {
	internals := make([]*Node, 0)
	for _, n := range t.nodes {
		if n.IsInternal() {
			internals = append(internals, n)
		}
	}
	return internals
}

// NumTerminals counts the terminal nodes.
func (t *Tree) NumTerminals() int {
	count := 0
	for _, n := range t.nodes {
		if n.IsTerminal() {
			count++
		}
	}
	return count
}

// Visitor is applied to each node during traversal. A non-nil error aborts
// the walk and propagates to the caller.
type Visitor func(*Node) error

// VisitDepthFirst walks the tree from the root in pre-order, applying the
// visitor to every reachable node exactly once. Children are visited in
// edge attachment order. A back edge fails the walk with ErrCycleDetected
// instead of recursing forever.
//
// Three-color marking: unvisited nodes are white, nodes on the recursion
// stack gray, finished nodes black. Meeting a gray node means a cycle.
func (t *Tree) VisitDepthFirst(visit Visitor) error {
	root, err := t.Root()
	if err != nil {
		return err
	}
	if root == nil {
		return nil
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[*Node]int, len(t.nodes))

	var walk func(n *Node) error
	walk = func(n *Node) error {
		color[n] = gray
		if err := visit(n); err != nil {
			return err
		}
		for _, e := range t.outgoing[n] {
			switch color[e.target] {
			case gray:
				return opError("traverse", "tree", t.id, ErrCycleDetected)
			case white:
				if err := walk(e.target); err != nil {
					return err
				}
			}
		}
		color[n] = black
		return nil
	}
	return walk(root)
}
