package model

// Node is a graph vertex. It belongs to exactly one network for its
// lifetime and may bind weakly to one OTU. Edges are owned by the network;
// a node holds no direct parent pointer, parentage is derived from the
// network's incoming-edge index.
type Node struct {
	annotatable

	id      string
	label   string
	network *Network
	otu     *OTU
}

// ID returns the element id.
func (n *Node) ID() string {
	return n.id
}

// Label returns the node label.
func (n *Node) Label() string {
	return n.label
}

// SetLabel sets the node label.
func (n *Node) SetLabel(label string) {
	n.label = label
}

// Network returns the network that owns this node.
func (n *Node) Network() *Network {
	return n.network
}

// OTU returns the bound taxon, or nil.
func (n *Node) OTU() *OTU {
	return n.otu
}

// SetOTU binds the node to a taxon. The OTU must belong to the OTUs
// container bound to this node's tree block; no ownership transfers.
// A nil OTU clears the binding.
func (n *Node) SetOTU(otu *OTU) error {
	if otu == nil {
		n.otu = nil
		return nil
	}
	if n.network.block != nil && otu.container != n.network.block.otus {
		return opError("bind", "node", n.id, ErrInvalidReference)
	}
	n.otu = otu
	return nil
}

// ParentEdge returns the unique incoming edge, or nil for a parentless
// node. With more than one incoming edge (a network join) the first
// attached edge wins; tree invariants are enforced by Tree, not here.
func (n *Node) ParentEdge() *Edge {
	in := n.network.incoming[n]
	if len(in) == 0 {
		return nil
	}
	return in[0]
}

// Parent returns the source node of the parent edge, or nil for a root.
func (n *Node) Parent() *Node {
	if e := n.ParentEdge(); e != nil {
		return e.source
	}
	return nil
}

// ChildEdges returns the outgoing edges in attachment order.
func (n *Node) ChildEdges() []*Edge {
	out := make([]*Edge, len(n.network.outgoing[n]))
	copy(out, n.network.outgoing[n])
	return out
}

// Children returns the target nodes of the outgoing edges in attachment
// order.
func (n *Node) Children() []*Node {
	edges := n.network.outgoing[n]
	children := make([]*Node, len(edges))
	for i, e := range edges {
		children[i] = e.target
	}
	return children
}

// IsTerminal reports whether the node has no outgoing edges. An isolated
// node counts as terminal.
func (n *Node) IsTerminal() bool {
	return len(n.network.outgoing[n]) == 0
}

// IsInternal reports whether the node has at least one outgoing edge. An
// isolated node is terminal and root, never internal.
func (n *Node) IsInternal() bool {
	return len(n.network.outgoing[n]) > 0
}

// IsRoot reports whether the node has no incoming edges.
func (n *Node) IsRoot() bool {
	return len(n.network.incoming[n]) == 0
}
