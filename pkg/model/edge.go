package model

import (
	"golang.org/x/exp/slices"
)

// Edge is a directed connection between two nodes of one network, carrying
// a length typed per the network's weight kind. A root edge (source nil,
// target the tree root) is the single allowed exception to the
// both-endpoints rule.
type Edge struct {
	annotatable

	id       string
	network  *Network
	source   *Node
	target   *Node
	length   *Length
	rootEdge bool
}

// ID returns the element id.
func (e *Edge) ID() string {
	return e.id
}

// Network returns the network that owns this edge.
func (e *Edge) Network() *Network {
	return e.network
}

// Source returns the source node, or nil when unattached (or for a root
// edge).
func (e *Edge) Source() *Node {
	return e.source
}

// Target returns the target node, or nil when unattached.
func (e *Edge) Target() *Node {
	return e.target
}

// IsRootEdge reports whether this is the tree's root edge.
func (e *Edge) IsRootEdge() bool {
	return e.rootEdge
}

// SetSource attaches the source endpoint. The node must belong to the same
// network; on failure the edge and the adjacency indexes are untouched.
func (e *Edge) SetSource(n *Node) error {
	if e.rootEdge {
		return opError("attach", "root edge", e.id, ErrNotImplemented)
	}
	if n == nil || n.network != e.network {
		return opError("attach", "edge", e.id, ErrInvalidReference)
	}
	if e.source != nil {
		e.network.detachOutgoing(e.source, e)
	}
	e.source = n
	e.network.outgoing[n] = append(e.network.outgoing[n], e)
	return nil
}

// SetTarget attaches the target endpoint under the same-network rule.
func (e *Edge) SetTarget(n *Node) error {
	if e.rootEdge {
		return opError("attach", "root edge", e.id, ErrNotImplemented)
	}
	if n == nil || n.network != e.network {
		return opError("attach", "edge", e.id, ErrInvalidReference)
	}
	if e.target != nil {
		e.network.detachIncoming(e.target, e)
	}
	e.target = n
	e.network.incoming[n] = append(e.network.incoming[n], e)
	return nil
}

// Length returns the edge length, or nil when no length is set.
func (e *Edge) Length() *Length {
	return e.length
}

// SetLength sets the edge length. The value's kind must match the network's
// declared weight kind: an integer edge accepts a float value only when it
// is a whole number, a float edge accepts either. On failure the prior
// length is retained.
func (e *Edge) SetLength(v Length) error {
	switch e.network.kind {
	case IntKind:
		i, err := v.AsInt()
		if err != nil {
			return opError("set length on", "edge", e.id, ErrTypeMismatch)
		}
		l := IntLength(i)
		e.length = &l
	case FloatKind:
		l := FloatLength(v.AsFloat())
		e.length = &l
	}
	return nil
}

// ClearLength removes the edge length.
func (e *Edge) ClearLength() {
	e.length = nil
}

func (nw *Network) detachOutgoing(n *Node, e *Edge) {
	if i := slices.Index(nw.outgoing[n], e); i >= 0 {
		nw.outgoing[n] = slices.Delete(nw.outgoing[n], i, i+1)
	}
}

func (nw *Network) detachIncoming(n *Node, e *Edge) {
	if i := slices.Index(nw.incoming[n], e); i >= 0 {
		nw.incoming[n] = slices.Delete(nw.incoming[n], i, i+1)
	}
}
