package model

// Graph is either a *Network or a *Tree inside a tree block.
type Graph interface {
	Annotatable
	ID() string
	Label() string
	SetLabel(string)
	Kind() WeightKind
	Nodes() []*Node
	Edges() []*Edge
	Block() *TreeBlock
}

// Network owns a set of nodes and a set of directed edges of a single,
// fixed weight kind. Every edge endpoint is a member node; the network
// maintains incremental incoming/outgoing adjacency indexes so that parent
// lookups never rescan the edge list.
type Network struct {
	annotatable

	id    string
	label string
	kind  WeightKind
	block *TreeBlock

	nodes []*Node
	edges []*Edge

	incoming map[*Node][]*Edge
	outgoing map[*Node][]*Edge
}

func newNetwork(kind WeightKind, block *TreeBlock, idPrefix string) Network {
	return Network{
		id:       newID(idPrefix),
		kind:     kind,
		block:    block,
		incoming: make(map[*Node][]*Edge),
		outgoing: make(map[*Node][]*Edge),
	}
}

// ID returns the element id.
func (nw *Network) ID() string {
	return nw.id
}

// Label returns the network label.
func (nw *Network) Label() string {
	return nw.label
}

// SetLabel sets the network label.
func (nw *Network) SetLabel(label string) {
	nw.label = label
}

// Kind returns the network's weight kind, fixed at creation.
func (nw *Network) Kind() WeightKind {
	return nw.kind
}

// Block returns the tree block that owns this network.
func (nw *Network) Block() *TreeBlock {
	return nw.block
}

// CreateNode allocates a new node owned by this network.
func (nw *Network) CreateNode() *Node {
	n := &Node{
		id:      newID("node"),
		network: nw,
	}
	nw.nodes = append(nw.nodes, n)
	return n
}

// CreateEdge allocates a new edge with unattached endpoints. Endpoints are
// attached with SetSource and SetTarget, which enforce membership.
func (nw *Network) CreateEdge() *Edge {
	e := &Edge{
		id:      newID("edge"),
		network: nw,
	}
	nw.edges = append(nw.edges, e)
	return e
}

// Nodes returns the owned nodes in creation order.
func (nw *Network) Nodes() []*Node {
	out := make([]*Node, len(nw.nodes))
	copy(out, nw.nodes)
	return out
}

// Edges returns the owned edges in creation order.
func (nw *Network) Edges() []*Edge {
	out := make([]*Edge, len(nw.edges))
	copy(out, nw.edges)
	return out
}

// detachOTU clears every node binding to otu. Called by OTUs.RemoveOTU
// through the document cascade.
func (nw *Network) detachOTU(otu *OTU) {
	for _, n := range nw.nodes {
		if n.otu == otu {
			n.otu = nil
		}
	}
}
