package model

// TreeBlock owns an ordered sequence of trees and networks that share one
// OTUs binding.
type TreeBlock struct {
	annotatable

	id    string
	label string
	doc   *Document
	otus  *OTUs

	graphs []Graph
}

// ID returns the element id.
func (b *TreeBlock) ID() string {
	return b.id
}

// Label returns the block label.
func (b *TreeBlock) Label() string {
	return b.label
}

// SetLabel sets the block label.
func (b *TreeBlock) SetLabel(label string) {
	b.label = label
}

// OTUs returns the taxon container shared by every tree and network in the
// block.
func (b *TreeBlock) OTUs() *OTUs {
	return b.otus
}

// Graphs returns the block's trees and networks in creation order.
func (b *TreeBlock) Graphs() []Graph {
	out := make([]Graph, len(b.graphs))
	copy(out, b.graphs)
	return out
}

// CreateIntTree creates a tree with integer edge lengths.
func (b *TreeBlock) CreateIntTree() *Tree {
	t := &Tree{Network: newNetwork(IntKind, b, "tree")}
	b.graphs = append(b.graphs, t)
	return t
}

// CreateFloatTree creates a tree with floating-point edge lengths.
func (b *TreeBlock) CreateFloatTree() *Tree {
	t := &Tree{Network: newNetwork(FloatKind, b, "tree")}
	b.graphs = append(b.graphs, t)
	return t
}

// CreateIntNetwork creates a network with integer edge lengths.
func (b *TreeBlock) CreateIntNetwork() *Network {
	nw := newNetwork(IntKind, b, "network")
	b.graphs = append(b.graphs, &nw)
	return &nw
}

// CreateFloatNetwork creates a network with floating-point edge lengths.
func (b *TreeBlock) CreateFloatNetwork() *Network {
	nw := newNetwork(FloatKind, b, "network")
	b.graphs = append(b.graphs, &nw)
	return &nw
}
