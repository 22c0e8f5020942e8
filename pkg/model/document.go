package model

// Document is the top-level container: zero or more OTUs containers and
// zero or more tree blocks. It is the root of the recursive serialize and
// parse traversals; OTUs blocks precede tree blocks in the output so that
// taxon references always point backwards.
type Document struct {
	annotatable

	otusBlocks []*OTUs
	treeBlocks []*TreeBlock
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// CreateOTUs creates a new, empty OTUs container owned by the document.
func (d *Document) CreateOTUs() *OTUs {
	c := &OTUs{
		id:  newID("otus"),
		doc: d,
	}
	d.otusBlocks = append(d.otusBlocks, c)
	return c
}

// CreateTreeBlock creates a tree block bound to an OTUs container of this
// document. Every tree and network created in the block shares that
// binding.
func (d *Document) CreateTreeBlock(otus *OTUs) (*TreeBlock, error) {
	if otus == nil || otus.doc != d {
		return nil, opError("create", "tree block", "", ErrInvalidReference)
	}
	b := &TreeBlock{
		id:   newID("trees"),
		doc:  d,
		otus: otus,
	}
	d.treeBlocks = append(d.treeBlocks, b)
	return b, nil
}

// OTUsBlocks returns the document's OTUs containers in creation order.
func (d *Document) OTUsBlocks() []*OTUs {
	out := make([]*OTUs, len(d.otusBlocks))
	copy(out, d.otusBlocks)
	return out
}

// TreeBlocks returns the document's tree blocks in creation order.
func (d *Document) TreeBlocks() []*TreeBlock {
	out := make([]*TreeBlock, len(d.treeBlocks))
	copy(out, d.treeBlocks)
	return out
}

// detachOTU clears node bindings to otu in every tree block bound to the
// given container. Part of the OTUs.RemoveOTU cascade.
func (d *Document) detachOTU(container *OTUs, otu *OTU) {
	for _, block := range d.treeBlocks {
		if block.otus != container {
			continue
		}
		for _, g := range block.graphs {
			switch v := g.(type) {
			case *Tree:
				v.Network.detachOTU(otu)
			case *Network:
				v.detachOTU(otu)
			}
		}
	}
}
