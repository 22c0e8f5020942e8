package model

import (
	"golang.org/x/exp/slices"
)

// otuSet is a named subset of a container's OTUs. Sets carry their own
// annotations.
type otuSet struct {
	annotatable

	name    string
	members []*OTU
}

// OTUs owns an ordered collection of OTU entities and named subsets over
// them. Insertion order is significant for serialization.
type OTUs struct {
	annotatable

	id    string
	label string
	doc   *Document
	otus  []*OTU
	sets  []*otuSet
}

// ID returns the element id.
func (c *OTUs) ID() string {
	return c.id
}

// Label returns the container label.
func (c *OTUs) Label() string {
	return c.label
}

// SetLabel sets the container label.
func (c *OTUs) SetLabel(label string) {
	c.label = label
}

// CreateOTU creates a new OTU, appends it to the container's ordered taxon
// list and returns it for further mutation.
func (c *OTUs) CreateOTU() *OTU {
	otu := &OTU{
		id:        newID("otu"),
		container: c,
	}
	c.otus = append(c.otus, otu)
	return otu
}

// AllOTUs returns the container's OTUs in insertion order. The returned
// slice is a copy; mutation goes through CreateOTU and RemoveOTU.
func (c *OTUs) AllOTUs() []*OTU {
	out := make([]*OTU, len(c.otus))
	copy(out, c.otus)
	return out
}

// Contains reports whether otu is a member of this container.
func (c *OTUs) Contains(otu *OTU) bool {
	return slices.Contains(c.otus, otu)
}

// RemoveOTU removes an OTU from the container. The removal cascades: the
// OTU leaves every named set, and every node in a tree block bound to this
// container drops its binding to the OTU. Nodes themselves are not deleted.
func (c *OTUs) RemoveOTU(otu *OTU) {
	idx := slices.Index(c.otus, otu)
	if idx < 0 {
		return
	}
	c.otus = slices.Delete(c.otus, idx, idx+1)
	for _, set := range c.sets {
		if i := slices.Index(set.members, otu); i >= 0 {
			set.members = slices.Delete(set.members, i, i+1)
		}
	}
	if c.doc != nil {
		c.doc.detachOTU(c, otu)
	}
	otu.container = nil
}

// CreateOTUSet creates a new named, empty subset. The name must be unique
// within the container.
func (c *OTUs) CreateOTUSet(name string) error {
	if c.findSet(name) != nil {
		return opError("create", "otu set", name, ErrDuplicateName)
	}
	c.sets = append(c.sets, &otuSet{name: name})
	return nil
}

// SetNames returns the names of all sets in creation order.
func (c *OTUs) SetNames() []string {
	names := make([]string, len(c.sets))
	for i, set := range c.sets {
		names[i] = set.name
	}
	return names
}

// AddOTUToSet adds a member OTU to a named set. The OTU must belong to this
// container and the set must exist.
func (c *OTUs) AddOTUToSet(name string, otu *OTU) error {
	set := c.findSet(name)
	if set == nil {
		return opError("add to", "otu set", name, ErrUnknownSet)
	}
	if !c.Contains(otu) {
		return opError("add to", "otu set", name, ErrInvalidReference)
	}
	if !slices.Contains(set.members, otu) {
		set.members = append(set.members, otu)
	}
	return nil
}

// RemoveOTUFromSet removes an OTU from a named set.
func (c *OTUs) RemoveOTUFromSet(name string, otu *OTU) error {
	set := c.findSet(name)
	if set == nil {
		return opError("remove from", "otu set", name, ErrUnknownSet)
	}
	if !c.Contains(otu) {
		return opError("remove from", "otu set", name, ErrInvalidReference)
	}
	if i := slices.Index(set.members, otu); i >= 0 {
		set.members = slices.Delete(set.members, i, i+1)
	}
	return nil
}

// OTUsFromSet returns the members of a named set in insertion order.
func (c *OTUs) OTUsFromSet(name string) ([]*OTU, error) {
	set := c.findSet(name)
	if set == nil {
		return nil, opError("read", "otu set", name, ErrUnknownSet)
	}
	out := make([]*OTU, len(set.members))
	copy(out, set.members)
	return out, nil
}

// AddAnnotationToSet attaches an annotation to a named set rather than to an
// individual OTU.
func (c *OTUs) AddAnnotationToSet(name, property string, value any) error {
	set := c.findSet(name)
	if set == nil {
		return opError("annotate", "otu set", name, ErrUnknownSet)
	}
	set.AddAnnotationValue(property, value)
	return nil
}

// SetAnnotationValues returns the values recorded for property on a named
// set.
func (c *OTUs) SetAnnotationValues(name, property string) ([]any, error) {
	set := c.findSet(name)
	if set == nil {
		return nil, opError("read", "otu set", name, ErrUnknownSet)
	}
	return set.AnnotationValues(property), nil
}

func (c *OTUs) findSet(name string) *otuSet {
	for _, set := range c.sets {
		if set.name == name {
			return set
		}
	}
	return nil
}
