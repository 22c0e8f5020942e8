package model

// OTU is an operational taxonomic unit: a labeled taxon identity owned by an
// OTUs container and referenced weakly by tree nodes.
type OTU struct {
	annotatable

	id        string
	label     string
	container *OTUs
}

// ID returns the element id.
func (o *OTU) ID() string {
	return o.id
}

// Label returns the taxon label.
func (o *OTU) Label() string {
	return o.label
}

// SetLabel sets the taxon label.
func (o *OTU) SetLabel(label string) {
	o.label = label
}

// Container returns the OTUs container that owns this OTU.
func (o *OTU) Container() *OTUs {
	return o.container
}
