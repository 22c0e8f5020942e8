package model

// Annotation is a single property/value pair attached to an annotatable
// entity. The value is opaque to the model; the serializer restricts it to
// scalar types.
type Annotation struct {
	Property string
	Value    any
}

// Annotatable is the capability shared by every entity that can carry
// annotations: documents, OTU containers and their sets, OTUs, trees,
// networks, nodes and edges.
type Annotatable interface {
	// AddAnnotationValue appends a property/value annotation.
	AddAnnotationValue(property string, value any)
	// AnnotationValues returns every value recorded for property, in
	// insertion order. The result is never nil; a property with no
	// annotations yields an empty slice.
	AnnotationValues(property string) []any
	// Annotations returns a copy of all annotations in insertion order.
	Annotations() []Annotation
}

// annotatable is the embedded implementation of Annotatable.
type annotatable struct {
	annotations []Annotation
}

func (a *annotatable) AddAnnotationValue(property string, value any) {
	a.annotations = append(a.annotations, Annotation{Property: property, Value: value})
}

func (a *annotatable) AnnotationValues(property string) []any {
	values := make([]any, 0)
	for _, an := range a.annotations {
		if an.Property == property {
			values = append(values, an.Value)
		}
	}
	return values
}

func (a *annotatable) Annotations() []Annotation {
	out := make([]Annotation, len(a.annotations))
	copy(out, a.annotations)
	return out
}
