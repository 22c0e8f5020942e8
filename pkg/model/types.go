// Package model implements the NeXML object model: taxa (OTU/OTUs),
// phylogenetic trees and networks as doubly-linked annotated graphs, and the
// document container that owns them. The model is a single-writer, in-memory
// structure; serialization lives in the nexml and newick packages.
package model

import (
	"fmt"
	"math"
)

// WeightKind selects the numeric domain of edge lengths in a network.
// It is fixed when the network is created and never changes.
type WeightKind uint8

const (
	IntKind WeightKind = iota
	FloatKind
)

// String returns the string representation of a weight kind.
func (k WeightKind) String() string {
	switch k {
	case IntKind:
		return "integer"
	case FloatKind:
		return "float"
	default:
		return "unknown"
	}
}

// Length is a tagged edge length: an integer or a floating-point value,
// never both.
type Length struct {
	kind WeightKind
	i    int64
	f    float64
}

// IntLength creates an integer-kind length.
func IntLength(v int64) Length {
	return Length{kind: IntKind, i: v}
}

// FloatLength creates a float-kind length.
func FloatLength(v float64) Length {
	return Length{kind: FloatKind, f: v}
}

// Kind returns the length's numeric kind.
func (l Length) Kind() WeightKind {
	return l.kind
}

// AsInt returns the value as an int64. A float-kind length converts only
// when it carries a whole number.
func (l Length) AsInt() (int64, error) {
	switch l.kind {
	case IntKind:
		return l.i, nil
	case FloatKind:
		if l.IsIntegral() {
			return int64(l.f), nil
		}
		return 0, fmt.Errorf("length %v is fractional: %w", l.f, ErrTypeMismatch)
	}
	return 0, ErrTypeMismatch
}

// AsFloat returns the value as a float64. Integer-kind lengths always
// convert.
func (l Length) AsFloat() float64 {
	if l.kind == IntKind {
		return float64(l.i)
	}
	return l.f
}

// IsIntegral reports whether the value is a whole number regardless of kind.
func (l Length) IsIntegral() bool {
	if l.kind == IntKind {
		return true
	}
	return l.f == math.Trunc(l.f) && !math.IsInf(l.f, 0) && !math.IsNaN(l.f)
}

// String formats the value the way it is written to a length attribute.
func (l Length) String() string {
	if l.kind == IntKind {
		return fmt.Sprintf("%d", l.i)
	}
	return fmt.Sprintf("%g", l.f)
}
