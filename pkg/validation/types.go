// Package validation checks documents for structural problems that the
// object model cannot rule out at construction time: extra roots, cycles,
// unreachable nodes, half-attached edges. Checks collect every violation
// rather than stopping at the first, so a caller can report all of them in
// one pass.
package validation

import (
	"github.com/phylograph/nexml/pkg/model"
)

// Severity indicates how serious a violation is. Error-level violations
// make a document unserializable or semantically broken; warnings are
// suspicious but legal.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes a structural violation.
type ViolationType int

const (
	MultipleRoots ViolationType = iota
	NoRoot
	CycleFound
	UnattachedEdge
	UnreachableNode
	UnlabeledTaxon
	DuplicateLabel
)

func (vt ViolationType) String() string {
	switch vt {
	case MultipleRoots:
		return "MultipleRoots"
	case NoRoot:
		return "NoRoot"
	case CycleFound:
		return "CycleFound"
	case UnattachedEdge:
		return "UnattachedEdge"
	case UnreachableNode:
		return "UnreachableNode"
	case UnlabeledTaxon:
		return "UnlabeledTaxon"
	case DuplicateLabel:
		return "DuplicateLabel"
	default:
		return "Unknown"
	}
}

// Violation is a single structural problem found in a document. EntityID is
// the element id of the offending node, edge, taxon, or graph.
type Violation struct {
	Type     ViolationType
	Severity Severity
	GraphID  string
	EntityID string
	Check    string
	Message  string
}

// Check is a single validation rule run against a document.
type Check interface {
	// Validate inspects the document and returns every violation found,
	// empty when the document passes.
	Validate(doc *model.Document) ([]Violation, error)

	// Name returns a human-readable name for the check.
	Name() string
}
