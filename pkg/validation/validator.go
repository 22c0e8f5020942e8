package validation

import (
	"time"

	"github.com/phylograph/nexml/pkg/model"
)

// Result holds the outcome of validating a document.
type Result struct {
	Valid      bool
	Violations []Violation
	CheckedAt  time.Time
}

// BySeverity returns the violations at the given severity.
func (r *Result) BySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range r.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// ByType returns the violations of the given type.
func (r *Result) ByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range r.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Validator runs a set of checks against a document.
type Validator struct {
	checks []Check
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{checks: make([]Check, 0)}
}

// NewDefaultValidator creates a validator loaded with every built-in check.
func NewDefaultValidator() *Validator {
	v := NewValidator()
	v.AddChecks([]Check{
		&RootednessCheck{},
		&AcyclicityCheck{},
		&EdgeAttachmentCheck{},
		&ReachabilityCheck{},
		&TaxaCheck{},
	})
	return v
}

// AddCheck registers a check.
func (v *Validator) AddCheck(check Check) {
	v.checks = append(v.checks, check)
}

// AddChecks registers several checks at once.
func (v *Validator) AddChecks(checks []Check) {
	v.checks = append(v.checks, checks...)
}

// Checks returns the registered checks.
func (v *Validator) Checks() []Check {
	return v.checks
}

// Validate runs every check and aggregates the violations. A document is
// valid when no check reports an Error-level violation; warnings and info
// do not fail it.
func (v *Validator) Validate(doc *model.Document) (*Result, error) {
	result := &Result{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}
	for _, check := range v.checks {
		violations, err := check.Validate(doc)
		if err != nil {
			return nil, err
		}
		result.Violations = append(result.Violations, violations...)
	}
	for _, violation := range result.Violations {
		if violation.Severity == Error {
			result.Valid = false
			break
		}
	}
	return result, nil
}
