package model

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDuplicateName    = errors.New("name already in use")
	ErrInvalidReference = errors.New("reference crosses container boundary")
	ErrTypeMismatch     = errors.New("value kind does not match edge weight kind")
	ErrCycleDetected    = errors.New("cycle detected")
	ErrMultipleRoots    = errors.New("multiple parentless nodes")
	ErrNoRoot           = errors.New("no parentless node")
	ErrUnknownSet       = errors.New("set not defined")
	ErrNotImplemented   = errors.New("not implemented")
)

// ModelError provides structured error information for model operations.
type ModelError struct {
	Op     string // Operation that failed (e.g., "SetLength", "AddOTUToSet")
	Entity string // Entity kind (e.g., "node", "edge", "otu set")
	ID     string // Element ID (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

func opError(op, entity, id string, cause error) error {
	return &ModelError{Op: op, Entity: entity, ID: id, Cause: cause}
}

// IsReferenceError reports whether err stems from a cross-container or
// cross-network reference.
func IsReferenceError(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

// IsRootError reports whether err indicates an ill-rooted tree.
func IsRootError(err error) bool {
	return errors.Is(err, ErrMultipleRoots) || errors.Is(err, ErrNoRoot)
}
