package domain

import (
	"errors"
	"fmt"
)

// ErrStructuralViolation is returned when a mutation would break the cell tree
// or its terminal references. The model is left untouched.
var ErrStructuralViolation = errors.New("structural violation")

// StructuralError describes a rejected mutation.
type StructuralError struct {
	Op     string // Mutation that was rejected (e.g. "reparent")
	CellID string // Cell the mutation targeted, empty when unknown
	Reason string // Human-readable reason
}

func (e *StructuralError) Error() string {
	if e.CellID == "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, ErrStructuralViolation, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s: %s", e.Op, e.CellID, ErrStructuralViolation, e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructuralViolation
}

// Violation builds a StructuralError.
func Violation(op, cellID, reason string) error {
	return &StructuralError{Op: op, CellID: cellID, Reason: reason}
}
