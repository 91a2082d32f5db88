package schema

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks input that breaks the upstream data contract,
// such as a score outside [0,1] or an unknown operation tag.
var ErrContractViolation = errors.New("contract violation")

// ErrNoReport is returned when a report is required but none is loaded.
var ErrNoReport = errors.New("no report loaded")

// ContractViolation describes a single offending field.
type ContractViolation struct {
	Field  string
	Value  any
	Reason string
}

// NewContractViolation creates a ContractViolation.
func NewContractViolation(field string, value any, reason string) *ContractViolation {
	return &ContractViolation{Field: field, Value: value, Reason: reason}
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s: %s %s (received %v)", ErrContractViolation, e.Field, e.Reason, e.Value)
}

// Unwrap lets errors.Is match ErrContractViolation.
func (e *ContractViolation) Unwrap() error {
	return ErrContractViolation
}
