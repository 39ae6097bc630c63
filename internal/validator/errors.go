package validator

import (
	"errors"
	"fmt"
)

// StructuralError is a single load-time defect in a story graph.
type StructuralError struct {
	NodeID string // Offending node, empty for graph-wide defects
	Reason string // Human-readable reason for failure
	Err    error  // Domain sentinel
}

func (e *StructuralError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("node %q: %s: %s", e.NodeID, e.Err, e.Reason)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// AggregateError represents multiple structural failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// Errors returns the individual failures if err is an AggregateError.
// Otherwise returns nil.
func Errors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
