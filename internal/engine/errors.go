package engine

import "fmt"

// UnknownSystemError reports a query referencing a system id or name that is
// not part of the loaded dataset.
type UnknownSystemError struct {
	Ref string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("unknown system: %s", e.Ref)
}

// InvalidQueryError reports self-contradictory query parameters, e.g. an
// avoid list containing the origin.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Reason
}

// NoRouteError reports a well-formed route query with no solution. This is an
// expected outcome (isolated systems, graph partitions), not a failure.
type NoRouteError struct {
	Origin      int32
	Destination int32
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no route from %d to %d", e.Origin, e.Destination)
}

// NoLoopError reports that no closed tour satisfying the loop constraints was
// found within the attempt budget.
type NoLoopError struct {
	Origin int32
	Reason string
}

func (e *NoLoopError) Error() string {
	return fmt.Sprintf("no loop from %d: %s", e.Origin, e.Reason)
}

// TimedOutError reports that a solver hit the caller's deadline or its own
// iteration cap before finishing.
type TimedOutError struct {
	Op string
}

func (e *TimedOutError) Error() string {
	return e.Op + " timed out"
}

func invalidQueryf(format string, args ...interface{}) *InvalidQueryError {
	return &InvalidQueryError{Reason: fmt.Sprintf(format, args...)}
}
