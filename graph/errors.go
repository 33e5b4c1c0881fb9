package graph

import "fmt"

// ErrInvalidNode is returned by the FromDict convenience constructor
// when a node's parents cannot be interpreted as a list of parent
// nodes.
var ErrInvalidNode = fmt.Errorf("graph: node parents must be iterable")

// AssertionError indicates that the renderer's internal invariants
// have been violated, either by a bug in the state machine or by a
// malformed input DAG (for example one containing a cycle that made
// it past the caller's topological sort). It is not meant to be
// recovered from: Renderer methods panic with an AssertionError
// rather than returning it as an ordinary error.
type AssertionError struct {
	Msg string
}

func (e AssertionError) Error() string {
	return "graph: assertion failed: " + e.Msg
}

func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(AssertionError{Msg: fmt.Sprintf(format, args...)})
	}
}
