package dag

import (
	"errors"
	"fmt"
)

// ErrNotADag is the sentinel wrapped by NotADagError for errors.Is checks.
var ErrNotADag = errors.New("not a DAG")

// Edge is a directed dependency: To depends on From.
type Edge[V any] struct {
	From V
	To   V
}

// NotADagError reports that the edge set could not be ordered.
type NotADagError struct {
	// Reason is a short, deterministic description of what went wrong.
	Reason string
	// Remaining is the number of edges left unresolved when sorting stopped.
	Remaining int
}

func (e *NotADagError) Error() string {
	if e == nil {
		return ""
	}
	if e.Remaining > 0 {
		return fmt.Sprintf("%s: %s (%d edges left)", ErrNotADag.Error(), e.Reason, e.Remaining)
	}
	return fmt.Sprintf("%s: %s", ErrNotADag.Error(), e.Reason)
}

func (e *NotADagError) Unwrap() error { return ErrNotADag }

// graph is an adjacency structure whose successor lists keep insertion order,
// so sorting the same edge list twice gives the same result.
type graph[ID comparable] struct {
	// successors holds the live outgoing edges of every vertex, deduplicated.
	successors map[ID][]ID
	// incoming counts the live incoming edges of every vertex.
	incoming map[ID]int
	// firstSeen lists vertices in the order their first outgoing edge appeared.
	firstSeen []ID
	// live is the number of edges not yet removed.
	live int
}
