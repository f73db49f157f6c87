package compiler

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/verton/internal/garage"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrInvalidVertexKind indicates a vertex whose kind is not in the closed set.
	ErrInvalidVertexKind = errors.New("invalid vertex kind")

	// ErrInvalidConfiguration indicates missing or unusable vertex settings.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDanglingEdge indicates an edge whose endpoint does not exist.
	ErrDanglingEdge = errors.New("dangling edge")
)

// InvalidVertexKindError reports a vertex with an unknown kind.
type InvalidVertexKindError struct {
	VertexID garage.VertexID
	Kind     garage.Kind
}

func (e *InvalidVertexKindError) Error() string {
	return fmt.Sprintf("vertex %d: %s: %q", e.VertexID, ErrInvalidVertexKind, e.Kind)
}

func (e *InvalidVertexKindError) Unwrap() error { return ErrInvalidVertexKind }

// InvalidConfigurationError reports a vertex whose settings cannot be used.
type InvalidConfigurationError struct {
	VertexID garage.VertexID
	Field    string // Offending config key or socket, if any
	Msg      string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("vertex %d: %s: %s: %s", e.VertexID, ErrInvalidConfiguration, e.Field, e.Msg)
	}
	return fmt.Sprintf("vertex %d: %s: %s", e.VertexID, ErrInvalidConfiguration, e.Msg)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// DanglingEdgeError reports an edge that cannot be resolved to a plug and a jack.
type DanglingEdgeError struct {
	Edge garage.Edge
	Msg  string
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("%s %d.%s -> %d.%s: %s", ErrDanglingEdge,
		e.Edge.From.VertexID, e.Edge.From.PlugID,
		e.Edge.To.VertexID, e.Edge.To.JackID, e.Msg)
}

func (e *DanglingEdgeError) Unwrap() error { return ErrDanglingEdge }
