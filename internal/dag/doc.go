// Package dag orders the vertices of a dependency graph. It is a pure
// function package: callers hand it a list of directed edges and get back a
// topological order of every vertex that appears in at least one edge, or a
// NotADagError when the edges contain a cycle.
package dag
