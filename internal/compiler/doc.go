// Package compiler turns a declarative garage into the flat form the
// evaluator runs: an evaluation order, dense plug and jack slot numbers, the
// jack wiring table and the pointer-reactive vertex buckets.
//
// Compilation is all-or-nothing. Every problem it can detect is reported as
// a typed error before a session is started, and no partial graph is ever
// returned.
package compiler
