// Package evaluator runs a compiled graph: a one-time pre-pass that seeds
// constants and places object markers, then one pass per frame that
// recomputes every vertex in evaluation order.
//
// An Evaluator is single-threaded. The session package owns one per play
// and calls it from its loop goroutine only.
package evaluator
