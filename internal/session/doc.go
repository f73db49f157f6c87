// Package session runs one play of a compiled graph.
//
// A Session moves through Idle, Running and Stopped; Stopped is terminal
// and a new play needs a new Session. While running, a single loop
// goroutine owns the evaluator: frames from the scheduler, pointer events
// from the stage and read requests from callers all reach it over
// channels, so the value store is never shared between goroutines.
//
// Pending pointer events are applied before each frame pass, which makes
// an event visible to the next frame and never to one already running.
package session
