// Package testutil holds the shared test harness: it runs the whole app
// against graph and settings files written to a temporary directory.
// Package graphtest builds graphs in memory for lower-level tests.
package testutil
