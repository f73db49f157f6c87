// Package scheduler provides the animation-frame primitive that drives a
// session.
//
// # Why Scheduler Exists
//
// A session evaluates its graph once per frame. Where frames come from is
// not the session's business: a real run wants a steady frame rate, a test
// wants to hand over frames one at a time and inspect the result in
// between. Both are a Scheduler.
//
// # How It Works
//
// Frames returns a channel of timestamps. Each value is the time elapsed
// since an arbitrary but fixed origin, like a browser's
// requestAnimationFrame timestamp. The channel is closed once the context
// passed to Frames is done.
package scheduler
