package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/specialistvlad/verton/internal/compiler"
	"github.com/specialistvlad/verton/internal/ctxlog"
	"github.com/specialistvlad/verton/internal/evaluator"
	"github.com/specialistvlad/verton/internal/input"
	"github.com/specialistvlad/verton/internal/scheduler"
	"github.com/specialistvlad/verton/internal/stage"
)

// State is the lifecycle position of a session.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotIdle is returned by Start on a session that was already started
// or stopped.
var ErrNotIdle = errors.New("session is not idle")

// eventBuffer bounds the pointer events queued between two loop turns.
const eventBuffer = 256

// Options tunes a session.
type Options struct {
	// MaxFrames stops the session cleanly after that many frames. Zero
	// means no limit.
	MaxFrames int
}

// Session is one play of a graph.
type Session struct {
	eval  *evaluator.Evaluator
	stage stage.Stage
	sched scheduler.Scheduler
	opts  Options

	events  chan input.Event
	queries chan func(*evaluator.Evaluator)
	done    chan struct{}

	mu       sync.Mutex
	state    State
	cancel   context.CancelFunc
	unlisten func()
	err      error
	logger   *slog.Logger
}

// New creates an idle session for g.
func New(g *compiler.Graph, st stage.Stage, sched scheduler.Scheduler, opts Options) *Session {
	return &Session{
		eval:    evaluator.New(g, st),
		stage:   st,
		sched:   sched,
		opts:    opts,
		events:  make(chan input.Event, eventBuffer),
		queries: make(chan func(*evaluator.Evaluator)),
		done:    make(chan struct{}),
		logger:  slog.Default(),
	}
}

// Start creates a session and starts it.
func Start(ctx context.Context, g *compiler.Graph, st stage.Stage, sched scheduler.Scheduler, opts Options) (*Session, error) {
	s := New(g, st, sched, opts)
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the pre-pass synchronously, subscribes to the stage's pointer
// events and launches the frame loop. Cancelling ctx stops the session.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return fmt.Errorf("%w: %s", ErrNotIdle, s.state)
	}
	ctx, s.logger = ctxlog.With(ctx, "component", "session")

	if err := s.eval.Prepare(ctx); err != nil {
		s.state = Stopped
		s.err = err
		close(s.done)
		return fmt.Errorf("session pre-pass failed: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.unlisten = s.stage.Listen(s.Dispatch)
	frames := s.sched.Frames(loopCtx)
	s.state = Running

	s.logger.Info("▶️ Session started.", "vertexes", len(s.eval.Graph().Order), "max_frames", s.opts.MaxFrames)
	go s.loop(loopCtx, frames)
	return nil
}

func (s *Session) loop(ctx context.Context, frames <-chan time.Duration) {
	err := s.run(ctx, frames)
	s.Stop()

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Session failed.", "error", err, "frames", s.eval.Frames())
	} else {
		s.logger.Info("⏹️ Session stopped.", "frames", s.eval.Frames())
	}
	close(s.done)
}

func (s *Session) run(ctx context.Context, frames <-chan time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-s.events:
			s.eval.Apply(ev)
		case q := <-s.queries:
			s.drainEvents()
			q(s.eval)
		case ts, ok := <-frames:
			if !ok {
				return nil
			}
			s.drainEvents()
			if err := s.eval.Frame(ctx, ts); err != nil {
				return fmt.Errorf("frame %d: %w", s.eval.Frames()+1, err)
			}
			if s.opts.MaxFrames > 0 && s.eval.Frames() >= s.opts.MaxFrames {
				s.logger.Debug("Frame limit reached.", "max_frames", s.opts.MaxFrames)
				return nil
			}
		}
	}
}

func (s *Session) drainEvents() {
	for {
		select {
		case ev := <-s.events:
			s.eval.Apply(ev)
		default:
			return
		}
	}
}

// Dispatch queues a pointer event for the session loop. Events arriving
// when the session is not running are dropped.
func (s *Session) Dispatch(ev input.Event) {
	if s.State() != Running {
		return
	}
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// Stop ends the session: no further frame runs and the stage listener is
// detached. The stage keeps what was last drawn. Stop is idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Stopped:
		return
	case Idle:
		s.state = Stopped
		close(s.done)
		return
	}
	s.state = Stopped
	s.unlisten()
	s.cancel()
}

// Close stops the session, waits for the loop to exit and clears the stage.
func (s *Session) Close(ctx context.Context) error {
	s.Stop()
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := s.stage.Clear(); err != nil {
		return fmt.Errorf("failed to clear stage: %w", err)
	}
	return nil
}

// Done is closed once the session has fully stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session stops and returns the error that stopped
// it, if any.
func (s *Session) Wait() error {
	<-s.done
	return s.Err()
}

// Err returns the error that stopped the session. It is nil while running
// and after a clean stop.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query runs fn on the loop goroutine, after any pending events. Once the
// session has stopped fn runs on the caller's goroutine against the final
// values.
func (s *Session) Query(ctx context.Context, fn func(*evaluator.Evaluator)) error {
	if s.State() == Idle {
		return fmt.Errorf("session has not started")
	}
	finished := make(chan struct{})
	wrapped := func(e *evaluator.Evaluator) {
		defer close(finished)
		fn(e)
	}
	select {
	case s.queries <- wrapped:
		<-finished
		return nil
	case <-s.done:
		fn(s.eval)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of every plug value.
func (s *Session) Snapshot(ctx context.Context) ([]float64, error) {
	var values []float64
	err := s.Query(ctx, func(e *evaluator.Evaluator) { values = e.Snapshot() })
	return values, err
}

// Readings returns every plug value by name.
func (s *Session) Readings(ctx context.Context) ([]evaluator.Reading, error) {
	values, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return evaluator.Readings(s.eval.Graph(), values), nil
}

// Frames returns the number of completed frames.
func (s *Session) Frames(ctx context.Context) (int, error) {
	var n int
	err := s.Query(ctx, func(e *evaluator.Evaluator) { n = e.Frames() })
	return n, err
}
