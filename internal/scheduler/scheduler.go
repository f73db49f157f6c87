package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/verton/internal/ctxlog"
)

// Scheduler produces frame timestamps.
type Scheduler interface {
	// Frames starts the frame stream. It must be called at most once.
	Frames(ctx context.Context) <-chan time.Duration
}

// Ticker emits frames at a fixed rate. Frames the consumer is too slow to
// take are dropped, never queued.
type Ticker struct {
	interval time.Duration
	now      func() time.Time
}

// NewTicker creates a Ticker running at fps frames per second.
func NewTicker(fps int) (*Ticker, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", fps)
	}
	interval := time.Second / time.Duration(fps)
	if interval <= 0 {
		return nil, fmt.Errorf("frame rate %d is too high for a ticker", fps)
	}
	return &Ticker{interval: interval, now: time.Now}, nil
}

// Interval returns the time between two frames.
func (t *Ticker) Interval() time.Duration { return t.interval }

func (t *Ticker) Frames(ctx context.Context) <-chan time.Duration {
	logger := ctxlog.FromContext(ctx)
	out := make(chan time.Duration)
	go func() {
		defer close(out)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		origin := t.now()
		logger.Debug("Frame ticker started.", "interval", t.interval)
		for {
			select {
			case <-ctx.Done():
				logger.Debug("Frame ticker stopped.")
				return
			case now := <-ticker.C:
				select {
				case out <- now.Sub(origin):
				case <-ctx.Done():
					logger.Debug("Frame ticker stopped.")
					return
				}
			}
		}
	}()
	return out
}

// Manual hands frames over one Step at a time.
type Manual struct {
	frames chan time.Duration
	done   chan struct{}
	once   sync.Once
}

// NewManual creates an idle manual scheduler.
func NewManual() *Manual {
	return &Manual{
		frames: make(chan time.Duration),
		done:   make(chan struct{}),
	}
}

func (m *Manual) Frames(ctx context.Context) <-chan time.Duration {
	go func() {
		<-ctx.Done()
		m.once.Do(func() { close(m.done) })
	}()
	return m.frames
}

// Step delivers one frame and blocks until the consumer has taken it. It
// returns false once the consumer has stopped.
func (m *Manual) Step(ts time.Duration) bool {
	select {
	case m.frames <- ts:
		return true
	case <-m.done:
		return false
	}
}

// Steps delivers n frames spaced by interval, starting at ts 0. It returns
// how many were taken.
func (m *Manual) Steps(n int, interval time.Duration) int {
	for i := 0; i < n; i++ {
		if !m.Step(time.Duration(i) * interval) {
			return i
		}
	}
	return n
}
