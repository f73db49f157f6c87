package config

import (
	"errors"
	"fmt"
	"slices"
)

// Settings is the effective configuration of a play.
type Settings struct {
	Session Session
	Stage   Stage
	Log     Log
}

// Session tunes the frame loop.
type Session struct {
	// FrameRate is the number of frames per second.
	FrameRate int
	// Frames stops the play after that many frames. Zero plays until
	// interrupted.
	Frames int
}

// Stage describes the surface objects are drawn on.
type Stage struct {
	// Listen is the address of the socket.io stage server. Empty keeps the
	// stage in memory.
	Listen string
	// X and Y are the client coordinates of the stage origin; pointer
	// events are made relative to them.
	X, Y          float64
	Width, Height float64
}

// Log selects the log handler.
type Log struct {
	Format string
	Level  string
}

// MaxFrameRate is the highest accepted frame rate: one frame per millisecond.
const MaxFrameRate = 1000

// Log formats and levels accepted by Validate.
var (
	LogFormats = []string{"text", "json"}
	LogLevels  = []string{"debug", "info", "warn", "error"}
)

// Default returns the settings used when nothing overrides them.
func Default() Settings {
	return Settings{
		Session: Session{FrameRate: 60},
		Stage:   Stage{Width: 800, Height: 600},
		Log:     Log{Format: "text", Level: "info"},
	}
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var errs []error
	if s.Session.FrameRate <= 0 || s.Session.FrameRate > MaxFrameRate {
		errs = append(errs, fmt.Errorf("session.frame_rate must be between 1 and %d, got %d", MaxFrameRate, s.Session.FrameRate))
	}
	if s.Session.Frames < 0 {
		errs = append(errs, fmt.Errorf("session.frames must not be negative, got %d", s.Session.Frames))
	}
	if s.Stage.Width < 0 || s.Stage.Height < 0 {
		errs = append(errs, fmt.Errorf("stage size must not be negative, got %gx%g", s.Stage.Width, s.Stage.Height))
	}
	if !slices.Contains(LogFormats, s.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of %v, got %q", LogFormats, s.Log.Format))
	}
	if !slices.Contains(LogLevels, s.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %v, got %q", LogLevels, s.Log.Level))
	}
	return errors.Join(errs...)
}
