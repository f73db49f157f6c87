package app

import (
	"errors"

	"github.com/specialistvlad/verton/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath    string // graph JSON document
	SettingsPath string // optional HCL settings file

	HealthcheckPort int
	PrintSettings   bool
	DumpGraph       bool

	// Overrides are applied on top of the settings file.
	Overrides Overrides
}

// Overrides holds settings given on the command line. Nil fields keep the
// value from the settings file or the default.
type Overrides struct {
	FrameRate *int
	Frames    *int
	StageAddr *string
	LogFormat *string
	LogLevel  *string
}

// Apply returns s with every non-nil override set.
func (o Overrides) Apply(s config.Settings) config.Settings {
	if o.FrameRate != nil {
		s.Session.FrameRate = *o.FrameRate
	}
	if o.Frames != nil {
		s.Session.Frames = *o.Frames
	}
	if o.StageAddr != nil {
		s.Stage.Listen = *o.StageAddr
	}
	if o.LogFormat != nil {
		s.Log.Format = *o.LogFormat
	}
	if o.LogLevel != nil {
		s.Log.Level = *o.LogLevel
	}
	return s
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" && !cfg.PrintSettings {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.HealthcheckPort < 0 {
		return nil, errors.New("HealthcheckPort cannot be negative")
	}
	return &cfg, nil
}
