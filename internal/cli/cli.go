package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/specialistvlad/verton/internal/app"
	"github.com/specialistvlad/verton/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("verton", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Verton - plays node graphs frame by frame.

Usage:
  verton [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to a graph JSON document.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()
	graphFlag := flagSet.String("graph", "", "Path to the graph JSON document.")
	gFlag := flagSet.String("g", "", "Path to the graph JSON document (shorthand).")
	settingsFlag := flagSet.String("settings", "", "Path to an HCL settings file.")
	framesFlag := flagSet.Int("frames", defaults.Session.Frames, "Stop after this many frames. 0 plays until interrupted.")
	fpsFlag := flagSet.Int("fps", defaults.Session.FrameRate, "Frames per second, at most 1000.")
	stageAddrFlag := flagSet.String("stage-addr", defaults.Stage.Listen, "Serve the socket.io stage on this address. Empty keeps the stage in memory.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.Log.Format, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.Log.Level, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	printSettingsFlag := flagSet.Bool("print-settings", false, "Print the effective settings as HCL and exit.")
	dumpGraphFlag := flagSet.Bool("dump-graph", false, "Print the normalized graph JSON and exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", path)

	if path == "" && !*printSettingsFlag {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	// Only flags given explicitly override the settings file.
	var overrides app.Overrides
	var visitErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			overrides.Frames = framesFlag
		case "fps":
			overrides.FrameRate = fpsFlag
		case "stage-addr":
			overrides.StageAddr = stageAddrFlag
		case "log-format":
			format := strings.ToLower(*logFormatFlag)
			if !slices.Contains(config.LogFormats, format) {
				visitErr = usageError("invalid log-format: must be 'text' or 'json'")
			}
			overrides.LogFormat = &format
		case "log-level":
			level := strings.ToLower(*logLevelFlag)
			if !slices.Contains(config.LogLevels, level) {
				visitErr = usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
			}
			overrides.LogLevel = &level
		}
	})
	if visitErr != nil {
		return nil, false, visitErr
	}
	if overrides.FrameRate != nil && (*overrides.FrameRate <= 0 || *overrides.FrameRate > config.MaxFrameRate) {
		return nil, false, usageError("invalid fps: must be between 1 and %d", config.MaxFrameRate)
	}
	if overrides.Frames != nil && *overrides.Frames < 0 {
		return nil, false, usageError("invalid frames: must not be negative")
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		GraphPath:       path,
		SettingsPath:    *settingsFlag,
		HealthcheckPort: *healthPortFlag,
		PrintSettings:   *printSettingsFlag,
		DumpGraph:       *dumpGraphFlag,
		Overrides:       overrides,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
