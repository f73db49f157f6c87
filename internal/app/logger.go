package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/verton/internal/config"
)

type handlerFactory func(io.Writer, *slog.HandlerOptions) slog.Handler

// handlers maps each log.format value to its slog handler.
var handlers = map[string]handlerFactory{
	"text": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	"json": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
}

// newLogger builds the logger for the given log settings. Settings are
// validated before this point; an unknown level falls back to info and an
// unknown format to text.
func newLogger(s config.Log, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Level)); err != nil {
		level = slog.LevelInfo
	}

	newHandler, ok := handlers[s.Format]
	if !ok {
		newHandler = handlers["text"]
	}
	return slog.New(newHandler(outW, &slog.HandlerOptions{Level: level}))
}
