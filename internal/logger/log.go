package logger

import (
	"io"
	"os"
	"strings"

	stdlog "log"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Diagnostics always go to
// stderr so the report on stdout stays clean: a human readable console
// format when pretty is set, JSON lines otherwise. Unknown levels fall back
// to warn.
func Init(level string, pretty bool) {
	InitTo(os.Stderr, level, pretty)
}

// InitTo is Init with an explicit destination.
func InitTo(out io.Writer, level string, pretty bool) {
	lvl := zerolog.WarnLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && l != zerolog.NoLevel {
		lvl = l
	}
	zerolog.SetGlobalLevel(lvl)

	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
	}

	zlog.Logger = zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "showjobs").
		Logger()

	// Route the standard library logger through zerolog as well.
	stdlog.SetFlags(0)
	stdlog.SetOutput(zlog.Logger)
}
