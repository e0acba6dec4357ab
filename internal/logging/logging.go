package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Output is human-readable on a
// terminal and JSON otherwise. An unknown level falls back to info.
func Setup(level string, out *os.File) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = out
	if isatty.IsTerminal(out.Fd()) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}
