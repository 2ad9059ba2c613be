package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"covey-casino/internal/config"
)

var writer io.Writer = os.Stdout

// Init configures the global zerolog logger. With a log file configured,
// output goes to a size-capped file; otherwise to stdout, optionally through
// the console writer.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}

	writer = os.Stdout
	if cfg.File != "" {
		if w, err := newCappedFileWriter(cfg.File, cfg.MaxMB); err == nil {
			writer = w
		}
	} else if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}

// Writer returns the sink Init selected, for loggers that bypass zerolog
// (the HTTP request logger writes slog JSON).
func Writer() io.Writer {
	return writer
}
