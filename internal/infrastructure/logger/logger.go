package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Printer logs preformatted messages at a fixed level.
type Printer struct {
	level zerolog.Level
}

func (p Printer) Printf(format string, v ...any) {
	base.WithLevel(p.level).Msgf(format, v...)
}

var (
	Info  = Printer{level: zerolog.InfoLevel}
	Error = Printer{level: zerolog.ErrorLevel}
	Debug = Printer{level: zerolog.DebugLevel}
	Warn  = Printer{level: zerolog.WarnLevel}

	base zerolog.Logger
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	base = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Setup configures the process logger. format is "json" or "console".
// It must run before any goroutine logs.
func Setup(level, format string) error {
	return SetupWriter(os.Stdout, level, format)
}

func SetupWriter(w io.Writer, level, format string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return err
		}
		lvl = parsed
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: true}
	}
	base = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

// Job returns a logger carrying the job id field.
func Job(id string) zerolog.Logger {
	return base.With().Str("job_id", id).Logger()
}

func L() *zerolog.Logger {
	return &base
}
