package cli

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/internal/config"
)

// newLogger builds the process logger. The console format is meant for
// people at a terminal; json suits log collectors.
func newLogger(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == config.FormatJSON {
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.00"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// loggerFromContext returns the logger attached by the root command, or a
// disabled logger.
func loggerFromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// progress logs completion of an operation with the elapsed time.
type progress struct {
	logger *zerolog.Logger
	start  time.Time
}

func newProgress(l *zerolog.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Info().Dur("elapsed", time.Since(p.start).Round(time.Millisecond)).Msg(msg)
}
