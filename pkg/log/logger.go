package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

type options struct {
	out   io.Writer
	level zerolog.Level
}

type Option func(*options)

// WithOutput overrides the destination, stderr by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLevel sets the minimum level used when debug is off.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) { o.level = level }
}

// NewContextWithLogger installs a console logger in ctx. The returned func
// flushes and closes the underlying diode writer.
func NewContextWithLogger(ctx context.Context, debug bool, opts ...Option) (context.Context, func()) {
	o := options{out: os.Stderr, level: zerolog.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(o.level)
	}

	// Ring buffer of 1000 entries, polled every 5ms.
	wr := diode.NewWriter(o.out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "Logger Dropped %d messages\n", missed)
	})

	output := zerolog.ConsoleWriter{
		Out:        wr,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Logger()

	log.Logger = logger

	return logger.WithContext(ctx), func() {
		_ = wr.Close()
	}
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}
