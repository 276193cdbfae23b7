package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the root logger for the process. Every entry carries the
// application environment so log lines from different deployments can be told
// apart.
func NewLogger(cfg LoggerConfig, env string) zerolog.Logger {
	return newLogger(os.Stdout, cfg, env)
}

func newLogger(out io.Writer, cfg LoggerConfig, env string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("env", env).
		Logger()
}
