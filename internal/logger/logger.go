// Package logger builds the process-wide zerolog logger for the eqtool
// harness from a small configuration block.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	ErrInvalidLevel  = errors.New("logger: invalid level")
	ErrInvalidFormat = errors.New("logger: invalid format")
)

// Config selects level, format and an optional rotated log file.
type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig logs info and above to the console only.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     FormatConsole,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// Logger wraps a zerolog.Logger together with the file it may own.
type Logger struct {
	zerolog.Logger

	file *lumberjack.Logger
}

// New builds a logger writing to out, plus cfg.File when set. A nil out
// disables the terminal output.
func New(cfg Config, out io.Writer) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var writers []io.Writer

	if out != nil {
		switch strings.ToLower(cfg.Format) {
		case "", FormatConsole:
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        out,
				TimeFormat: "15:04:05",
				NoColor:    !isTerminal(out),
			})
		case FormatJSON:
			writers = append(writers, out)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
		}
	}

	l := &Logger{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log directory: %w", err)
		}

		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, l.file)
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = zerolog.MultiLevelWriter(writers...)
	}

	l.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()

	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return level, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
