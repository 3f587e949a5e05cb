// ABOUTME: Leveled logging wrapper around zerolog for verbose mode output
// ABOUTME: Global level via SetLevel; writes to stderr to avoid mixing with rendered results

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level constants matching zerolog levels.
const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

// Logger is a leveled logger carrying structured fields (run id, agent name).
type Logger struct {
	zl zerolog.Logger
}

var (
	mu   sync.RWMutex
	root = newRoot(os.Stderr)
)

func newRoot(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(out).Level(LevelInfo).With().Timestamp().Logger()
}

func base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// SetLevel sets the global log level.
func SetLevel(l zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(l)
}

// GetLevel returns the current log level.
func GetLevel() zerolog.Level {
	return base().GetLevel()
}

// ParseLevel maps a config string ("debug", "warn", ...) to a level.
// Unknown or empty strings yield LevelInfo.
func ParseLevel(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || l == zerolog.NoLevel {
		return LevelInfo
	}
	return l
}

// SetOutput redirects log output, keeping the current level.
// Output is plain JSON lines when json is true, console text otherwise.
func SetOutput(w io.Writer, json bool) {
	mu.Lock()
	defer mu.Unlock()
	lvl := root.GetLevel()
	if json {
		root = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
		return
	}
	root = newRoot(w).Level(lvl)
}

// With returns a Logger carrying key=value on every line.
func With(key string, value any) *Logger {
	return &Logger{zl: base().With().Interface(key, value).Logger()}
}

// With returns a child logger with an extra field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Debug logs a debug message if the level allows it.
func (l *Logger) Debug(format string, args ...any) { emit(l.zl.Debug(), format, args) }

// Info logs an info message if the level allows it.
func (l *Logger) Info(format string, args ...any) { emit(l.zl.Info(), format, args) }

// Warn logs a warning message if the level allows it.
func (l *Logger) Warn(format string, args ...any) { emit(l.zl.Warn(), format, args) }

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) { emit(l.zl.Error(), format, args) }

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	l := base()
	emit(l.Debug(), format, args)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	l := base()
	emit(l.Info(), format, args)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	l := base()
	emit(l.Warn(), format, args)
}

// Error logs an error message.
func Error(format string, args ...any) {
	l := base()
	emit(l.Error(), format, args)
}

func emit(ev *zerolog.Event, format string, args []any) {
	if ev == nil {
		return
	}
	if len(args) == 0 {
		ev.Msg(format)
		return
	}
	ev.Msg(fmt.Sprintf(format, args...))
}
