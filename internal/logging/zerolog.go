package logging

// file: internal/logging/zerolog.go

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Level is the minimum severity a logger emits.
type Level int8

// Supported log levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Output formats understood by Setup.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var fieldNamesOnce sync.Once

// ParseLevel converts a level name (debug, info, warn, error) into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.Newf("unknown log level %q", name)
	}
}

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// zeroLogger adapts a zerolog.Logger to the Logger interface.
type zeroLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value.
func NewZerologLogger(zl zerolog.Logger) Logger {
	return &zeroLogger{zl: zl}
}

func (l *zeroLogger) Debug(msg string, args ...any) { l.emit(l.zl.Debug(), msg, args) }
func (l *zeroLogger) Info(msg string, args ...any)  { l.emit(l.zl.Info(), msg, args) }
func (l *zeroLogger) Warn(msg string, args ...any)  { l.emit(l.zl.Warn(), msg, args) }
func (l *zeroLogger) Error(msg string, args ...any) { l.emit(l.zl.Error(), msg, args) }

// WithContext returns the logger bound to ctx when one was attached with zerolog's
// context helpers, otherwise the receiver.
func (l *zeroLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger != nil && ctxLogger.GetLevel() != zerolog.Disabled {
		return &zeroLogger{zl: *ctxLogger}
	}
	return l
}

func (l *zeroLogger) WithField(key string, value any) Logger {
	return &zeroLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *zeroLogger) emit(event *zerolog.Event, msg string, args []any) {
	if event == nil {
		return
	}
	if len(args) > 0 {
		event = event.Fields(fieldsFromArgs(args))
	}
	event.Msg(msg)
}

// fieldsFromArgs turns alternating key/value arguments into a field map.
// A dangling value or a non-string key is kept under "!BADKEY".
func fieldsFromArgs(args []any) map[string]any {
	fields := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			fields["!BADKEY"] = args[i]
			continue
		}
		fields[key] = args[i+1]
		i++
	}
	return fields
}

func configureFieldNames() {
	fieldNamesOnce.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		zerolog.TimestampFieldName = "time"
		zerolog.LevelFieldName = "level"
		zerolog.MessageFieldName = "msg"
		zerolog.ErrorFieldName = "error"
	})
}

// newZerolog builds a zerolog logger writing to w in the given format.
func newZerolog(level Level, format string, w io.Writer) zerolog.Logger {
	configureFieldNames()
	if w == nil {
		w = os.Stderr
	}
	out := w
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}
	zerolog.SetGlobalLevel(level.zerologLevel())
	return zerolog.New(out).With().Timestamp().Logger()
}

// InitLogging installs a JSON logger writing to w as the default logger.
func InitLogging(level Level, w io.Writer) {
	SetDefaultLogger(NewZerologLogger(newZerolog(level, FormatJSON, w)))
}

// Setup installs the default logger from textual settings. Log output always goes to w,
// which must not be the MCP stdio channel.
func Setup(levelName, format string, w io.Writer) error {
	level, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	switch format {
	case "", FormatJSON:
		format = FormatJSON
	case FormatConsole:
	default:
		return errors.Newf("unknown log format %q", format)
	}
	SetDefaultLogger(NewZerologLogger(newZerolog(level, format, w)))
	return nil
}

// SetupDefaultLogger installs a JSON logger on stderr at the given level name.
// Unknown names fall back to info.
func SetupDefaultLogger(levelName string) {
	level, err := ParseLevel(levelName)
	InitLogging(level, os.Stderr)
	if err != nil {
		GetLogger("logging").Warn("Unknown log level, using info.", "level", levelName)
	}
}

// SetLevel changes the minimum level for every zerolog-backed logger.
func SetLevel(level Level) {
	zerolog.SetGlobalLevel(level.zerologLevel())
}

// IsDebugEnabled reports whether debug messages are currently emitted.
func IsDebugEnabled() bool {
	return zerolog.GlobalLevel() <= zerolog.DebugLevel
}

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}
