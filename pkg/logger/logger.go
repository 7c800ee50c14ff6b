package logx

import (
	"fmt"
	"io"
	"os"

	"github.com/example/woo-storefront/config"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: config.Development,
}

type LoggerOpts struct {
	Environment config.Environment
	Output      io.Writer
}

func safe(opts ...LoggerOpts) *LoggerOpts {
	if len(opts) == 0 {
		return DefaultLoggerOpts
	}
	return &opts[0]
}

// Init configures the global zerolog logger. Production gets JSON at info
// level, every other environment a colored console writer at debug level.
func Init(opts ...LoggerOpts) {
	o := safe(opts...)
	out := o.Output
	if out == nil {
		out = os.Stderr
	}

	if o.Environment.IsProduction() {
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Caller().Logger()
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// moduleLogger adapts a zerolog.Logger to the mono logger interface so that
// modules log key/value pairs through zerolog.
type moduleLogger struct {
	zl zerolog.Logger
}

var _ types.Logger = (*moduleLogger)(nil)

// NewModuleLogger returns a types.Logger backed by the global zerolog logger,
// tagged with the given module name.
func NewModuleLogger(module string) types.Logger {
	return &moduleLogger{zl: log.Logger.With().Str("module", module).Logger()}
}

// FromZerolog wraps an existing zerolog.Logger.
func FromZerolog(zl zerolog.Logger) types.Logger {
	return &moduleLogger{zl: zl}
}

func (l *moduleLogger) Debug(msg string, args ...any) { l.emit(l.zl.Debug(), msg, args) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.emit(l.zl.Info(), msg, args) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.emit(l.zl.Warn(), msg, args) }
func (l *moduleLogger) Error(msg string, args ...any) { l.emit(l.zl.Error(), msg, args) }

func (l *moduleLogger) With(args ...any) types.Logger {
	return &moduleLogger{zl: l.zl.With().Fields(pairs(args)).Logger()}
}

func (l *moduleLogger) WithModule(module string) types.Logger {
	return &moduleLogger{zl: l.zl.With().Str("module", module).Logger()}
}

func (l *moduleLogger) WithError(err error) types.Logger {
	return &moduleLogger{zl: l.zl.With().Err(err).Logger()}
}

func (l *moduleLogger) emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	e.Fields(pairs(args)).Msg(msg)
}

// pairs turns alternating key/value arguments into a field map. A trailing key
// without a value is logged under "!BADKEY", the way slog does it.
func pairs(args []any) map[string]any {
	fields := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			fields[key] = err.Error()
			continue
		}
		fields[key] = args[i+1]
	}
	return fields
}
