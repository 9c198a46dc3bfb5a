package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is an interface that wraps the Logger methods.
type Interface interface {
	Debug(message string, fields ...Field)
	Info(message string, fields ...Field)
	Warn(message string, fields ...Field)
	Error(err error, fields ...Field)
	GetZap() *zap.Logger
	Sync() error
	WithFields(fields ...Field) *Logger
}

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds key-value to be written to log.
type Field struct {
	Key   string
	Value any
}

// Level represents the severity level of the log.
type Level string

var (
	// DebugLevel is used for debug messages.
	DebugLevel Level = "debug"
	// InfoLevel is used for informational messages.
	InfoLevel Level = "info"
	// WarnLevel is used for warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel is used for error messages.
	ErrorLevel Level = "error"

	messageKey = "message"
)

func (level Level) getZapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options holds configuration options for the logger.
type Options struct {
	level       Level
	outputPaths []string
}

// WithLoggingLevel sets the minimum log level that will be logged.
// If not set, `info` level and above is logged by default.
func WithLoggingLevel(level Level) Options {
	return Options{level: level}
}

// WithOutputPaths sets the output paths logs are written to. The special
// paths "stdout" and "stderr" are interpreted as os.Stdout and os.Stderr.
func WithOutputPaths(paths []string) Options {
	return Options{outputPaths: paths}
}

// NewLogger creates new Logger instance with configuration options.
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()

	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.getZapLevel())
		}
		if opt.outputPaths != nil {
			cfg.OutputPaths = opt.outputPaths
		}
	}

	// change default message key `msg` to `message`
	cfg.EncoderConfig.MessageKey = messageKey

	logger, err := cfg.Build()
	return &Logger{
		logger: logger,
	}, err
}

// NewNop returns a Logger that discards everything written to it.
func NewNop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

// Sync flush the buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap returns the underlying zap logger.
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

// WithFields returns a child logger that always logs the given fields.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(buildZapFields(fields...)...)}
}

// Debug logs a message at debug level.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, buildZapFields(fields...)...)
}

// Info logs a message at info level.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, buildZapFields(fields...)...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, buildZapFields(fields...)...)
}

// Error logs an error and its fields at error level.
func (l *Logger) Error(err error, fields ...Field) {
	l.logger.Error(err.Error(), buildZapFields(fields...)...)
}

func buildZapFields(fields ...Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}
	return zapFields
}
