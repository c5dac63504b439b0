// Package logger provides structured logging for the application,
// backed by zap.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface defines the logger interface. Fields are variadic key-value
// pairs: logger.Info("msg", "key", value).
type Interface interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(fields ...any) Interface
	WithComponent(component string) Interface
	WithError(err error) Interface
}

// Logger implements Interface on top of a zap.Logger.
type Logger struct {
	zapLogger *zap.Logger
}

// logLevels maps string levels to zapcore.Level.
var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

// New creates a new logger instance from config.
func New(config *Config) (Interface, error) {
	if config == nil {
		config = &Config{}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(getLogLevel(string(config.Level))),
		Development:      config.Development,
		Encoding:         encodingOrDefault(config.Encoding),
		EncoderConfig:    encoderConfig,
		OutputPaths:      pathsOrDefault(config.OutputPaths, DefaultOutputPaths),
		ErrorOutputPaths: pathsOrDefault(config.ErrorOutputPaths, DefaultErrorOutputPaths),
	}

	zapLogger, err := zapConfig.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, err
	}

	return &Logger{zapLogger: zapLogger}, nil
}

// getLogLevel converts a string level to zapcore.Level, defaulting to info.
func getLogLevel(level string) zapcore.Level {
	lvl, exists := logLevels[strings.ToLower(level)]
	if !exists {
		return zapcore.InfoLevel
	}
	return lvl
}

func encodingOrDefault(encoding string) string {
	if encoding == "" {
		return DefaultEncoding
	}
	return encoding
}

func pathsOrDefault(paths, fallback []string) []string {
	if len(paths) == 0 {
		return fallback
	}
	return paths
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...any) {
	l.zapLogger.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...any) {
	l.zapLogger.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...any) {
	l.zapLogger.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...any) {
	l.zapLogger.Error(msg, toZapFields(fields)...)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.zapLogger.Fatal(msg, toZapFields(fields)...)
}

// With creates a new logger with the given fields attached.
func (l *Logger) With(fields ...any) Interface {
	return &Logger{zapLogger: l.zapLogger.With(toZapFields(fields)...)}
}

// WithComponent attaches a component name to the logger.
func (l *Logger) WithComponent(component string) Interface {
	return l.With("component", component)
}

// WithError attaches an error to the logger.
func (l *Logger) WithError(err error) Interface {
	return l.With("error", err)
}

// toZapFields converts variadic key-value pairs to zap fields. A
// dangling key without a value is logged under the "dangling" key rather
// than dropped.
func toZapFields(args []any) []zap.Field {
	fields := make([]zap.Field, 0, (len(args)+1)/2)

	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields = append(fields, zap.Any("dangling", args[i]))
			break
		}

		key, ok := args[i].(string)
		if !ok {
			key = "invalid_key"
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}

	return fields
}
