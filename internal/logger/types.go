// Package logger provides structured logging for the application.
package logger

// Level represents the logging level.
type Level string

const (
	// DebugLevel logs debug messages.
	DebugLevel Level = "debug"
	// InfoLevel logs info messages.
	InfoLevel Level = "info"
	// WarnLevel logs warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel logs error messages.
	ErrorLevel Level = "error"
	// FatalLevel logs fatal messages and exits.
	FatalLevel Level = "fatal"
)

// Default configuration values.
const (
	// DefaultLevel is the default logging level.
	DefaultLevel = InfoLevel
	// DefaultEncoding is the default log encoding format.
	DefaultEncoding = "console"
)

// Default output paths.
var (
	// DefaultOutputPaths is the default list of paths to write log output to.
	DefaultOutputPaths = []string{"stdout"}
	// DefaultErrorOutputPaths is the default list of paths to write internal logger errors to.
	DefaultErrorOutputPaths = []string{"stderr"}
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level.
	Level Level `yaml:"level" mapstructure:"level"`
	// Development enables development mode.
	Development bool `yaml:"development" mapstructure:"development"`
	// Encoding sets the logger's encoding, "console" or "json".
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	// OutputPaths is a list of URLs or file paths to write logging output to.
	OutputPaths []string `yaml:"output_paths" mapstructure:"output_paths"`
	// ErrorOutputPaths is a list of URLs to write internal logger errors to.
	ErrorOutputPaths []string `yaml:"error_output_paths" mapstructure:"error_output_paths"`
}
