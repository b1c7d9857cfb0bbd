package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	standardErrorOutputPathConstant      = "stderr"
	consoleMessageKeyConstant            = "message"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// LogLevelNames lists the accepted log levels in increasing severity.
func LogLevelNames() []string {
	return []string{logLevelDebugStringConstant, logLevelInfoStringConstant, logLevelWarnStringConstant, logLevelErrorStringConstant}
}

// LogFormatNames lists the accepted log formats.
func LogFormatNames() []string {
	return []string{logFormatStructuredStringConstant, logFormatConsoleStringConstant}
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
// Both formats write to standard error so that captured command output on
// standard output stays clean.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelError := resolveLogLevel(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}

	encoding, formatExists := logFormatEncodingMapping[LogFormat(strings.ToLower(strings.TrimSpace(string(requestedLogFormat))))]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = encoding
	if encoding == consoleZapEncodingStringConstant {
		configuration.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		configuration.Sampling = nil
	}

	return configuration.Build()
}

// CreateConsoleLogger produces a message-only logger for human-readable command
// lifecycle output on standard error.
func (factory *LoggerFactory) CreateConsoleLogger(requestedLogLevel LogLevel) (*zap.Logger, error) {
	zapLogLevel, levelError := resolveLogLevel(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}

	configuration := zap.Config{
		Level:    zap.NewAtomicLevelAt(zapLogLevel),
		Encoding: consoleZapEncodingStringConstant,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: consoleMessageKeyConstant,
			LineEnding: zapcore.DefaultLineEnding,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{standardErrorOutputPathConstant},
		ErrorOutputPaths:  []string{standardErrorOutputPathConstant},
	}
	return configuration.Build()
}

func resolveLogLevel(requestedLogLevel LogLevel) (zapcore.Level, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(strings.ToLower(strings.TrimSpace(string(requestedLogLevel))))]
	if !levelExists {
		return zapcore.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}
	return zapLogLevel, nil
}
