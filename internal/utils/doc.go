// Package utils exposes reusable helpers consumed by the cmdkit commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// CMDKIT_ environment variables through Viper. LoggerFactory builds the zap
// loggers handed explicitly to library code, and FlushingWriter keeps
// buffered console output visible while child processes run.
package utils
