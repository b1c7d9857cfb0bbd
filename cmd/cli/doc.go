// Package cli constructs the cmdkit command-line interface. It wires the Cobra
// command hierarchy to the layered configuration loader, the zap loggers, and
// the console observer that reports child process lifecycle events.
package cli
