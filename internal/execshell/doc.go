// Package execshell turns command descriptions into running child processes.
//
// A CommandRepresentation is either shell-like text or a pre-split argv. Text is
// trimmed, optionally stripped of "//" comment lines, and tokenized with POSIX
// quoting rules; no shell is ever invoked. ProcessSpawner launches the
// normalized argv with configurable stdio wiring and optional standard input
// data, and Decode converts captured output into text. Runner combines these
// steps with inspection of the argv before execution.
package execshell
