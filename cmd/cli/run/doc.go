// Package run provides the run command, which executes raw command text or a presplit argv.
package run
