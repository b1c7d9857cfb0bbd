// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns runner lifecycle events into concise zap
// messages, while TargetTableRenderer prints rustc target listings with
// colored headings.
package ui
