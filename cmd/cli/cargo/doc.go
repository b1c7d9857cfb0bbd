// Package cargo exposes the cargo presets (fmt, doc, build) and the rustc
// target listing as cobra commands. Configured presets are overridden only by
// flags the user actually set.
package cargo
