// Package presets builds argv vectors for common cargo and rustc invocations.
//
// Presets are plain structs with mapstructure and yaml tags so they can be
// loaded from configuration. Each preset renders its argv deterministically and
// converts into an execshell.RunnerConfiguration.
package presets
