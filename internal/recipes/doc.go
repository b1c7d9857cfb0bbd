// Package recipes loads named command recipes from YAML and runs them through execshell.Runner.
package recipes
