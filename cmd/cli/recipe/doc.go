// Package recipe provides the recipe command, which runs named commands declared in a YAML file.
package recipe
