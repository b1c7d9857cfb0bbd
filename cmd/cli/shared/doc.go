// Package shared holds the providers and runner helpers common to cmdkit subcommands.
package shared
