package cargo

import (
	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/presets"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

// Configuration captures the presets section of the application configuration.
type Configuration struct {
	Format presets.CargoFormat  `mapstructure:"fmt"`
	Doc    presets.CargoDoc     `mapstructure:"doc"`
	Build  presets.CargoCommand `mapstructure:"build"`
}

// DefaultConfiguration returns the built-in preset defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		Format: presets.DefaultCargoFormat(),
		Doc:    presets.DefaultCargoDoc(),
		Build:  presets.DefaultCargoCommand(),
	}
}

// ConfigurationProvider yields the configured presets.
type ConfigurationProvider func() Configuration

// Dependencies are shared by every preset command builder.
type Dependencies struct {
	LoggerProvider         shared.LoggerProvider
	EventObserverProvider  shared.EventObserverProvider
	RunnerDefaultsProvider shared.RunnerDefaultsProvider
	ConfigurationProvider  ConfigurationProvider
	PathResolver           *pathutils.PathResolver
}

func (dependencies Dependencies) resolveConfiguration() Configuration {
	if dependencies.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return dependencies.ConfigurationProvider()
}

func (dependencies Dependencies) runnerConfiguration(presetConfiguration execshell.RunnerConfiguration) (execshell.RunnerConfiguration, error) {
	return shared.ResolveRunnerDefaults(dependencies.RunnerDefaultsProvider).Apply(presetConfiguration, dependencies.PathResolver)
}
