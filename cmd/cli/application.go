package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/cmdkit/cmd/cli/cargo"
	"github.com/temirov/cmdkit/cmd/cli/recipe"
	"github.com/temirov/cmdkit/cmd/cli/run"
	"github.com/temirov/cmdkit/cmd/cli/shared"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/ui"
	"github.com/temirov/cmdkit/internal/utils"
	"github.com/temirov/cmdkit/internal/utils/flags"
	pathutils "github.com/temirov/cmdkit/internal/utils/path"
)

const (
	applicationNameConstant                 = "cmdkit"
	applicationShortDescriptionConstant     = "Run commands and cargo presets without a shell"
	applicationLongDescriptionConstant      = "cmdkit tokenizes shell-like command text, strips // comments, prints the resulting argv, and runs it directly. It ships cargo fmt, doc and build presets and runs named recipes from YAML files."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	noColorFlagNameConstant                 = "no-color"
	noColorFlagUsageConstant                = "Disable colored output."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "CMDKIT"
	configurationNameConstant               = "cmdkit"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	defaultConfigurationSearchPathConstant  = "."
	versionTemplateConstant                 = "{{.Name}} {{.Version}}\n"
)

// Version is the release reported by --version. Release builds set it through -ldflags.
var Version = "dev"

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration `mapstructure:"common"`
	Runner  shared.RunnerDefaults          `mapstructure:"runner"`
	Presets cargo.Configuration            `mapstructure:"presets"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and loggers.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	consoleLogger         *zap.Logger
	eventObserver         execshell.CommandEventObserver
	pathResolver          *pathutils.PathResolver
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	noColorFlagValue      bool
}

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		pathResolver:        pathutils.NewPathResolver(),
		configuration:       DefaultApplicationConfiguration(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flags.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.logLevelFlagValue, logLevelFlagNameConstant, string(utils.LogLevelInfo), utils.LogLevelNames(), logLevelFlagUsageConstant)
	flags.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.logFormatFlagValue, logFormatFlagNameConstant, string(utils.LogFormatConsole), utils.LogFormatNames(), logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().BoolVar(&application.noColorFlagValue, noColorFlagNameConstant, false, noColorFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	eventObserverProvider := func() execshell.CommandEventObserver {
		return application.eventObserver
	}
	runnerDefaultsProvider := func() shared.RunnerDefaults {
		return application.configuration.Runner
	}
	presetDependencies := cargo.Dependencies{
		LoggerProvider:         loggerProvider,
		EventObserverProvider:  eventObserverProvider,
		RunnerDefaultsProvider: runnerDefaultsProvider,
		ConfigurationProvider: func() cargo.Configuration {
			return application.configuration.Presets
		},
		PathResolver: application.pathResolver,
	}

	builders := []commandBuilder{
		&run.CommandBuilder{
			LoggerProvider:         loggerProvider,
			EventObserverProvider:  eventObserverProvider,
			RunnerDefaultsProvider: runnerDefaultsProvider,
			PathResolver:           application.pathResolver,
		},
		&cargo.FormatCommandBuilder{Dependencies: presetDependencies},
		&cargo.DocCommandBuilder{Dependencies: presetDependencies},
		&cargo.BuildCommandBuilder{Dependencies: presetDependencies},
		&cargo.TargetsCommandBuilder{Dependencies: presetDependencies},
		&recipe.CommandBuilder{
			LoggerProvider:        loggerProvider,
			EventObserverProvider: eventObserverProvider,
			PathResolver:          application.pathResolver,
		},
	}
	for _, builder := range builders {
		subcommand, buildError := builder.Build()
		if buildError == nil {
			cobraCommand.AddCommand(subcommand)
		}
	}

	application.rootCommand = cobraCommand

	return application
}

// DefaultApplicationConfiguration returns the built-in configuration used before any source is loaded.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Common: ApplicationCommonConfiguration{
			LogLevel:  string(utils.LogLevelInfo),
			LogFormat: string(utils.LogFormatConsole),
		},
		Runner:  shared.DefaultRunnerDefaults(),
		Presets: cargo.DefaultConfiguration(),
	}
}

// Command returns the root Cobra command.
func (application *Application) Command() *cobra.Command {
	return application.rootCommand
}

// Configuration returns the configuration resolved by the most recent execution.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

// Execute runs the root command with the process arguments.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy with the provided arguments
// and flushes the loggers afterwards. Detached toggle values such as
// "--nightly no" are joined to their flag first.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	application.rootCommand.SetArgs(application.normalizeArguments(arguments))
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) normalizeArguments(arguments []string) []string {
	normalizedArguments := append([]string{}, arguments...)
	targetCommand, _, findError := application.rootCommand.Find(normalizedArguments)
	if findError != nil || targetCommand == nil {
		return normalizedArguments
	}
	if normalized := flags.NormalizeToggleArguments(targetCommand.Flags(), normalizedArguments); normalized != nil {
		return normalized
	}
	return normalizedArguments
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}

	configuration := DefaultApplicationConfiguration()
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configuration = configuration
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.noColorFlagValue {
		ui.DisableColors()
	}

	logLevel := utils.LogLevel(application.configuration.Common.LogLevel)
	logger, loggerCreationError := application.loggerFactory.CreateLogger(logLevel, utils.LogFormat(application.configuration.Common.LogFormat))
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	if application.humanReadableLoggingEnabled() {
		consoleLogger, consoleLoggerError := application.loggerFactory.CreateConsoleLogger(logLevel)
		if consoleLoggerError != nil {
			return fmt.Errorf(loggerCreationErrorTemplateConstant, consoleLoggerError)
		}
		application.consoleLogger = consoleLogger
		application.eventObserver = ui.NewConsoleCommandEventLogger(consoleLogger)
	} else {
		application.consoleLogger = nil
		application.eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.consoleLogger); syncError != nil {
		return syncError
	}
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
