package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdkit/cmd/cli"
	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/presets"
)

const (
	testConfigurationFileNameConstant = "cmdkit.yaml"
	testConfigurationContentConstant  = `
common:
  log_level: error
runner:
  inspect: none
  environment:
    - CMDKIT_TEST_VALUE=from-config
presets:
  build:
    profile: dev
    package: engine
    rust_flags:
      crt_static: true
`
	testQuietLogLevelArgumentConstant = "--log-level=error"
)

func executeApplication(testInstance *testing.T, arguments ...string) (*cli.Application, string, string, error) {
	testInstance.Helper()

	application := cli.NewApplication()
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	application.Command().SetOut(outputBuffer)
	application.Command().SetErr(errorBuffer)

	executionError := application.ExecuteWithArguments(arguments)
	return application, outputBuffer.String(), errorBuffer.String(), executionError
}

func writeConfiguration(testInstance *testing.T) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))
	return configurationPath
}

func TestApplicationRegistersCommands(testInstance *testing.T) {
	application := cli.NewApplication()

	registeredNames := make([]string, 0)
	for _, subcommand := range application.Command().Commands() {
		registeredNames = append(registeredNames, subcommand.Name())
	}
	for _, expectedName := range []string{"run", "fmt", "doc", "build", "targets", "recipe"} {
		require.Contains(testInstance, registeredNames, expectedName)
	}
}

func TestApplicationPrintsHelpWithoutArguments(testInstance *testing.T) {
	_, output, _, executionError := executeApplication(testInstance, testQuietLogLevelArgumentConstant)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Usage:")
	require.Contains(testInstance, output, "cmdkit tokenizes shell-like command text")
}

func TestApplicationUsesEmbeddedDefaults(testInstance *testing.T) {
	application, output, _, executionError := executeApplication(testInstance, testQuietLogLevelArgumentConstant, "build", "--print")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "RUSTFLAGS=\n[\"cargo\", \"build\", \"--profile=release\"]\n", output)

	configuration := application.Configuration()
	require.Equal(testInstance, execshell.InspectStderr, configuration.Runner.Inspect)
	require.True(testInstance, configuration.Runner.RemoveComments)
	require.True(testInstance, configuration.Presets.Format.Nightly)
	require.Equal(testInstance, "__unstable_doc", configuration.Presets.Doc.CustomConfiguration)
	require.Equal(testInstance, presets.CargoProfileRelease, configuration.Presets.Build.Profile)
}

func TestApplicationLoadsConfigurationFile(testInstance *testing.T) {
	configurationPath := writeConfiguration(testInstance)

	application, output, _, executionError := executeApplication(testInstance, "--config", configurationPath, "build", "--print", "--features", "simd")
	require.NoError(testInstance, executionError)
	require.Equal(
		testInstance,
		"RUSTFLAGS=-C target-feature=+crt-static\n[\"cargo\", \"build\", \"--profile=dev\", \"--package=engine\", \"--features=simd\"]\n",
		output,
	)

	configuration := application.Configuration()
	require.Equal(testInstance, "error", configuration.Common.LogLevel)
	require.Equal(testInstance, execshell.InspectNone, configuration.Runner.Inspect)
	require.Equal(testInstance, []string{"CMDKIT_TEST_VALUE=from-config"}, configuration.Runner.Environment)
}

func TestApplicationEnvironmentOverridesConfiguration(testInstance *testing.T) {
	configurationPath := writeConfiguration(testInstance)
	testInstance.Setenv("CMDKIT_PRESETS_BUILD_PROFILE", "bench")

	_, output, _, executionError := executeApplication(testInstance, "--config", configurationPath, "build", "--print")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "\"--profile=bench\"")
}

func TestApplicationNormalizesDetachedToggleValues(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectedOutput string
	}{
		{
			name:           "detached_yes",
			arguments:      []string{testQuietLogLevelArgumentConstant, "build", "--print", "--nightly", "yes"},
			expectedOutput: "RUSTFLAGS=\n[\"cargo\", \"+nightly\", \"build\", \"--profile=release\"]\n",
		},
		{
			name:           "detached_no",
			arguments:      []string{testQuietLogLevelArgumentConstant, "build", "--print", "--nightly", "no", "--workspace"},
			expectedOutput: "RUSTFLAGS=\n[\"cargo\", \"build\", \"--profile=release\", \"--workspace\"]\n",
		},
		{
			name:           "values_after_terminator",
			arguments:      []string{testQuietLogLevelArgumentConstant, "build", "--print", "--", "--nightly", "no"},
			expectedOutput: "RUSTFLAGS=\n[\"cargo\", \"build\", \"--profile=release\", \"--nightly\", \"no\"]\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, output, _, executionError := executeApplication(testInstance, testCase.arguments...)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, output)
		})
	}
}

func TestApplicationRunCommandUsesConfiguredRunner(testInstance *testing.T) {
	if _, lookupError := os.Stat("/bin/sh"); lookupError != nil {
		testInstance.Skip("requires a POSIX shell")
	}
	configurationPath := writeConfiguration(testInstance)

	_, output, inspection, executionError := executeApplication(
		testInstance,
		"--config", configurationPath,
		"run", "--capture", "stdout", "--", "sh -c 'printf \"%s\" \"$CMDKIT_TEST_VALUE\"' // note",
	)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "from-config", output)
	require.Empty(testInstance, inspection)
}

func TestApplicationRejectsInvalidLogSettings(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError string
	}{
		{
			name:          "unknown_log_level",
			arguments:     []string{"--log-level", "verbose", "targets"},
			expectedError: "verbose",
		},
		{
			name:          "unknown_log_format",
			arguments:     []string{"--log-format", "xml", "targets"},
			expectedError: "xml",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, _, _, executionError := executeApplication(testInstance, testCase.arguments...)
			require.Error(testInstance, executionError)
			require.True(testInstance, strings.Contains(executionError.Error(), testCase.expectedError))
		})
	}
}
