package presets_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdkit/internal/execshell"
	"github.com/temirov/cmdkit/internal/presets"
)

func TestCargoFormatArgv(testInstance *testing.T) {
	testCases := []struct {
		name         string
		preset       presets.CargoFormat
		expectedArgv []string
	}{
		{name: "default_nightly", preset: presets.DefaultCargoFormat(), expectedArgv: []string{"cargo", "+nightly", "fmt"}},
		{name: "stable", preset: presets.CargoFormat{Nightly: false}, expectedArgv: []string{"cargo", "fmt"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedArgv, testCase.preset.Argv())

			configuration := testCase.preset.RunnerConfiguration()
			require.True(testInstance, configuration.RemoveComments)
			require.Equal(testInstance, execshell.InspectStderr, configuration.InspectMode)
			require.Equal(testInstance, execshell.RepresentationPresplitOwned, configuration.Command.Kind())
			argv, normalizeError := configuration.Command.Normalize(true)
			require.NoError(testInstance, normalizeError)
			require.Equal(testInstance, execshell.NormalizedArgv(testCase.expectedArgv), argv)
		})
	}
}

func TestCargoDocArgv(testInstance *testing.T) {
	testCases := []struct {
		name         string
		preset       presets.CargoDoc
		expectedArgv []string
	}{
		{
			name:         "defaults",
			preset:       presets.DefaultCargoDoc(),
			expectedArgv: []string{"cargo", "+nightly", "rustdoc", "--all-features", "--open", "--", "--cfg", "__unstable_doc", "--document-private-items"},
		},
		{
			name: "with_package",
			preset: func() presets.CargoDoc {
				preset := presets.DefaultCargoDoc()
				preset.Package = "testutils"
				return preset
			}(),
			expectedArgv: []string{"cargo", "+nightly", "rustdoc", "--package", "testutils", "--all-features", "--open", "--", "--cfg", "__unstable_doc", "--document-private-items"},
		},
		{
			name:         "everything_disabled",
			preset:       presets.CargoDoc{},
			expectedArgv: []string{"cargo", "rustdoc", "--"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedArgv, testCase.preset.Argv())
		})
	}
}

func TestCargoCommandArgv(testInstance *testing.T) {
	testCases := []struct {
		name         string
		preset       func() presets.CargoCommand
		expectedArgv []string
	}{
		{
			name:         "defaults",
			preset:       presets.DefaultCargoCommand,
			expectedArgv: []string{"cargo", "build", "--profile=release"},
		},
		{
			name: "nightly_cross_build_std",
			preset: func() presets.CargoCommand {
				preset := presets.DefaultCargoCommand()
				preset.Nightly = true
				preset.Package = "testutils"
				preset.Target = presets.TargetAarch64LinuxAndroid
				preset.BuildStd = presets.BuildStd{Core: true, Alloc: true}
				preset.BuildStdFeatures = presets.BuildStdFeatures{PanicImmediateAbort: true}
				return preset
			},
			expectedArgv: []string{
				"cargo",
				"+nightly",
				"build",
				"--profile=release",
				"--package=testutils",
				"--target=aarch64-linux-android",
				"-Z",
				"build-std=core,alloc",
				"-Z",
				"build-std-features=panic_immediate_abort",
			},
		},
		{
			name: "every_switch",
			preset: func() presets.CargoCommand {
				return presets.CargoCommand{
					Cargo:             "",
					SubCommand:        presets.SubCommandTest,
					Profile:           presets.ParseCargoProfile("debug"),
					AllPackages:       true,
					AllFeatures:       true,
					NoDefaultFeatures: true,
					Features:          []string{"serde", "std"},
					BuildStd:          presets.BuildStd{BuildDefault: true},
					OtherArguments:    []string{"--", "--nocapture"},
				}
			},
			expectedArgv: []string{"cargo", "test", "--profile=dev", "--workspace", "--all-features", "--no-default-features", "--features=serde,std", "-Z", "build-std", "--", "--nocapture"},
		},
		{
			name: "custom_subcommand_without_profile",
			preset: func() presets.CargoCommand {
				return presets.CargoCommand{Cargo: "cross", SubCommand: presets.SubCommand("clippy")}
			},
			expectedArgv: []string{"cross", "clippy"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedArgv, testCase.preset().Argv())
		})
	}
}

func TestCargoCommandEnvironment(testInstance *testing.T) {
	preset := presets.DefaultCargoCommand()
	require.Equal(testInstance, map[string]string{"RUSTFLAGS": ""}, preset.EnvironmentVariables())

	preset.RustFlags = presets.RustFlags{NativeTargetCPU: presets.Bool(true)}
	configuration := preset.RunnerConfiguration()
	require.Equal(testInstance, map[string]string{"RUSTFLAGS": "-C target-cpu=native"}, configuration.EnvironmentVariables)
	require.NoError(testInstance, preset.Validate())
}

func TestCargoProfile(testInstance *testing.T) {
	require.Equal(testInstance, presets.CargoProfileDev, presets.ParseCargoProfile("debug"))
	require.Equal(testInstance, presets.CargoProfileDev, presets.ParseCargoProfile(" dev "))
	require.Equal(testInstance, presets.CargoProfileRelease, presets.ParseCargoProfile("release"))
	require.Equal(testInstance, "bench-lto", presets.ParseCargoProfile("bench-lto").String())
	require.Equal(testInstance, "dev", presets.CargoProfile("debug").String())
}
