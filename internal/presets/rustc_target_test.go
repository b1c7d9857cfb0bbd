package presets_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdkit/internal/presets"
)

func TestParseRustcTargetList(testInstance *testing.T) {
	output := "x86_64-unknown-linux-gnu\naarch64-linux-android\r\n\n  wasm32-unknown-unknown \naarch64-linux-android\n"
	targets := presets.ParseRustcTargetList(output)
	require.Equal(testInstance, []presets.RustcTarget{
		presets.TargetAarch64LinuxAndroid,
		presets.TargetWasm32UnknownUnknown,
		presets.TargetX8664UnknownLinuxGNU,
	}, targets)
	require.Empty(testInstance, presets.ParseRustcTargetList(""))
}

func TestRustcTargetComponents(testInstance *testing.T) {
	require.Equal(testInstance, "aarch64", presets.TargetAarch64LinuxAndroid.Architecture())
	require.Equal(testInstance, "linux-android", presets.TargetAarch64LinuxAndroid.Platform())
	require.True(testInstance, presets.TargetX8664PCWindowsMSVC.IsKnown())
	require.False(testInstance, presets.RustcTarget("z80-unknown-none").IsKnown())
	require.Equal(testInstance, []string{"rustc", "--print", "target-list"}, presets.RustcTargetListArgv())
}

func TestKnownRustcTargetsAreSorted(testInstance *testing.T) {
	knownTargets := presets.KnownRustcTargets()
	require.NotEmpty(testInstance, knownTargets)
	for targetIndex := 1; targetIndex < len(knownTargets); targetIndex++ {
		require.Less(testInstance, string(knownTargets[targetIndex-1]), string(knownTargets[targetIndex]))
	}
}
