package presets

import "strings"

const (
	cargoReleaseProfileNameConstant = "release"
	cargoDevProfileNameConstant     = "dev"
	cargoDebugProfileAliasConstant  = "debug"
)

// CargoProfile names a cargo build profile. The empty value omits --profile.
type CargoProfile string

// Built-in cargo profiles.
const (
	CargoProfileRelease CargoProfile = cargoReleaseProfileNameConstant
	CargoProfileDev     CargoProfile = cargoDevProfileNameConstant
)

// ParseCargoProfile maps "debug" and "dev" to the dev profile and passes custom names through.
func ParseCargoProfile(rawValue string) CargoProfile {
	trimmedValue := strings.TrimSpace(rawValue)
	switch trimmedValue {
	case cargoDebugProfileAliasConstant, cargoDevProfileNameConstant:
		return CargoProfileDev
	default:
		return CargoProfile(trimmedValue)
	}
}

// String returns the profile name passed to cargo.
func (profile CargoProfile) String() string {
	if profile == cargoDebugProfileAliasConstant {
		return cargoDevProfileNameConstant
	}
	return string(profile)
}

// SubCommand names the cargo subcommand. Values other than the built-in ones pass through verbatim.
type SubCommand string

// Built-in cargo subcommands.
const (
	SubCommandBuild SubCommand = "build"
	SubCommandRun   SubCommand = "run"
	SubCommandTest  SubCommand = "test"
	SubCommandBench SubCommand = "bench"
	SubCommandCheck SubCommand = "check"
	SubCommandRustc SubCommand = "rustc"
)

// BuiltinSubCommands lists the subcommands with dedicated constants.
func BuiltinSubCommands() []SubCommand {
	return []SubCommand{SubCommandBuild, SubCommandRun, SubCommandTest, SubCommandBench, SubCommandCheck, SubCommandRustc}
}

// String returns the subcommand name.
func (subCommand SubCommand) String() string {
	return string(subCommand)
}
