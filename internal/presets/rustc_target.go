package presets

import (
	"slices"
	"sort"
	"strings"
)

const (
	targetTripleSeparatorConstant = "-"
	rustcProgramConstant          = "rustc"
	rustcPrintFlagConstant        = "--print"
	rustcTargetListValueConstant  = "target-list"
)

// RustcTarget is a rustc target triple such as aarch64-linux-android. The empty value omits --target.
type RustcTarget string

// Well-known target triples.
const (
	TargetAarch64AppleDarwin         RustcTarget = "aarch64-apple-darwin"
	TargetAarch64LinuxAndroid        RustcTarget = "aarch64-linux-android"
	TargetAarch64PCWindowsMSVC       RustcTarget = "aarch64-pc-windows-msvc"
	TargetAarch64UnknownLinuxGNU     RustcTarget = "aarch64-unknown-linux-gnu"
	TargetAarch64UnknownLinuxMusl    RustcTarget = "aarch64-unknown-linux-musl"
	TargetAarch64UnknownNone         RustcTarget = "aarch64-unknown-none"
	TargetArmv7LinuxAndroideabi      RustcTarget = "armv7-linux-androideabi"
	TargetArmv7UnknownLinuxGNUEABIHF RustcTarget = "armv7-unknown-linux-gnueabihf"
	TargetI686LinuxAndroid           RustcTarget = "i686-linux-android"
	TargetI686PCWindowsMSVC          RustcTarget = "i686-pc-windows-msvc"
	TargetI686UnknownLinuxGNU        RustcTarget = "i686-unknown-linux-gnu"
	TargetLoongarch64LinuxGNU        RustcTarget = "loongarch64-unknown-linux-gnu"
	TargetPowerpc64leLinuxGNU        RustcTarget = "powerpc64le-unknown-linux-gnu"
	TargetRiscv64gcLinuxGNU          RustcTarget = "riscv64gc-unknown-linux-gnu"
	TargetRiscv64gcUnknownNoneElf    RustcTarget = "riscv64gc-unknown-none-elf"
	TargetS390xLinuxGNU              RustcTarget = "s390x-unknown-linux-gnu"
	TargetThumbv7emNoneEabihf        RustcTarget = "thumbv7em-none-eabihf"
	TargetWasm32UnknownUnknown       RustcTarget = "wasm32-unknown-unknown"
	TargetWasm32WasiP1               RustcTarget = "wasm32-wasip1"
	TargetWasm32WasiP2               RustcTarget = "wasm32-wasip2"
	TargetX8664AppleDarwin           RustcTarget = "x86_64-apple-darwin"
	TargetX8664LinuxAndroid          RustcTarget = "x86_64-linux-android"
	TargetX8664PCWindowsGNU          RustcTarget = "x86_64-pc-windows-gnu"
	TargetX8664PCWindowsMSVC         RustcTarget = "x86_64-pc-windows-msvc"
	TargetX8664UnknownFreeBSD        RustcTarget = "x86_64-unknown-freebsd"
	TargetX8664UnknownLinuxGNU       RustcTarget = "x86_64-unknown-linux-gnu"
	TargetX8664UnknownLinuxMusl      RustcTarget = "x86_64-unknown-linux-musl"
	TargetX8664UnknownNone           RustcTarget = "x86_64-unknown-none"
)

var knownRustcTargets = []RustcTarget{
	TargetAarch64AppleDarwin,
	TargetAarch64LinuxAndroid,
	TargetAarch64PCWindowsMSVC,
	TargetAarch64UnknownLinuxGNU,
	TargetAarch64UnknownLinuxMusl,
	TargetAarch64UnknownNone,
	TargetArmv7LinuxAndroideabi,
	TargetArmv7UnknownLinuxGNUEABIHF,
	TargetI686LinuxAndroid,
	TargetI686PCWindowsMSVC,
	TargetI686UnknownLinuxGNU,
	TargetLoongarch64LinuxGNU,
	TargetPowerpc64leLinuxGNU,
	TargetRiscv64gcLinuxGNU,
	TargetRiscv64gcUnknownNoneElf,
	TargetS390xLinuxGNU,
	TargetThumbv7emNoneEabihf,
	TargetWasm32UnknownUnknown,
	TargetWasm32WasiP1,
	TargetWasm32WasiP2,
	TargetX8664AppleDarwin,
	TargetX8664LinuxAndroid,
	TargetX8664PCWindowsGNU,
	TargetX8664PCWindowsMSVC,
	TargetX8664UnknownFreeBSD,
	TargetX8664UnknownLinuxGNU,
	TargetX8664UnknownLinuxMusl,
	TargetX8664UnknownNone,
}

// KnownRustcTargets returns the built-in catalogue sorted by triple.
func KnownRustcTargets() []RustcTarget {
	return append([]RustcTarget(nil), knownRustcTargets...)
}

// IsKnown reports whether the target belongs to the built-in catalogue.
func (target RustcTarget) IsKnown() bool {
	return slices.Contains(knownRustcTargets, target)
}

// Architecture returns the first component of the triple.
func (target RustcTarget) Architecture() string {
	architecture, _, _ := strings.Cut(string(target), targetTripleSeparatorConstant)
	return architecture
}

// Platform returns everything after the architecture component.
func (target RustcTarget) Platform() string {
	_, platform, _ := strings.Cut(string(target), targetTripleSeparatorConstant)
	return platform
}

// String returns the triple.
func (target RustcTarget) String() string {
	return string(target)
}

// ParseRustcTargetList reads the output of "rustc --print target-list", one triple per line.
// Blank lines are skipped and the result is sorted and deduplicated.
func ParseRustcTargetList(output string) []RustcTarget {
	uniqueTargets := make(map[RustcTarget]struct{})
	for _, line := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		uniqueTargets[RustcTarget(trimmedLine)] = struct{}{}
	}

	targets := make([]RustcTarget, 0, len(uniqueTargets))
	for target := range uniqueTargets {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(leftIndex, rightIndex int) bool {
		return targets[leftIndex] < targets[rightIndex]
	})
	return targets
}

// RustcTargetListArgv returns the argv that prints every target rustc supports.
func RustcTargetListArgv() []string {
	return []string{rustcProgramConstant, rustcPrintFlagConstant, rustcTargetListValueConstant}
}
