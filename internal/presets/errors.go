package presets

import "errors"

var (
	// ErrUnknownBuildStdComponent indicates a -Z build-std component name that is not recognized.
	ErrUnknownBuildStdComponent = errors.New("unknown build-std component")
	// ErrUnknownBuildStdFeature indicates a -Z build-std-features name that is not recognized.
	ErrUnknownBuildStdFeature = errors.New("unknown build-std feature")
	// ErrUnknownCodeModel indicates an unsupported -C code-model value.
	ErrUnknownCodeModel = errors.New("unknown code model")
	// ErrUnknownLinkerFlavor indicates an unsupported -C linker-flavor value.
	ErrUnknownLinkerFlavor = errors.New("unknown linker flavor")
	// ErrUnknownRelocationModel indicates an unsupported -C relocation-model value.
	ErrUnknownRelocationModel = errors.New("unknown relocation model")
	// ErrInvalidCodegenUnits indicates a codegen unit count below one.
	ErrInvalidCodegenUnits = errors.New("codegen units must be positive")
)

const unknownValueTemplateConstant = "%w: %q"
