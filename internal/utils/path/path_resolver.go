package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// PathResolver turns user supplied paths into paths usable as a child working directory or input file.
type PathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewPathResolver constructs a PathResolver using the operating system home lookup.
func NewPathResolver() *PathResolver {
	return NewPathResolverWithProvider(os.UserHomeDir)
}

// NewPathResolverWithProvider constructs a PathResolver with a custom home directory provider.
func NewPathResolverWithProvider(provider HomeDirectoryProvider) *PathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &PathResolver{homeDirectoryProvider: provider}
}

// ExpandHome resolves a leading "~" or "~/" to the user's home directory.
// Paths such as "~user" and paths without a tilde are returned unchanged.
func (resolver *PathResolver) ExpandHome(candidatePath string) string {
	if resolver == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	homeDirectory := resolver.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix))
	default:
		return candidatePath
	}
}

// Resolve trims the path, expands the home prefix, and anchors relative paths
// at baseDirectory when one is given. An empty path stays empty so callers can
// keep inheriting the current directory.
func (resolver *PathResolver) Resolve(candidatePath string, baseDirectory string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}

	expandedPath := resolver.ExpandHome(trimmedPath)
	trimmedBaseDirectory := strings.TrimSpace(baseDirectory)
	if filepath.IsAbs(expandedPath) || len(trimmedBaseDirectory) == 0 {
		return filepath.Clean(expandedPath)
	}
	return filepath.Join(resolver.ExpandHome(trimmedBaseDirectory), expandedPath)
}

func (resolver *PathResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
