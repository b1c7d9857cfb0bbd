package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdkit/internal/execshell"
)

func TestCommandRepresentationNormalize(testInstance *testing.T) {
	sharedArguments := []string{"cargo", "// not a comment", "fmt"}

	testCases := []struct {
		name           string
		representation execshell.CommandRepresentation
		removeComments bool
		expectedKind   execshell.RepresentationKind
		expectedArgv   execshell.NormalizedArgv
	}{
		{
			name:           "default_is_raw_cargo",
			representation: execshell.DefaultCommandRepresentation(),
			removeComments: true,
			expectedKind:   execshell.RepresentationRawText,
			expectedArgv:   execshell.NormalizedArgv{"cargo"},
		},
		{
			name:           "presplit_ignores_comment_removal",
			representation: execshell.PresplitCommand(sharedArguments),
			removeComments: true,
			expectedKind:   execshell.RepresentationPresplitBorrowed,
			expectedArgv:   execshell.NormalizedArgv{"cargo", "// not a comment", "fmt"},
		},
		{
			name:           "owned_tokens_pass_through",
			representation: execshell.OwnedCommand("echo", "a b", "$HOME"),
			removeComments: true,
			expectedKind:   execshell.RepresentationPresplitOwned,
			expectedArgv:   execshell.NormalizedArgv{"echo", "a b", "$HOME"},
		},
		{
			name:           "empty_presplit",
			representation: execshell.PresplitCommand(nil),
			removeComments: true,
			expectedKind:   execshell.RepresentationPresplitBorrowed,
			expectedArgv:   execshell.NormalizedArgv(nil),
		},
		{
			name:           "zero_value_is_empty_raw",
			representation: execshell.CommandRepresentation{},
			removeComments: true,
			expectedKind:   execshell.RepresentationRawText,
			expectedArgv:   execshell.NormalizedArgv{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedKind, testCase.representation.Kind())
			argv, normalizeError := testCase.representation.Normalize(testCase.removeComments)
			require.NoError(testInstance, normalizeError)
			require.Equal(testInstance, testCase.expectedArgv, argv)
		})
	}
}

func TestOwnedCommandCopiesArguments(testInstance *testing.T) {
	arguments := []string{"cargo", "build"}
	representation := execshell.OwnedCommand(arguments...)
	arguments[1] = "test"

	argv, normalizeError := representation.Normalize(false)
	require.NoError(testInstance, normalizeError)
	require.Equal(testInstance, execshell.NormalizedArgv{"cargo", "build"}, argv)
}

func TestCommandRepresentationAccessors(testInstance *testing.T) {
	rawText, isRaw := execshell.RawCommand("cargo fmt").RawText()
	require.True(testInstance, isRaw)
	require.Equal(testInstance, "cargo fmt", rawText)

	_, hasArguments := execshell.RawCommand("cargo fmt").Arguments()
	require.False(testInstance, hasArguments)

	arguments, hasArguments := execshell.OwnedCommand("cargo", "fmt").Arguments()
	require.True(testInstance, hasArguments)
	require.Equal(testInstance, []string{"cargo", "fmt"}, arguments)

	_, isRaw = execshell.PresplitCommand([]string{"cargo"}).RawText()
	require.False(testInstance, isRaw)
}

func TestNormalizedArgvRendering(testInstance *testing.T) {
	argv := execshell.NormalizedArgv{"cargo", "+nightly", "fmt"}
	require.Equal(testInstance, `["cargo", "+nightly", "fmt"]`, argv.String())
	require.Equal(testInstance, "cargo +nightly fmt", argv.CommandLine())
	require.Equal(testInstance, "cargo", argv.Program())
	require.Equal(testInstance, []string{"+nightly", "fmt"}, argv.Arguments())
	require.NoError(testInstance, argv.Validate())

	emptyArgv := execshell.NormalizedArgv{}
	require.Equal(testInstance, "[]", emptyArgv.String())
	require.ErrorIs(testInstance, emptyArgv.Validate(), execshell.ErrEmptyCommand)
	require.Empty(testInstance, emptyArgv.Program())
	require.Nil(testInstance, emptyArgv.Arguments())
}
