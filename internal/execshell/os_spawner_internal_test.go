package execshell

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedStandardInput struct {
	writeError error
	closeError error
	written    []byte
	closed     bool
}

func (standardInput *scriptedStandardInput) Write(data []byte) (int, error) {
	if standardInput.writeError != nil {
		return 0, standardInput.writeError
	}
	standardInput.written = append(standardInput.written, data...)
	return len(data), nil
}

func (standardInput *scriptedStandardInput) Close() error {
	standardInput.closed = true
	return standardInput.closeError
}

func TestChildProcessFeedStandardInput(testInstance *testing.T) {
	brokenPipeError := &fs.PathError{Op: "write", Path: "|1", Err: syscall.EPIPE}
	testCases := []struct {
		name          string
		writeError    error
		closeError    error
		expectedCause error
	}{
		{name: "delivered", expectedCause: nil},
		{name: "broken_pipe_tolerated", writeError: brokenPipeError, expectedCause: nil},
		{name: "already_closed_tolerated", closeError: os.ErrClosed, expectedCause: nil},
		{name: "write_failure_reported", writeError: io.ErrShortWrite, expectedCause: io.ErrShortWrite},
		{name: "close_failure_reported", closeError: syscall.EIO, expectedCause: syscall.EIO},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			standardInput := &scriptedStandardInput{writeError: testCase.writeError, closeError: testCase.closeError}
			childProcess := &ChildProcess{argv: NormalizedArgv{"cat"}, standardInput: standardInput}

			feedError := childProcess.feedStandardInput([]byte("payload"))
			require.True(testInstance, standardInput.closed)
			require.Nil(testInstance, childProcess.StandardInput())

			if testCase.expectedCause == nil {
				require.NoError(testInstance, feedError)
				return
			}
			require.ErrorIs(testInstance, feedError, ErrStdinUnavailable)
			require.ErrorIs(testInstance, feedError, testCase.expectedCause)
			var stdinError StdinUnavailableError
			require.True(testInstance, errors.As(feedError, &stdinError))
			require.Equal(testInstance, NormalizedArgv{"cat"}, stdinError.Argv)
		})
	}
}

func TestChildProcessFeedStandardInputWithoutPipe(testInstance *testing.T) {
	childProcess := &ChildProcess{argv: NormalizedArgv{"cat"}}
	feedError := childProcess.feedStandardInput([]byte("payload"))
	require.ErrorIs(testInstance, feedError, ErrStdinUnavailable)
}
