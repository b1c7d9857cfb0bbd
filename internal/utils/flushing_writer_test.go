package utils_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cmdkit/internal/utils"
)

func TestFlushingWriterFlushesBufferedWriters(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriterSize(destination, 4096)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := flushingWriter.Write([]byte("[\"cargo\", \"fmt\"]\n"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 17, bytesWritten)
	require.Equal(testInstance, "[\"cargo\", \"fmt\"]\n", destination.String())
}

func TestNewFlushingWriterWrapping(testInstance *testing.T) {
	require.Nil(testInstance, utils.NewFlushingWriter(nil))

	destination := &bytes.Buffer{}
	flushingWriter := utils.NewFlushingWriter(destination)
	require.Same(testInstance, flushingWriter, utils.NewFlushingWriter(flushingWriter))

	typedWriter, isFlushingWriter := flushingWriter.(*utils.FlushingWriter)
	require.True(testInstance, isFlushingWriter)
	require.Same(testInstance, destination, typedWriter.Unwrap())
}
