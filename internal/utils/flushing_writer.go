package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter serializes writes and flushes buffered writers after each one,
// so captured command output and inspection lines appear in order.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps writer. Nil writers yield nil and already wrapped writers are returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the wrapped writer and flushes it when it supports Flush.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if bufferedWriter, buffered := flushingWriter.writer.(flusher); buffered {
		return bytesWritten, bufferedWriter.Flush()
	}
	return bytesWritten, nil
}

// Unwrap returns the wrapped writer.
func (flushingWriter *FlushingWriter) Unwrap() io.Writer {
	if flushingWriter == nil {
		return nil
	}
	return flushingWriter.writer
}
