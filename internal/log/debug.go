// Package log provides the optional debug log. Messages written
// before a destination is chosen are buffered in memory so early
// startup activity still lands in the file once SetFile runs.
package log

import (
	"log"
	"os"
	"sync"
)

// debugSink implements io.Writer for the standard log.Logger. Writes
// go to the file when one is open, otherwise into the buffer.
type debugSink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	sink = &debugSink{}
	std  = log.New(sink, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (s *debugSink) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}

	if s.file != nil {
		n, err = s.file.Write(p)
		// Sync errors are not worth surfacing for a debug log.
		_ = s.file.Sync()
		return n, err
	}

	// The caller may reuse p, so keep a copy.
	b := make([]byte, len(p))
	copy(b, p)
	s.buffer = append(s.buffer, b...)
	return len(p), nil
}

// SetFile routes debug output to path, creating the file when needed
// and flushing anything buffered so far. An empty path switches the
// logger off and drops the buffer.
func SetFile(path string) error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.file != nil {
		_ = sink.file.Close()
		sink.file = nil
	}

	if path == "" {
		sink.discard = true
		sink.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		sink.discard = true
		sink.buffer = nil
		return err
	}

	sink.file = f
	sink.discard = false

	if len(sink.buffer) > 0 {
		_, _ = f.Write(sink.buffer)
		_ = f.Sync()
		sink.buffer = nil
	}

	return nil
}

// Enabled reports whether a debug file is currently open.
func Enabled() bool {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.file != nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	std.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	std.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.file == nil {
		return nil
	}

	err := sink.file.Close()
	sink.file = nil
	return err
}
