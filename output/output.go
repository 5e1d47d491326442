// Package output persists analysis results as NDJSON, one record per
// line, for downstream tooling.
package output

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
)

// Writer appends JSON records to a file. Safe for concurrent use.
type Writer struct {
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
	mu   sync.Mutex
}

// New creates or truncates the NDJSON file at path.
func New(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriterSize(f, 64*1024)
	return &Writer{file: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Write appends one record. The encoder terminates each record with a
// newline, giving the NDJSON layout.
func (w *Writer) Write(record interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(record)
}

// Close flushes buffered records and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
