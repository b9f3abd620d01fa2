package writer

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"wml-taglinks/properties"
)

// Writer handles writing entries to a properties file
type Writer struct {
	path string
}

// NewWriter creates a new properties file writer for path
func NewWriter(path string) *Writer {
	return &Writer{
		path: path,
	}
}

// Path returns the file the writer targets
func (w *Writer) Path() string {
	return w.path
}

// WriteEntries truncates the file and writes one entry per line.
// Parent directories are not created. The write is not atomic: a failure
// part way through leaves a truncated file behind.
func (w *Writer) WriteEntries(entries []properties.Entry) (int, error) {
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", w.path, err)
	}

	bw := bufio.NewWriter(f)
	written := 0
	for _, entry := range entries {
		if _, err := bw.WriteString(entry.String() + "\n"); err != nil {
			f.Close()
			return written, fmt.Errorf("failed to write %s: %w", w.path, err)
		}
		written++
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return written, fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("failed to close %s: %w", w.path, err)
	}

	slog.Debug("wrote properties file", "path", w.path, "lines", written)
	return written, nil
}
