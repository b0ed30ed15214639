package history

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sambeau/unitconv/pkg/errors"
	"github.com/sambeau/unitconv/pkg/fsutil"
)

// FileBackend stores one entry per line in a plain text file.
type FileBackend struct {
	path   string
	logger *zap.Logger
}

// NewFileBackend returns a backend for path. The file and its directory are
// created on first write.
func NewFileBackend(path string, logger *zap.Logger) *FileBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileBackend{path: path, logger: logger}
}

// Path returns the file path.
func (f *FileBackend) Path() string {
	return f.path
}

// Load reads every well-formed line. Malformed lines are skipped.
func (f *FileBackend) Load() ([]Entry, error) {
	file, err := os.Open(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.StorageUnavailable("read", f.path, err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := e.UnmarshalText(line); err != nil {
			f.logger.Debug("skipping malformed history line",
				zap.String("path", f.path), zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, errors.StorageUnavailable("read", f.path, err)
	}
	return entries, nil
}

// Append writes one line at the end of the file.
func (f *FileBackend) Append(e Entry) error {
	line, err := e.MarshalText()
	if err != nil {
		return errors.StorageUnavailable("write", f.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.StorageUnavailable("write", f.path, err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.StorageUnavailable("write", f.path, err)
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		file.Close()
		return errors.StorageUnavailable("write", f.path, err)
	}
	if err := file.Close(); err != nil {
		return errors.StorageUnavailable("write", f.path, err)
	}
	return nil
}

// Rewrite replaces the file through a temporary file and a rename.
func (f *FileBackend) Rewrite(entries []Entry) error {
	var buf bytes.Buffer
	for _, e := range entries {
		line, err := e.MarshalText()
		if err != nil {
			return errors.StorageUnavailable("write", f.path, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return fsutil.WriteFileAtomic(f.path, buf.Bytes())
}

// Close is a no-op; the file is opened per operation.
func (f *FileBackend) Close() error {
	return nil
}
