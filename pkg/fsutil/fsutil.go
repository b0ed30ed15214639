// Package fsutil holds small file helpers shared by the stores.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/sambeau/unitconv/pkg/errors"
)

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, creating the parent directory if needed. A failed write
// leaves any existing file untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.StorageUnavailable("write", path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.StorageUnavailable("write", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.StorageUnavailable("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.StorageUnavailable("write", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.StorageUnavailable("write", path, err)
	}
	return nil
}
