// Package safe provides file operations with the validations mdimage applies
// to user supplied logs and images.
package safe

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize is the default maximum file size for safe file operations (64MB).
const DefaultMaxFileSize = 64 << 20

// ReadOptions configures OpenFile and ReadFile.
type ReadOptions struct {
	// MaxSize is the maximum allowed file size in bytes. Zero means DefaultMaxFileSize.
	MaxSize int64
	// AllowSymlinks allows reading through symlinks. Default is false.
	AllowSymlinks bool
}

// OpenFile opens a file for reading after checking that it is a regular file
// within the size limit. Symlinks are rejected unless explicitly allowed.
func OpenFile(path string, opts *ReadOptions) (*os.File, error) {
	cleanPath, err := validate(path, opts)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - the path was validated above.
	return os.Open(cleanPath)
}

// ReadFile reads a whole file with the same validations as OpenFile.
func ReadFile(path string, opts *ReadOptions) ([]byte, error) {
	cleanPath, err := validate(path, opts)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - the path was validated above.
	return os.ReadFile(cleanPath)
}

func validate(path string, opts *ReadOptions) (string, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	cleanPath := filepath.Clean(path)

	// Check file info without following symlinks.
	info, err := os.Lstat(cleanPath)
	if err != nil {
		return "", err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !opts.AllowSymlinks {
			return "", fmt.Errorf("file %q is a symlink, which is not allowed for security reasons", path)
		}
		info, err = os.Stat(cleanPath)
		if err != nil {
			return "", err
		}
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("path %q is not a regular file", path)
	}

	if info.Size() > maxSize {
		return "", fmt.Errorf("file %q exceeds maximum allowed size of %d bytes", path, maxSize)
	}

	return cleanPath, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so an interrupted run never leaves a truncated image behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
