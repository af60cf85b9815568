// Package filesink writes extracted files to a directory.
package filesink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrUnsafePath is returned for archive paths that would escape the
// destination directory.
var ErrUnsafePath = errors.New("filesink: path escapes destination")

// FileSink writes files to the filesystem with atomic writes.
//
// Files are written to a temporary file in the same directory,
// then renamed to the final path. This ensures that partially
// written files are never visible at the final path.
type FileSink struct {
	destDir      string
	overwrite    bool
	preserveMode bool
}

// Option configures a FileSink.
type Option func(*FileSink)

// WithOverwrite allows overwriting existing files.
// By default, existing files are skipped.
func WithOverwrite(overwrite bool) Option {
	return func(s *FileSink) {
		s.overwrite = overwrite
	}
}

// WithPreserveMode applies the mode passed to Write to the written file.
// By default, files use umask defaults.
func WithPreserveMode(preserve bool) Option {
	return func(s *FileSink) {
		s.preserveMode = preserve
	}
}

// New creates a FileSink that writes to destDir.
//
// destDir must be an absolute path or relative to the current directory.
// Parent directories are created automatically as needed.
func New(destDir string, opts ...Option) *FileSink {
	s := &FileSink{
		destDir: destDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the destination path for a slash-separated archive path.
func (s *FileSink) Path(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(s.destDir, local), nil
}

// ShouldWrite returns false if the file already exists and overwrite is disabled.
func (s *FileSink) ShouldWrite(name string) bool {
	if s.overwrite {
		return true
	}
	destPath, err := s.Path(name)
	if err != nil {
		return true // Write reports the error
	}
	_, err = os.Stat(destPath)
	return os.IsNotExist(err)
}

// Write stores content at the archive path name.
func (s *FileSink) Write(name string, content []byte, mode fs.FileMode) error {
	destPath, err := s.Path(name)
	if err != nil {
		return err
	}

	// Create parent directories
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	// Create temp file in same directory (for atomic rename)
	tempFile, err := os.CreateTemp(dir, ".asar-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()    //nolint:errcheck // we're cleaning up
		_ = os.Remove(tempPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close temp file: %w", err)
	}

	if s.preserveMode {
		if err := os.Chmod(tempPath, mode.Perm()); err != nil {
			_ = os.Remove(tempPath) //nolint:errcheck // best-effort cleanup
			return fmt.Errorf("chmod: %w", err)
		}
	}

	// Atomic rename to final path
	if err := os.Rename(tempPath, destPath); err != nil {
		_ = os.Remove(tempPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename to %s: %w", destPath, err)
	}
	return nil
}
