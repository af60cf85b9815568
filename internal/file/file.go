// Package file provides fs.File and fs.FileInfo implementations for
// archive entries.
package file

import (
	"bytes"
	"io"
	"io/fs"
	"math"
	"time"

	"github.com/meigma/asar/internal/asartype"
)

// File implements fs.File over verified, in-memory content.
type File struct {
	*bytes.Reader
	info *Info
}

// Interface compliance.
var (
	_ fs.File     = (*File)(nil)
	_ io.ReaderAt = (*File)(nil)
	_ io.Seeker   = (*File)(nil)
)

// NewFile returns a File serving content under the given info.
func NewFile(content []byte, info *Info) *File {
	return &File{Reader: bytes.NewReader(content), info: info}
}

// Stat implements fs.File.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

// Close implements fs.File.
func (f *File) Close() error {
	return nil
}

// Info implements fs.FileInfo for a file entry.
type Info struct {
	entry *asartype.FileEntry
	name  string
}

// NewInfo creates an Info for entry under the given base name.
func NewInfo(entry *asartype.FileEntry, name string) *Info {
	return &Info{entry: entry, name: name}
}

func (fi *Info) Name() string { return fi.name }

// Size returns the declared size, clamped to the int64 range.
func (fi *Info) Size() int64 {
	if fi.entry.Size > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(fi.entry.Size)
}

func (fi *Info) Mode() fs.FileMode {
	if fi.entry.Executable {
		return 0o755
	}
	return 0o644
}

func (fi *Info) ModTime() time.Time { return time.Time{} }
func (fi *Info) IsDir() bool        { return false }

// Sys returns the underlying *asartype.FileEntry.
func (fi *Info) Sys() any { return fi.entry }

// DirInfo implements fs.FileInfo for folders.
type DirInfo struct {
	name string
}

// NewDirInfo creates a DirInfo with the given name.
func NewDirInfo(name string) *DirInfo {
	return &DirInfo{name: name}
}

func (di *DirInfo) Name() string       { return di.name }
func (di *DirInfo) Size() int64        { return 0 }
func (di *DirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o755 }
func (di *DirInfo) ModTime() time.Time { return time.Time{} }
func (di *DirInfo) IsDir() bool        { return true }
func (di *DirInfo) Sys() any           { return nil }

// DirEntry implements fs.DirEntry by wrapping fs.FileInfo.
type DirEntry struct {
	info fs.FileInfo
}

// NewDirEntry creates a DirEntry wrapping the given FileInfo.
func NewDirEntry(info fs.FileInfo) *DirEntry {
	return &DirEntry{info: info}
}

func (de *DirEntry) Name() string               { return de.info.Name() }
func (de *DirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *DirEntry) Type() fs.FileMode          { return de.info.Mode().Type() }
func (de *DirEntry) Info() (fs.FileInfo, error) { return de.info, nil }
func (de *DirEntry) String() string             { return fs.FormatDirEntry(de) }
