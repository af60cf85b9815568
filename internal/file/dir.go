package file

import (
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/meigma/asar/internal/asartype"
)

// Dir implements fs.ReadDirFile for a folder.
type Dir struct {
	info    *DirInfo
	entries []fs.DirEntry
	pos     int
}

// Interface compliance.
var _ fs.ReadDirFile = (*Dir)(nil)

// NewDir opens folder as a directory named name.
func NewDir(folder *asartype.Folder, name string) *Dir {
	return &Dir{info: NewDirInfo(name), entries: Entries(folder)}
}

// Entries returns the children of folder sorted by name.
func Entries(folder *asartype.Folder) []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, folder.Len())
	for name, entry := range folder.Files() {
		entries = append(entries, NewDirEntry(NewInfo(entry, name)))
	}
	for name := range folder.Folders() {
		entries = append(entries, NewDirEntry(NewDirInfo(name)))
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries
}

func (d *Dir) Read(_ []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: fs.ErrInvalid}
}

func (d *Dir) Stat() (fs.FileInfo, error) {
	return d.info, nil
}

func (d *Dir) Close() error {
	return nil
}

// ReadDir implements fs.ReadDirFile.
func (d *Dir) ReadDir(n int) ([]fs.DirEntry, error) {
	rest := d.entries[d.pos:]
	if n <= 0 {
		d.pos = len(d.entries)
		return slices.Clone(rest), nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(rest))
	d.pos += n
	return slices.Clone(rest[:n]), nil
}
