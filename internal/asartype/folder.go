package asartype

import (
	"iter"
	"slices"
	"strings"

	"github.com/meigma/asar/internal/pathutil"
)

// Folder is a directory node of the archive tree.
//
// Children keep the order in which they appeared in the header. A Folder is
// not modified after the header is decoded and is safe for concurrent reads.
type Folder struct {
	order   []child
	files   map[string]*FileEntry
	folders map[string]*Folder
}

type child struct {
	name string
	dir  bool
}

// NewFolder returns an empty folder.
func NewFolder() *Folder {
	return &Folder{
		files:   make(map[string]*FileEntry),
		folders: make(map[string]*Folder),
	}
}

// AddFile adds a file child. An existing child with the same name is
// replaced in place.
func (f *Folder) AddFile(name string, entry *FileEntry) {
	f.place(name, false)
	f.files[name] = entry
}

// AddFolder adds a subfolder child. An existing child with the same name is
// replaced in place.
func (f *Folder) AddFolder(name string, sub *Folder) {
	f.place(name, true)
	f.folders[name] = sub
}

func (f *Folder) place(name string, dir bool) {
	_, isFile := f.files[name]
	_, isDir := f.folders[name]
	if !isFile && !isDir {
		f.order = append(f.order, child{name: name, dir: dir})
		return
	}
	i := slices.IndexFunc(f.order, func(c child) bool { return c.name == name })
	delete(f.files, name)
	delete(f.folders, name)
	f.order[i].dir = dir
}

// Len returns the number of direct children.
func (f *Folder) Len() int {
	return len(f.order)
}

// Files returns an iterator over direct file children in header order.
func (f *Folder) Files() iter.Seq2[string, *FileEntry] {
	return func(yield func(string, *FileEntry) bool) {
		for _, c := range f.order {
			if c.dir {
				continue
			}
			if !yield(c.name, f.files[c.name]) {
				return
			}
		}
	}
}

// Folders returns an iterator over direct subfolders in header order.
func (f *Folder) Folders() iter.Seq2[string, *Folder] {
	return func(yield func(string, *Folder) bool) {
		for _, c := range f.order {
			if !c.dir {
				continue
			}
			if !yield(c.name, f.folders[c.name]) {
				return
			}
		}
	}
}

// Folder returns the direct subfolder with the given name.
func (f *Folder) Folder(name string) (*Folder, bool) {
	sub, ok := f.folders[name]
	return sub, ok
}

// Paths returns an iterator over relative paths under the folder.
//
// Without recursion it yields the name of every direct child, files and
// folders alike. With recursion it yields the slash-separated path of every
// file below the folder and no folder names. Order follows the header.
func (f *Folder) Paths(recursive bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !recursive {
			for _, c := range f.order {
				if !yield(c.name) {
					return
				}
			}
			return
		}
		for p := range f.Walk() {
			if !yield(p) {
				return
			}
		}
	}
}

// List collects Paths into a slice.
func (f *Folder) List(recursive bool) []string {
	return slices.Collect(f.Paths(recursive))
}

// Walk returns an iterator over every file below the folder with its
// slash-separated path relative to the folder.
func (f *Folder) Walk() iter.Seq2[string, *FileEntry] {
	return func(yield func(string, *FileEntry) bool) {
		f.walk("", yield)
	}
}

func (f *Folder) walk(prefix string, yield func(string, *FileEntry) bool) bool {
	for _, c := range f.order {
		p := pathutil.Join(prefix, c.name)
		if c.dir {
			if !f.folders[c.name].walk(p, yield) {
				return false
			}
			continue
		}
		if !yield(p, f.files[c.name]) {
			return false
		}
	}
	return true
}

// FindFile looks up a direct file child by the last element of path.
//
// Leading directories in path are ignored and subfolders are not searched.
func (f *Folder) FindFile(path string) (*FileEntry, bool) {
	entry, ok := f.files[pathutil.Base(path)]
	return entry, ok
}

// Lookup resolves a slash-separated path below the folder.
//
// Exactly one of the returned file and folder is non-nil when ok is true.
// The empty path and "." resolve to f itself.
func (f *Folder) Lookup(path string) (*FileEntry, *Folder, bool) {
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return nil, f, true
	}
	dir := f
	elems := pathutil.Split(path)
	for _, name := range elems[:len(elems)-1] {
		sub, ok := dir.folders[name]
		if !ok {
			return nil, nil, false
		}
		dir = sub
	}
	last := elems[len(elems)-1]
	if entry, ok := dir.files[last]; ok {
		return entry, nil, true
	}
	if sub, ok := dir.folders[last]; ok {
		return nil, sub, true
	}
	return nil, nil, false
}
