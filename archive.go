package asar

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/meigma/asar/internal/file"
	"github.com/meigma/asar/internal/header"
	"github.com/meigma/asar/internal/pathutil"
)

// Interface compliance.
var (
	_ fs.FS         = (*Archive)(nil)
	_ fs.StatFS     = (*Archive)(nil)
	_ fs.ReadFileFS = (*Archive)(nil)
	_ fs.ReadDirFS  = (*Archive)(nil)
)

// Archive provides read access to an archive held in memory.
//
// The header is decoded once by New and reused for every read. Archive
// implements fs.FS, fs.StatFS, fs.ReadFileFS, and fs.ReadDirFS; folders are
// directories and unpacked files can be listed and stat'ed but not opened.
type Archive struct {
	data        []byte
	view        *View
	alignment   int
	strict      bool
	checkBlocks bool
	logger      *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// New decodes the header of data and returns an Archive over it.
//
// The data is retained by the Archive; callers must not modify it after
// calling New.
func New(data []byte, opts ...Option) (*Archive, error) {
	a := &Archive{
		data:        data,
		alignment:   header.DefaultAlignment,
		checkBlocks: true,
	}
	for _, opt := range opts {
		opt(a)
	}

	view, err := header.Decode(data, a.alignment)
	if err != nil {
		return nil, err
	}
	a.view = view

	a.log().Debug("decoded archive header",
		slog.Int("header_size", len(view.JSON)),
		slog.Uint64("header_end", view.HeaderEnd),
		slog.Uint64("padding", view.Padding()),
		slog.Uint64("payload_start", view.PayloadStart))
	return a, nil
}

// OpenFile reads the archive at path into memory and decodes it.
func OpenFile(path string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	a, err := New(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return a, nil
}

// View returns the decoded header.
func (a *Archive) View() *View {
	return a.view
}

// Root returns the top-level folder.
func (a *Archive) Root() *Folder {
	return a.view.Root
}

// Size returns the size of the archive buffer in bytes.
func (a *Archive) Size() int {
	return len(a.data)
}

// List returns the paths under the root folder. See Folder.Paths.
func (a *Archive) List(recursive bool) []string {
	return a.view.Root.List(recursive)
}

// Entry returns the file at the slash-separated path.
func (a *Archive) Entry(path string) (*FileEntry, bool) {
	entry, _, ok := a.view.Root.Lookup(path)
	if !ok || entry == nil {
		return nil, false
	}
	return entry, true
}

// Extract returns the bytes of entry and the outcome of verifying them,
// using the archive's strictness and block-check settings.
//
// The returned slice aliases the archive buffer and must not be modified.
func (a *Archive) Extract(entry *FileEntry) ([]byte, Result, error) {
	return Extract(a.data, a.view, entry, a.extractOptions(a.log())...)
}

func (a *Archive) extractOptions(logger *slog.Logger) []ExtractOption {
	return []ExtractOption{
		ExtractWithForceValidate(a.strict),
		ExtractWithBlockCheck(a.checkBlocks),
		ExtractWithLogger(logger),
	}
}

// Open implements fs.FS.
//
// Files are read and verified when opened. Under WithStrict, a file that
// fails verification cannot be opened.
func (a *Archive) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	entry, folder, ok := a.view.Root.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if folder != nil {
		return file.NewDir(folder, pathutil.Base(name)), nil
	}

	content, err := a.read(name, entry)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return file.NewFile(content, file.NewInfo(entry, pathutil.Base(name))), nil
}

// Stat implements fs.StatFS.
//
// Stat returns file info from the header without reading content. The
// info's Sys method returns the *FileEntry for files.
func (a *Archive) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	entry, _, ok := a.view.Root.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	if entry == nil {
		return file.NewDirInfo(pathutil.Base(name)), nil
	}
	return file.NewInfo(entry, pathutil.Base(name)), nil
}

// ReadFile implements fs.ReadFileFS.
//
// ReadFile returns a copy of the named file's content after verifying it.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}

	entry, _, ok := a.view.Root.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrNotExist}
	}
	if entry == nil {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}

	content, err := a.read(name, entry)
	if err != nil {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: err}
	}
	return content, nil
}

// ReadDir implements fs.ReadDirFS.
//
// ReadDir returns the entries of the named folder sorted by name.
func (a *Archive) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	_, folder, ok := a.view.Root.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	if folder == nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	return file.Entries(folder), nil
}

// read extracts and copies the content of entry.
func (a *Archive) read(name string, entry *FileEntry) ([]byte, error) {
	content, _, err := Extract(a.data, a.view, entry, a.extractOptions(a.log().With(slog.String("path", name)))...)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}
