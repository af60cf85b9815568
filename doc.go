// Package asar reads packed application archives.
//
// An archive is a single buffer holding a little-endian length prefix, a JSON
// header describing a directory tree, and the concatenated contents of every
// packed file. Each file declares its size, its offset from the start of the
// contents, and SHA-256 digests of the whole file and of each fixed-size
// block. Files marked "unpacked" are declared in the header but stored next
// to the archive instead of inside it.
//
// # Quick Start
//
// Open an archive and read a file:
//
//	a, err := asar.OpenFile("app.asar")
//	if err != nil {
//	    return err
//	}
//	content, err := a.ReadFile("dist/preload.js")
//
// Archive implements fs.FS, so it works with fs.WalkDir, fs.Glob and
// http.FS.
//
// # Low-level access
//
// DecodeHeader parses the header once; the returned View can be reused for
// any number of Extract calls against the same buffer:
//
//	view, err := asar.DecodeHeader(data, asar.DefaultAlignment)
//	if err != nil {
//	    return err
//	}
//	entry, ok := view.Root.FindFile("preload.js")
//	if !ok {
//	    return fs.ErrNotExist
//	}
//	content, result, err := asar.Extract(data, view, entry)
//	if err != nil {
//	    return err
//	}
//	if !result.OK() {
//	    log.Printf("preload.js: %v", result.Err())
//	}
//
// By default a digest mismatch is reported through the Result and the bytes
// are still returned. ExtractWithForceValidate and WithStrict turn a
// mismatch into an error wrapping ErrIntegrityCheckFailed.
//
// # Concurrency
//
// Views, folders and entries are never modified after decoding. An Archive
// may be used from multiple goroutines without locking.
package asar
