package asartype

import (
	"github.com/opencontainers/go-digest"
)

// Storage identifies where a file's bytes live.
type Storage uint8

const (
	// StorageInline marks a file whose bytes are in the archive payload region.
	StorageInline Storage = iota
	// StorageExternal marks a file stored outside the archive (unpacked).
	StorageExternal
)

func (s Storage) String() string {
	switch s {
	case StorageInline:
		return "inline"
	case StorageExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Integrity holds the declared digests of a file.
//
// Hash covers the whole file; Blocks holds one digest per BlockSize chunk.
type Integrity struct {
	Algorithm Algorithm
	Hash      digest.Digest
	BlockSize int
	Blocks    []digest.Digest
}

// FileEntry describes one file in the archive.
type FileEntry struct {
	// Size is the file length in bytes.
	Size uint64

	// Storage reports whether the file is inline or unpacked.
	Storage Storage

	// Offset is relative to the payload start. Only meaningful for inline files.
	Offset uint64

	// Executable is set when the header marks the file executable.
	Executable bool

	Integrity Integrity
}

// Unpacked reports whether the file is stored outside the archive.
func (e *FileEntry) Unpacked() bool {
	return e.Storage == StorageExternal
}
