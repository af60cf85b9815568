package asar

import (
	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/header"
)

// --- Re-exports from internal packages ---

// FileEntry describes one file in the archive.
type FileEntry = asartype.FileEntry

// Folder is a directory node of the archive tree.
type Folder = asartype.Folder

// Integrity holds the declared digests of a file.
type Integrity = asartype.Integrity

// Algorithm names the digest scheme of an integrity record.
type Algorithm = asartype.Algorithm

// Storage identifies where a file's bytes live.
type Storage = asartype.Storage

// Result is the outcome of an integrity check.
type Result = asartype.Result

// Status summarizes a Result.
type Status = asartype.Status

// MetadataError describes a problem with one node of the JSON header.
type MetadataError = asartype.MetadataError

// IntegrityError reports a failed integrity check.
type IntegrityError = asartype.IntegrityError

// View is the decoded header of one archive buffer: the folder tree and the
// offset where file contents begin. It is immutable and may be shared.
type View = header.View

// Algorithm constants.
const (
	AlgorithmSHA256 = asartype.AlgorithmSHA256
)

// Storage constants.
const (
	StorageInline   = asartype.StorageInline
	StorageExternal = asartype.StorageExternal
)

// Status constants.
const (
	StatusVerified       = asartype.StatusVerified
	StatusBlockMismatch  = asartype.StatusBlockMismatch
	StatusDigestMismatch = asartype.StatusDigestMismatch
)

// DefaultAlignment is the payload alignment used by archive writers.
const DefaultAlignment = header.DefaultAlignment
