package asartype

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive operations.
var (
	// ErrTruncatedHeader is returned when the buffer is shorter than the
	// fixed framing region or the declared JSON header.
	ErrTruncatedHeader = errors.New("asar: truncated header")

	// ErrMalformedMetadata is returned when a metadata node is missing a
	// required field or has the wrong type.
	ErrMalformedMetadata = errors.New("asar: malformed metadata")

	// ErrUnsupportedAlgorithm is returned when an integrity record names an
	// unknown digest algorithm.
	ErrUnsupportedAlgorithm = errors.New("asar: unsupported integrity algorithm")

	// ErrUnpackedFile is returned when extracting a file stored outside the archive.
	ErrUnpackedFile = errors.New("asar: file is unpacked and cannot be extracted from the archive")

	// ErrOutOfRange is returned when an entry's byte range exceeds the buffer.
	ErrOutOfRange = errors.New("asar: entry out of range")

	// ErrIntegrityCheckFailed is returned when extracted content does not
	// match its integrity record.
	ErrIntegrityCheckFailed = errors.New("asar: integrity check failed")

	// ErrInvalidAlignment is returned when the payload alignment is not positive.
	ErrInvalidAlignment = errors.New("asar: invalid alignment")
)

// MetadataError describes a problem with one node of the JSON header.
//
// Err is ErrMalformedMetadata or ErrUnsupportedAlgorithm.
type MetadataError struct {
	Path   string
	Reason string
	Err    error
}

// Malformed returns a MetadataError wrapping ErrMalformedMetadata.
func Malformed(path, format string, args ...any) *MetadataError {
	return &MetadataError{Path: path, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedMetadata}
}

func (e *MetadataError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("%v at %s: %s", e.Err, e.Path, e.Reason)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}
