package asar

import "github.com/meigma/asar/internal/asartype"

// Errors re-exported from internal/asartype.
var (
	// ErrTruncatedHeader is returned when the buffer is too short for the header.
	ErrTruncatedHeader = asartype.ErrTruncatedHeader

	// ErrMalformedMetadata is returned when the JSON header is missing a
	// required field or has a field of the wrong type.
	ErrMalformedMetadata = asartype.ErrMalformedMetadata

	// ErrUnsupportedAlgorithm is returned when an integrity record names an
	// unknown digest algorithm.
	ErrUnsupportedAlgorithm = asartype.ErrUnsupportedAlgorithm

	// ErrUnpackedFile is returned when extracting a file that is stored
	// outside the archive.
	ErrUnpackedFile = asartype.ErrUnpackedFile

	// ErrOutOfRange is returned when an entry's bytes lie outside the buffer.
	ErrOutOfRange = asartype.ErrOutOfRange

	// ErrIntegrityCheckFailed is returned when content does not match its
	// integrity record and strict verification is enabled.
	ErrIntegrityCheckFailed = asartype.ErrIntegrityCheckFailed

	// ErrInvalidAlignment is returned for a non-positive payload alignment.
	ErrInvalidAlignment = asartype.ErrInvalidAlignment
)
