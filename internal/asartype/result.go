package asartype

import (
	"fmt"

	"github.com/opencontainers/go-digest"
)

// Status summarizes the outcome of an integrity check.
type Status uint8

const (
	// StatusVerified means every checked digest matched.
	StatusVerified Status = iota
	// StatusBlockMismatch means a per-block digest did not match.
	StatusBlockMismatch
	// StatusDigestMismatch means the whole-file digest did not match.
	StatusDigestMismatch
)

func (s Status) String() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusBlockMismatch:
		return "block mismatch"
	case StatusDigestMismatch:
		return "digest mismatch"
	default:
		return "unknown"
	}
}

// Result is the outcome of verifying bytes against an Integrity record.
//
// Block is the index of the first mismatching block, or -1 when blocks
// matched or were not checked. Expected and Actual are whole-file digests;
// they are always computed, even when a block mismatch was found.
type Result struct {
	Block         int
	BlocksChecked bool
	Expected      digest.Digest
	Actual        digest.Digest
}

// Status returns the most specific failure, preferring block mismatches.
func (r Result) Status() Status {
	switch {
	case r.Block >= 0:
		return StatusBlockMismatch
	case r.Expected != r.Actual:
		return StatusDigestMismatch
	default:
		return StatusVerified
	}
}

// OK reports whether the content verified.
func (r Result) OK() bool {
	return r.Status() == StatusVerified
}

// DigestMatched reports whether the whole-file digest matched.
func (r Result) DigestMatched() bool {
	return r.Expected == r.Actual
}

// Err returns nil for a verified result and an *IntegrityError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &IntegrityError{Result: r}
}

// IntegrityError reports a failed integrity check. It wraps ErrIntegrityCheckFailed.
type IntegrityError struct {
	Result Result
}

func (e *IntegrityError) Error() string {
	if e.Result.Status() == StatusBlockMismatch {
		return fmt.Sprintf("%v: block %d mismatch", ErrIntegrityCheckFailed, e.Result.Block)
	}
	return fmt.Sprintf("%v: want %s, got %s", ErrIntegrityCheckFailed, e.Result.Expected, e.Result.Actual)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrityCheckFailed
}
