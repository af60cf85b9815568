package asar

import "log/slog"

// Option configures an Archive.
type Option func(*Archive)

// WithAlignment sets the payload alignment used to locate file contents.
// Archive writers use DefaultAlignment.
func WithAlignment(alignment int) Option {
	return func(a *Archive) {
		a.alignment = alignment
	}
}

// WithStrict makes reads fail with ErrIntegrityCheckFailed when content does
// not match its digests. When false, mismatches are logged and the content
// is returned anyway.
func WithStrict(strict bool) Option {
	return func(a *Archive) {
		a.strict = strict
	}
}

// WithBlockCheck controls whether per-block digests are verified on read.
// Enabled by default.
func WithBlockCheck(enabled bool) Option {
	return func(a *Archive) {
		a.checkBlocks = enabled
	}
}

// WithLogger sets the logger for diagnostic output. If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}
