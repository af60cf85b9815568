package asar

import (
	"fmt"
	"log/slog"

	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/integrity"
	"github.com/meigma/asar/internal/sizing"
)

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	forceValidate bool
	checkBlocks   bool
	logger        *slog.Logger
}

// ExtractWithForceValidate makes a failed integrity check an error.
//
// By default Extract returns the content together with a failed Result and
// a nil error, leaving the decision to the caller.
func ExtractWithForceValidate(enabled bool) ExtractOption {
	return func(c *extractConfig) {
		c.forceValidate = enabled
	}
}

// ExtractWithBlockCheck controls whether per-block digests are verified in
// addition to the whole-file digest. Enabled by default.
func ExtractWithBlockCheck(enabled bool) ExtractOption {
	return func(c *extractConfig) {
		c.checkBlocks = enabled
	}
}

// ExtractWithLogger sets the logger used to report failed integrity checks.
// By default nothing is logged.
func ExtractWithLogger(logger *slog.Logger) ExtractOption {
	return func(c *extractConfig) {
		c.logger = logger
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (c *extractConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Extract returns the bytes of entry from data and the outcome of verifying
// them against the entry's integrity record.
//
// view must have been decoded from the same buffer; decode it once with
// DecodeHeader and reuse it for every entry. The returned slice aliases data
// and must not be modified.
//
// Extract fails with ErrUnpackedFile for files stored outside the archive and
// with ErrOutOfRange when the entry extends past the buffer. A failed
// integrity check is only an error under ExtractWithForceValidate, in which
// case no content is returned. When the content cannot be read at all, the
// returned Result has an empty Actual digest and does not report OK.
func Extract(data []byte, view *View, entry *FileEntry, opts ...ExtractOption) ([]byte, Result, error) {
	cfg := extractConfig{checkBlocks: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	content, err := payload(data, view, entry)
	if err != nil {
		// Nothing was hashed, so the result carries only the expected digest.
		return nil, Result{Block: -1, Expected: entry.Integrity.Hash}, err
	}

	res = integrity.Verify(content, entry.Integrity, cfg.checkBlocks)
	if res.OK() {
		return content, res, nil
	}

	cfg.log().Warn("integrity check failed",
		slog.String("status", res.Status().String()),
		slog.Int("block", res.Block),
		slog.String("want", res.Expected.String()),
		slog.String("got", res.Actual.String()),
		slog.Uint64("offset", entry.Offset),
		slog.Uint64("size", entry.Size))
	if cfg.forceValidate {
		return nil, res, fmt.Errorf("extract: %w", res.Err())
	}
	return content, res, nil
}

// payload slices the stored bytes of an inline entry out of data.
func payload(data []byte, view *View, entry *FileEntry) ([]byte, error) {
	if entry.Storage == asartype.StorageExternal {
		return nil, ErrUnpackedFile
	}

	start, ok := sizing.AddUint64(view.PayloadStart, entry.Offset)
	if !ok {
		return nil, fmt.Errorf("%w: offset %d overflows", ErrOutOfRange, entry.Offset)
	}
	end, ok := sizing.AddUint64(start, entry.Size)
	if !ok || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: bytes [%d, %d+%d) exceed archive size %d",
			ErrOutOfRange, start, start, entry.Size, len(data))
	}

	// end <= len(data), so both bounds fit in int.
	return data[start:end], nil
}
