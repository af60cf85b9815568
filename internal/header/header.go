// Package header decodes the fixed prefix and JSON header of an archive.
//
// Layout:
//
//	[0, 12)              framing written by archive tools, not interpreted
//	[12, 16)             uint32 length of the JSON header, little-endian
//	[16, 16+len)         JSON header {"files": {...}}
//	[16+len, payload)    padding up to the alignment boundary
//	[payload, EOF)       file contents, addressed by payload-relative offsets
package header

import (
	"encoding/binary"
	"fmt"

	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/jsontree"
	"github.com/meigma/asar/internal/metadata"
	"github.com/meigma/asar/internal/sizing"
)

const (
	// PrefixSize is the size of the fixed region before the JSON header.
	PrefixSize = 16

	// DefaultAlignment is the payload alignment used by archive writers.
	DefaultAlignment = 4

	lengthOffset = PrefixSize - 4
)

// ByteOrder is the byte order of the header length field. It is a property
// of the format and does not depend on the host.
var ByteOrder = binary.LittleEndian

// View is the decoded header of one archive buffer.
type View struct {
	// JSON aliases the header document inside the archive buffer.
	JSON []byte

	// HeaderEnd is the offset just past the JSON header.
	HeaderEnd uint64

	// PayloadStart is the offset of the first payload byte.
	PayloadStart uint64

	// Root is the top-level folder.
	Root *asartype.Folder
}

// Padding returns the number of bytes between the header and the payload.
func (v *View) Padding() uint64 {
	return v.PayloadStart - v.HeaderEnd
}

// Decode parses the header of data, padding the payload start to alignment.
func Decode(data []byte, alignment int) (*View, error) {
	doc, err := JSON(data)
	if err != nil {
		return nil, err
	}
	if alignment <= 0 {
		return nil, fmt.Errorf("%w: %d", asartype.ErrInvalidAlignment, alignment)
	}

	end := uint64(PrefixSize + len(doc))
	start, ok := sizing.AlignUp(end, uint64(alignment))
	if !ok {
		return nil, fmt.Errorf("%w: %d", asartype.ErrInvalidAlignment, alignment)
	}

	tree, err := jsontree.Parse(doc)
	if err != nil {
		return nil, &asartype.MetadataError{Reason: err.Error(), Err: asartype.ErrMalformedMetadata}
	}
	root, err := metadata.Build(tree)
	if err != nil {
		return nil, err
	}

	return &View{
		JSON:         doc,
		HeaderEnd:    end,
		PayloadStart: start,
		Root:         root,
	}, nil
}

// JSON returns the raw header document of data without parsing it.
func JSON(data []byte) ([]byte, error) {
	if len(data) < PrefixSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", asartype.ErrTruncatedHeader, len(data), PrefixSize)
	}
	size := uint64(ByteOrder.Uint32(data[lengthOffset:PrefixSize]))
	if size > uint64(len(data)-PrefixSize) {
		return nil, fmt.Errorf("%w: header declares %d bytes, buffer has %d after prefix",
			asartype.ErrTruncatedHeader, size, len(data)-PrefixSize)
	}
	return data[PrefixSize : PrefixSize+int(size)], nil //nolint:gosec // bounded by len(data) above
}
