package asar

import "github.com/meigma/asar/internal/header"

// DecodeHeader decodes the header of an archive buffer.
//
// The payload start is the end of the JSON header rounded up to alignment;
// archive writers use DefaultAlignment. The returned View aliases data.
func DecodeHeader(data []byte, alignment int) (*View, error) {
	return header.Decode(data, alignment)
}

// HeaderJSON returns the raw JSON header of data without parsing it. The
// returned slice aliases data.
func HeaderJSON(data []byte) ([]byte, error) {
	return header.JSON(data)
}
