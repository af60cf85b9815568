// Package testutil builds in-memory archives for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/opencontainers/go-digest"

	"github.com/meigma/asar/internal/asartype"
)

// DefaultBlockSize matches the block size used by archive writers (4MiB).
const DefaultBlockSize = 4 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File describes one file to place in a test archive.
type File struct {
	Path       string
	Data       []byte
	Unpacked   bool
	Executable bool
}

// Options configures Build.
type Options struct {
	// BlockSize is the integrity block size. Zero uses DefaultBlockSize.
	BlockSize int
	// Alignment pads the payload start. Zero uses 4.
	Alignment int
}

// Archive is a built test archive.
type Archive struct {
	Data         []byte
	Header       []byte
	PayloadStart int
	// Offsets maps inline file paths to their payload-relative offset.
	Offsets map[string]uint64
}

// Record computes the integrity record for data.
func Record(data []byte, blockSize int) asartype.Integrity {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	rec := asartype.Integrity{
		Algorithm: asartype.AlgorithmSHA256,
		Hash:      digest.SHA256.FromBytes(data),
		BlockSize: blockSize,
	}
	rest := data
	for {
		end := min(blockSize, len(rest))
		rec.Blocks = append(rec.Blocks, digest.SHA256.FromBytes(rest[:end]))
		rest = rest[end:]
		if len(rest) == 0 {
			break
		}
	}
	return rec
}

// IntegrityNode returns the JSON form of rec.
func IntegrityNode(rec asartype.Integrity) *Object {
	blocks := make([]string, 0, len(rec.Blocks))
	for _, b := range rec.Blocks {
		blocks = append(blocks, b.Encoded())
	}
	return NewObject().
		Set("algorithm", string(rec.Algorithm)).
		Set("hash", rec.Hash.Encoded()).
		Set("blockSize", rec.BlockSize).
		Set("blocks", blocks)
}

// Build lays out files as an archive. Files are stored in the given order and
// directories are created in the order their first file appears.
func Build(tb testing.TB, files []File, opts Options) *Archive {
	tb.Helper()

	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	if opts.Alignment <= 0 {
		opts.Alignment = 4
	}

	root := NewObject()
	offsets := make(map[string]uint64)
	var payload bytes.Buffer
	for _, f := range files {
		elems := strings.Split(f.Path, "/")
		dir := root
		for _, name := range elems[:len(elems)-1] {
			sub, ok := dir.Get(name)
			if !ok {
				sub = NewObject().Set("files", NewObject())
				dir.Set(name, sub)
			}
			children, _ := sub.(*Object).Get("files")
			dir = children.(*Object)
		}

		node := NewObject().Set("size", len(f.Data))
		if f.Unpacked {
			node.Set("unpacked", true)
		} else {
			offsets[f.Path] = uint64(payload.Len())
			node.Set("offset", strconv.Itoa(payload.Len()))
			payload.Write(f.Data)
		}
		if f.Executable {
			node.Set("executable", true)
		}
		node.Set("integrity", IntegrityNode(Record(f.Data, opts.BlockSize)))
		dir.Set(elems[len(elems)-1], node)
	}

	header, err := json.Marshal(NewObject().Set("files", root))
	if err != nil {
		tb.Fatalf("marshal header: %v", err)
	}

	data := Raw(header, payload.Bytes(), opts.Alignment)
	return &Archive{
		Data:         data,
		Header:       header,
		PayloadStart: len(data) - payload.Len(),
		Offsets:      offsets,
	}
}

// Raw frames an arbitrary header and payload the way archive writers do.
func Raw(header, payload []byte, alignment int) []byte {
	end := 16 + len(header)
	start := (end + alignment - 1) / alignment * alignment

	out := make([]byte, start, start+len(payload))
	binary.LittleEndian.PutUint32(out[0:4], 4)
	binary.LittleEndian.PutUint32(out[4:8], uint32(start-8))  //nolint:gosec // test sizes are small
	binary.LittleEndian.PutUint32(out[8:12], uint32(start-12)) //nolint:gosec // test sizes are small
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(header)))
	copy(out[16:], header)
	return append(out, payload...)
}

// Object is a JSON object that marshals its keys in insertion order.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set stores v under key and returns o for chaining.
func (o *Object) Set(key string, v any) *Object {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Delete removes key.
func (o *Object) Delete(key string) *Object {
	if _, ok := o.vals[key]; !ok {
		return o
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return o
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
