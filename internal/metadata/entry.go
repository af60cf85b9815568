package metadata

import (
	"strconv"

	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/integrity"
	"github.com/meigma/asar/internal/jsontree"
	"github.com/meigma/asar/internal/pathutil"
)

// File node keys.
const (
	keySize       = "size"
	keyOffset     = "offset"
	keyUnpacked   = "unpacked"
	keyExecutable = "executable"
	keyIntegrity  = "integrity"
)

// decodeFile parses one file node.
//
// A file is inline when it declares an offset and is not marked unpacked,
// and external when it is marked unpacked and declares no offset. Any other
// combination leaves the storage ambiguous and is rejected.
func decodeFile(n *jsontree.Node, path string) (*asartype.FileEntry, error) {
	if n.Kind() != jsontree.KindObject {
		return nil, asartype.Malformed(path, "expected object, got %s", n.Kind())
	}

	entry := &asartype.FileEntry{}

	v, ok := n.Field(keySize)
	if !ok {
		return nil, asartype.Malformed(path, "missing %q", keySize)
	}
	if entry.Size, ok = v.AsUint64(); !ok {
		return nil, asartype.Malformed(pathutil.Join(path, keySize), "expected non-negative integer")
	}

	unpacked := false
	if v, ok := n.Field(keyUnpacked); ok {
		if unpacked, ok = v.AsBool(); !ok {
			return nil, asartype.Malformed(pathutil.Join(path, keyUnpacked), "expected boolean, got %s", v.Kind())
		}
	}

	offsetNode, hasOffset := n.Field(keyOffset)
	switch {
	case hasOffset && unpacked:
		return nil, asartype.Malformed(path, "both %q and %q are set", keyOffset, keyUnpacked)
	case hasOffset:
		s, ok := offsetNode.AsString()
		if !ok {
			return nil, asartype.Malformed(pathutil.Join(path, keyOffset), "expected string, got %s", offsetNode.Kind())
		}
		off, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, asartype.Malformed(pathutil.Join(path, keyOffset), "invalid offset %q", s)
		}
		entry.Storage = asartype.StorageInline
		entry.Offset = off
	case unpacked:
		entry.Storage = asartype.StorageExternal
	default:
		return nil, asartype.Malformed(path, "neither %q nor %q is set", keyOffset, keyUnpacked)
	}

	if v, ok := n.Field(keyExecutable); ok {
		if entry.Executable, ok = v.AsBool(); !ok {
			return nil, asartype.Malformed(pathutil.Join(path, keyExecutable), "expected boolean, got %s", v.Kind())
		}
	}

	v, ok = n.Field(keyIntegrity)
	if !ok {
		return nil, asartype.Malformed(path, "missing %q", keyIntegrity)
	}
	rec, err := integrity.Decode(v, pathutil.Join(path, keyIntegrity))
	if err != nil {
		return nil, err
	}
	entry.Integrity = rec

	return entry, nil
}
