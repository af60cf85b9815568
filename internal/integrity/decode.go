// Package integrity decodes integrity records from the archive header and
// verifies file content against them.
package integrity

import (
	"strconv"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/jsontree"
	"github.com/meigma/asar/internal/pathutil"
)

// Header keys of an integrity node.
const (
	keyAlgorithm = "algorithm"
	keyHash      = "hash"
	keyBlockSize = "blockSize"
	keyBlocks    = "blocks"
)

// Decode parses an integrity node. path locates the node in the header and
// is used in error messages.
func Decode(n *jsontree.Node, path string) (asartype.Integrity, error) {
	var rec asartype.Integrity
	if n.Kind() != jsontree.KindObject {
		return rec, asartype.Malformed(path, "expected object, got %s", n.Kind())
	}

	name, err := stringField(n, path, keyAlgorithm)
	if err != nil {
		return rec, err
	}
	rec.Algorithm = asartype.Algorithm(name)
	alg, ok := rec.Algorithm.Digest()
	if !ok {
		return rec, &asartype.MetadataError{
			Path:   pathutil.Join(path, keyAlgorithm),
			Reason: "algorithm " + name,
			Err:    asartype.ErrUnsupportedAlgorithm,
		}
	}

	hash, err := stringField(n, path, keyHash)
	if err != nil {
		return rec, err
	}
	if rec.Hash, err = parseDigest(alg, hash, pathutil.Join(path, keyHash)); err != nil {
		return rec, err
	}

	v, ok := n.Field(keyBlockSize)
	if !ok {
		return rec, asartype.Malformed(path, "missing %q", keyBlockSize)
	}
	if rec.BlockSize, ok = v.AsInt(); !ok || rec.BlockSize <= 0 {
		return rec, asartype.Malformed(pathutil.Join(path, keyBlockSize), "expected positive integer")
	}

	v, ok = n.Field(keyBlocks)
	if !ok {
		return rec, asartype.Malformed(path, "missing %q", keyBlocks)
	}
	if v.Kind() != jsontree.KindArray {
		return rec, asartype.Malformed(pathutil.Join(path, keyBlocks), "expected array, got %s", v.Kind())
	}
	rec.Blocks = make([]digest.Digest, 0, len(v.Items()))
	for i, item := range v.Items() {
		blockPath := pathutil.Join(pathutil.Join(path, keyBlocks), strconv.Itoa(i))
		s, ok := item.AsString()
		if !ok {
			return rec, asartype.Malformed(blockPath, "expected string, got %s", item.Kind())
		}
		d, err := parseDigest(alg, s, blockPath)
		if err != nil {
			return rec, err
		}
		rec.Blocks = append(rec.Blocks, d)
	}

	return rec, nil
}

func stringField(n *jsontree.Node, path, key string) (string, error) {
	v, ok := n.Field(key)
	if !ok {
		return "", asartype.Malformed(path, "missing %q", key)
	}
	s, ok := v.AsString()
	if !ok {
		return "", asartype.Malformed(pathutil.Join(path, key), "expected string, got %s", v.Kind())
	}
	return s, nil
}

// parseDigest validates a hex digest as written by archive writers.
func parseDigest(alg digest.Algorithm, encoded, path string) (digest.Digest, error) {
	d := digest.NewDigestFromEncoded(alg, encoded)
	if err := d.Validate(); err != nil {
		return "", asartype.Malformed(path, "invalid %s digest %q", alg, encoded)
	}
	return d, nil
}
