package asar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/asar/internal/testutil"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

// helloArchive is the smallest useful archive: one inline file "a.txt"
// holding "hello", built byte by byte.
func helloArchive(t *testing.T) []byte {
	t.Helper()

	doc := `{"files":{"a.txt":{"size":5,"offset":"0","integrity":{"algorithm":"SHA256","hash":"` +
		helloSHA256 + `","blockSize":4194304,"blocks":["` + helloSHA256 + `"]}}}}`
	return testutil.Raw([]byte(doc), []byte("hello"), DefaultAlignment)
}

func TestExtractHello(t *testing.T) {
	t.Parallel()

	data := helloArchive(t)
	view, err := DecodeHeader(data, DefaultAlignment)
	require.NoError(t, err)

	entry, ok := view.Root.FindFile("a.txt")
	require.True(t, ok)

	content, res, err := Extract(data, view, entry)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)
	assert.True(t, res.OK())
	assert.Equal(t, StatusVerified, res.Status())
	assert.Equal(t, digest.NewDigestFromEncoded(digest.SHA256, helloSHA256), res.Actual)
}

func sampleFiles() []testutil.File {
	return []testutil.File{
		{Path: "package.json", Data: []byte(`{"name":"app"}`)},
		{Path: "dist/main.js", Data: []byte("console.log('main')")},
		{Path: "dist/preload.js", Data: []byte("// preload")},
		{Path: "dist/vendor/lib.js", Data: bytes.Repeat([]byte("lib"), 100)},
		{Path: "empty.txt", Data: nil},
		{Path: "native/addon.node", Data: []byte("\x7fELF"), Unpacked: true},
		{Path: "bin/tool", Data: []byte("#!/bin/sh\n"), Executable: true},
	}
}

func TestListEnumeratesAllFiles(t *testing.T) {
	t.Parallel()

	files := sampleFiles()
	a := testutil.Build(t, files, testutil.Options{})
	view, err := DecodeHeader(a.Data, DefaultAlignment)
	require.NoError(t, err)

	var want []string
	for _, f := range files {
		want = append(want, f.Path)
	}
	got := view.Root.List(true)
	assert.ElementsMatch(t, want, got)
	assert.Len(t, got, len(want), "no duplicates")

	assert.Equal(t, []string{"package.json", "dist", "empty.txt", "native", "bin"}, view.Root.List(false))
}

func TestExtractInlineFiles(t *testing.T) {
	t.Parallel()

	files := sampleFiles()
	a := testutil.Build(t, files, testutil.Options{BlockSize: 16})
	view, err := DecodeHeader(a.Data, DefaultAlignment)
	require.NoError(t, err)

	for _, f := range files {
		if f.Unpacked {
			continue
		}
		entry, _, ok := view.Root.Lookup(f.Path)
		require.True(t, ok, f.Path)

		content, res, err := Extract(a.Data, view, entry)
		require.NoError(t, err, f.Path)
		assert.Len(t, content, int(entry.Size), f.Path)
		assert.Equal(t, string(f.Data), string(content), f.Path)
		assert.True(t, res.OK(), f.Path)

		again, res2, err := Extract(a.Data, view, entry)
		require.NoError(t, err)
		assert.Equal(t, content, again, "idempotent")
		assert.Equal(t, res, res2, "idempotent")
	}
}

func TestExtractUnpacked(t *testing.T) {
	t.Parallel()

	a := testutil.Build(t, sampleFiles(), testutil.Options{})
	view, err := DecodeHeader(a.Data, DefaultAlignment)
	require.NoError(t, err)

	entry, _, ok := view.Root.Lookup("native/addon.node")
	require.True(t, ok)
	require.True(t, entry.Unpacked())

	content, res, err := Extract(a.Data, view, entry)
	require.ErrorIs(t, err, ErrUnpackedFile)
	assert.Nil(t, content)
	assert.False(t, res.OK())
	assert.Equal(t, entry.Integrity.Hash, res.Expected)
	assert.Empty(t, res.Actual)
}

func TestExtractCorruptionReportsMismatch(t *testing.T) {
	t.Parallel()

	const blockSize = 32
	data := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 8))
	a := testutil.Build(t, []testutil.File{
		{Path: "first.txt", Data: []byte("unrelated")},
		{Path: "fox.txt", Data: data},
	}, testutil.Options{BlockSize: blockSize})

	for _, pos := range []int{0, 1, blockSize - 1, blockSize, 3*blockSize + 7, len(data) - 1} {
		corrupt := bytes.Clone(a.Data)
		corrupt[a.PayloadStart+int(a.Offsets["fox.txt"])+pos] ^= 0x01

		view, err := DecodeHeader(corrupt, DefaultAlignment)
		require.NoError(t, err)
		entry, ok := view.Root.FindFile("fox.txt")
		require.True(t, ok)

		content, res, err := Extract(corrupt, view, entry)
		require.NoError(t, err, "mismatch is not fatal by default")
		assert.Len(t, content, len(data))
		assert.Equal(t, StatusBlockMismatch, res.Status(), "pos %d", pos)
		assert.Equal(t, pos/blockSize, res.Block, "pos %d", pos)
		assert.False(t, res.DigestMatched(), "pos %d", pos)

		_, res, err = Extract(corrupt, view, entry, ExtractWithBlockCheck(false))
		require.NoError(t, err)
		assert.Equal(t, StatusDigestMismatch, res.Status())
		assert.Equal(t, -1, res.Block)

		content, res, err = Extract(corrupt, view, entry, ExtractWithForceValidate(true))
		require.ErrorIs(t, err, ErrIntegrityCheckFailed)
		assert.Nil(t, content)
		var ierr *IntegrityError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, res, ierr.Result)

		other, ok := view.Root.FindFile("first.txt")
		require.True(t, ok)
		_, res, err = Extract(corrupt, view, other, ExtractWithForceValidate(true))
		require.NoError(t, err, "neighbouring file is unaffected")
		assert.True(t, res.OK())
	}
}

func TestExtractOutOfRange(t *testing.T) {
	t.Parallel()

	a := testutil.Build(t, []testutil.File{{Path: "a.txt", Data: []byte("hello")}}, testutil.Options{})
	view, err := DecodeHeader(a.Data, DefaultAlignment)
	require.NoError(t, err)
	entry, ok := view.Root.FindFile("a.txt")
	require.True(t, ok)

	_, res, err := Extract(a.Data[:len(a.Data)-1], view, entry)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.False(t, res.OK())
	assert.Equal(t, StatusDigestMismatch, res.Status())

	shifted := *entry
	shifted.Offset = 1
	_, _, err = Extract(a.Data, view, &shifted)
	require.ErrorIs(t, err, ErrOutOfRange)

	huge := *entry
	huge.Offset = ^uint64(0)
	_, _, err = Extract(a.Data, view, &huge)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeHeaderUnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	doc := `{"files":{"a.txt":{"size":5,"offset":"0","integrity":{"algorithm":"MD5",` +
		`"hash":"5d41402abc4b2a76b9719d911017c592","blockSize":4194304,"blocks":["5d41402abc4b2a76b9719d911017c592"]}}}}`
	data := testutil.Raw([]byte(doc), []byte("hello"), DefaultAlignment)

	_, err := DecodeHeader(data, DefaultAlignment)
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	var merr *MetadataError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "files/a.txt/integrity/algorithm", merr.Path)
}

func TestHeaderJSON(t *testing.T) {
	t.Parallel()

	a := testutil.Build(t, []testutil.File{{Path: "a.txt", Data: []byte("hi")}}, testutil.Options{})
	doc, err := HeaderJSON(a.Data)
	require.NoError(t, err)
	assert.Equal(t, a.Header, doc)

	_, err = HeaderJSON(a.Data[:10])
	assert.ErrorIs(t, err, ErrTruncatedHeader)
}
