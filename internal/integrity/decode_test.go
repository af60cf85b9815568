package integrity

import (
	"errors"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/asar/internal/asartype"
	"github.com/meigma/asar/internal/jsontree"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func parse(t *testing.T, doc string) *jsontree.Node {
	t.Helper()
	n, err := jsontree.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func TestDecode(t *testing.T) {
	t.Parallel()

	n := parse(t, `{"algorithm":"SHA256","hash":"`+helloSHA256+`","blockSize":4194304,"blocks":["`+helloSHA256+`"]}`)
	rec, err := Decode(n, "files/a.txt/integrity")
	require.NoError(t, err)

	want := digest.NewDigestFromEncoded(digest.SHA256, helloSHA256)
	assert.Equal(t, asartype.AlgorithmSHA256, rec.Algorithm)
	assert.Equal(t, want, rec.Hash)
	assert.Equal(t, 4194304, rec.BlockSize)
	assert.Equal(t, []digest.Digest{want}, rec.Blocks)
}

func TestDecodeUnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	n := parse(t, `{"algorithm":"MD5","hash":"5d41402abc4b2a76b9719d911017c592","blockSize":4194304,"blocks":[]}`)
	_, err := Decode(n, "files/a.txt/integrity")
	require.ErrorIs(t, err, asartype.ErrUnsupportedAlgorithm)
	assert.NotErrorIs(t, err, asartype.ErrMalformedMetadata)

	var merr *asartype.MetadataError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "files/a.txt/integrity/algorithm", merr.Path)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"algorithm": `"SHA256"`,
		"hash":      `"` + helloSHA256 + `"`,
		"blockSize": `4194304`,
		"blocks":    `["` + helloSHA256 + `"]`,
	}
	build := func(override map[string]string, drop string) string {
		var parts []string
		for _, k := range []string{"algorithm", "hash", "blockSize", "blocks"} {
			if k == drop {
				continue
			}
			v := valid[k]
			if o, ok := override[k]; ok {
				v = o
			}
			parts = append(parts, `"`+k+`":`+v)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}

	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"not an object", `["SHA256"]`, "i"},
		{"missing algorithm", build(nil, "algorithm"), "i"},
		{"missing hash", build(nil, "hash"), "i"},
		{"missing blockSize", build(nil, "blockSize"), "i"},
		{"missing blocks", build(nil, "blocks"), "i"},
		{"algorithm not string", build(map[string]string{"algorithm": `256`}, ""), "i/algorithm"},
		{"hash not string", build(map[string]string{"hash": `1`}, ""), "i/hash"},
		{"hash not hex", build(map[string]string{"hash": `"zz"`}, ""), "i/hash"},
		{"hash uppercase", build(map[string]string{"hash": `"` + strings.ToUpper(helloSHA256) + `"`}, ""), "i/hash"},
		{"blockSize string", build(map[string]string{"blockSize": `"4194304"`}, ""), "i/blockSize"},
		{"blockSize zero", build(map[string]string{"blockSize": `0`}, ""), "i/blockSize"},
		{"blockSize fractional", build(map[string]string{"blockSize": `1.5`}, ""), "i/blockSize"},
		{"blocks not array", build(map[string]string{"blocks": `"x"`}, ""), "i/blocks"},
		{"block not string", build(map[string]string{"blocks": `[1]`}, ""), "i/blocks/0"},
		{"block bad digest", build(map[string]string{"blocks": `["` + helloSHA256 + `","abc"]`}, ""), "i/blocks/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(parse(t, tt.doc), "i")
			require.ErrorIs(t, err, asartype.ErrMalformedMetadata)

			var merr *asartype.MetadataError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, tt.wantPath, merr.Path)
		})
	}
}
