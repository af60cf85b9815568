package file

import (
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/asar/internal/asartype"
)

func TestInfo(t *testing.T) {
	t.Parallel()

	entry := &asartype.FileEntry{Size: 12}
	info := NewInfo(entry, "a.txt")
	assert.Equal(t, "a.txt", info.Name())
	assert.Equal(t, int64(12), info.Size())
	assert.Equal(t, fs.FileMode(0o644), info.Mode())
	assert.False(t, info.IsDir())
	assert.Same(t, entry, info.Sys())

	exec := NewInfo(&asartype.FileEntry{Executable: true, Size: ^uint64(0)}, "run")
	assert.Equal(t, fs.FileMode(0o755), exec.Mode())
	assert.Equal(t, int64(^uint64(0)>>1), exec.Size())
}

func TestFile(t *testing.T) {
	t.Parallel()

	f := NewFile([]byte("hello"), NewInfo(&asartype.FileEntry{Size: 5}, "hello.txt"))
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	st, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "hello.txt", st.Name())
	assert.NoError(t, f.Close())
}

func sampleFolder() *asartype.Folder {
	sub := asartype.NewFolder()
	root := asartype.NewFolder()
	root.AddFile("zeta.txt", &asartype.FileEntry{})
	root.AddFolder("lib", sub)
	root.AddFile("alpha.js", &asartype.FileEntry{Executable: true})
	return root
}

func TestEntriesSorted(t *testing.T) {
	t.Parallel()

	entries := Entries(sampleFolder())
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha.js", entries[0].Name())
	assert.Equal(t, "lib", entries[1].Name())
	assert.True(t, entries[1].IsDir())
	assert.Equal(t, fs.ModeDir, entries[1].Type())
	assert.Equal(t, "zeta.txt", entries[2].Name())
}

func TestDirReadDirPaged(t *testing.T) {
	t.Parallel()

	d := NewDir(sampleFolder(), "root")

	page, err := d.ReadDir(2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = d.ReadDir(2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	_, err = d.ReadDir(2)
	assert.ErrorIs(t, err, io.EOF)

	rest, err := d.ReadDir(-1)
	require.NoError(t, err)
	assert.Empty(t, rest)

	_, err = d.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrInvalid)

	st, err := d.Stat()
	require.NoError(t, err)
	assert.True(t, st.IsDir())
	assert.Equal(t, "root", st.Name())
}
