package filesink

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.Write("dist/preload.js", []byte("// preload"), 0o644))

	got, err := os.ReadFile(filepath.Join(dir, "dist", "preload.js"))
	require.NoError(t, err)
	assert.Equal(t, []byte("// preload"), got)

	leftovers, err := filepath.Glob(filepath.Join(dir, "dist", ".asar-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temp files are renamed away")
}

func TestShouldWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("old"), 0o644))

	assert.False(t, New(dir).ShouldWrite("a.txt"))
	assert.True(t, New(dir).ShouldWrite("b.txt"))
	assert.True(t, New(dir, WithOverwrite(true)).ShouldWrite("a.txt"))

	require.NoError(t, New(dir, WithOverwrite(true)).Write("a.txt", []byte("new"), 0o644))
	got, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestPreserveMode(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}

	dir := t.TempDir()
	require.NoError(t, New(dir, WithPreserveMode(true)).Write("bin/run", []byte("#!/bin/sh"), 0o755))

	info, err := os.Stat(filepath.Join(dir, "bin", "run"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestUnsafePath(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	for _, name := range []string{"../escape.txt", "a/../../escape.txt", "/etc/passwd", ""} {
		err := s.Write(name, []byte("x"), 0o644)
		assert.ErrorIs(t, err, ErrUnsafePath, name)
	}
}
