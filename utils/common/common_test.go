package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	require.False(FileExists(path))
	require.Nil(os.WriteFile(path, []byte("x"), 0o644))
	require.True(FileExists(path))
}

func TestMkdir(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	require.Nil(Mkdir(nested, true))
	require.True(FileExists(nested))

	// existOk tolerates the directory already being there.
	require.Nil(Mkdir(nested, true))
	require.NotNil(Mkdir(nested, false))
}

func TestLoadFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "payload")
	require.Nil(os.WriteFile(path, []byte("line in, line out"), 0o600))

	data, err := LoadFile(path)
	require.Nil(err)
	require.Equal("line in, line out", string(data))

	_, err = LoadFile(filepath.Join(dir, "missing"))
	require.NotNil(err)
}
