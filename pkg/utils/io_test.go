package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snsbt/governance/pkg/utils"
)

type tomlInfo struct {
	Engine string `toml:"databaseEngine"`
}

func TestTOMLFileRoundTrip(t *testing.T) {

	path := filepath.Join(t.TempDir(), "dbinfo")

	exists, err := utils.PathExists(path)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, utils.WriteTOMLToFile(path, &tomlInfo{Engine: "pebble"}, 0660, "# auto-generated"))

	exists, err = utils.PathExists(path)
	require.NoError(t, err)
	require.True(t, exists)

	info := &tomlInfo{}
	require.NoError(t, utils.ReadTOMLFromFile(path, info))
	require.Equal(t, "pebble", info.Engine)
}

func TestDirectoryEmpty(t *testing.T) {

	dir := t.TempDir()

	empty, err := utils.DirectoryEmpty(dir)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbinfo"), []byte("x"), 0600))

	empty, err = utils.DirectoryEmpty(dir)
	require.NoError(t, err)
	require.False(t, empty)

	_, err = utils.DirectoryEmpty(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
