package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snsbt/governance/pkg/database"
)

func TestDatabaseEngine(t *testing.T) {

	engine, err := database.DatabaseEngine("Pebble")
	require.NoError(t, err)
	require.Equal(t, database.EnginePebble, engine)

	engine, err = database.DatabaseEngine("mapdb")
	require.NoError(t, err)
	require.Equal(t, database.EngineMapDB, engine)

	_, err = database.DatabaseEngine("rocksdb")
	require.Error(t, err)

	_, err = database.DatabaseEngine("mapdb", database.EnginePebble)
	require.Error(t, err)
}

func TestCheckDatabaseEngine(t *testing.T) {

	dbPath := filepath.Join(t.TempDir(), "governance")

	_, err := database.CheckDatabaseEngine(dbPath, false, database.EnginePebble)
	require.Error(t, err)

	_, err = database.CheckDatabaseEngine(dbPath, true)
	require.Error(t, err)

	engine, err := database.CheckDatabaseEngine(dbPath, true, database.EnginePebble)
	require.NoError(t, err)
	require.Equal(t, database.EnginePebble, engine)

	// the engine is read from the database info file
	engine, err = database.CheckDatabaseEngine(dbPath, false)
	require.NoError(t, err)
	require.Equal(t, database.EnginePebble, engine)

	engine, err = database.LoadDatabaseEngineFromFile(filepath.Join(dbPath, "dbinfo"))
	require.NoError(t, err)
	require.Equal(t, database.EnginePebble, engine)

	engine, err = database.CheckDatabaseEngine(dbPath, false, database.EngineMapDB)
	require.NoError(t, err)
	require.Equal(t, database.EngineMapDB, engine)
}

func TestDatabaseWithDefaultSettings(t *testing.T) {

	dbPath := filepath.Join(t.TempDir(), "governance")

	db, err := database.DatabaseWithDefaultSettings(dbPath, true, database.EnginePebble)
	require.NoError(t, err)
	require.Equal(t, database.EnginePebble, db.Engine())
	require.Equal(t, dbPath, db.Path())

	require.NoError(t, db.KVStore().Set([]byte("key"), []byte("value")))
	require.NoError(t, db.KVStore().Flush())

	size, err := db.Size()
	require.NoError(t, err)
	require.Greater(t, size, int64(0))

	require.NoError(t, db.KVStore().Close())

	db, err = database.DatabaseWithDefaultSettings(dbPath, false)
	require.NoError(t, err)

	value, err := db.KVStore().Get([]byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), value)
	require.NoError(t, db.KVStore().Close())

	memDB, err := database.DatabaseWithDefaultSettings("", true, database.EngineMapDB)
	require.NoError(t, err)
	require.Equal(t, database.EngineMapDB, memDB.Engine())
	require.False(t, memDB.CompactionRunning())

	size, err = memDB.Size()
	require.NoError(t, err)
	require.Zero(t, size)
}
