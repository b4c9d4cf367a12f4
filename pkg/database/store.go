package database

import (
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/kvstore/pebble"

	"github.com/snsbt/governance/pkg/metrics"
)

// NewPebbleDatabase opens a pebble backed Database in path.
func NewPebbleDatabase(path string) (*Database, error) {

	dbMetrics := &metrics.DatabaseMetrics{}
	dbEvents := newEvents()

	reportCompactionRunning := func(running bool) {
		dbMetrics.CompactionRunning.Store(running)
		if running {
			dbMetrics.CompactionCount.Inc()
		}
		dbEvents.DatabaseCompaction.Trigger(running)
	}

	db, err := NewPebbleDB(path, reportCompactionRunning, true)
	if err != nil {
		return nil, err
	}

	return New(path, pebble.New(db), EnginePebble, dbMetrics, dbEvents), nil
}

// NewMapDBDatabase creates an in-memory Database.
func NewMapDBDatabase() *Database {
	return New("", mapdb.NewMapDB(), EngineMapDB, &metrics.DatabaseMetrics{}, newEvents())
}

// DatabaseWithDefaultSettings returns a Database with default settings.
// It also checks if the database engine of an existing database folder is correct.
func DatabaseWithDefaultSettings(path string, createDatabaseIfNotExists bool, dbEngine ...Engine) (*Database, error) {

	targetEngine, err := CheckDatabaseEngine(path, createDatabaseIfNotExists, dbEngine...)
	if err != nil {
		return nil, err
	}

	switch targetEngine {
	case EnginePebble:
		return NewPebbleDatabase(path)

	case EngineMapDB:
		return NewMapDBDatabase(), nil

	default:
		_, err := DatabaseEngine(string(targetEngine))
		return nil, err
	}
}
