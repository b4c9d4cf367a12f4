package database

import (
	"os"
	"path/filepath"

	"github.com/iotaledger/hive.go/events"
	"github.com/iotaledger/hive.go/kvstore"

	"github.com/snsbt/governance/pkg/metrics"
)

type Engine string

const (
	EngineUnknown Engine = "unknown"
	EnginePebble  Engine = "pebble"
	EngineMapDB   Engine = "mapdb"
)

// AllowedEngines are the engines a database can be opened with.
var AllowedEngines = []Engine{EnginePebble, EngineMapDB}

type Events struct {
	DatabaseCompaction *events.Event
}

func newEvents() *Events {
	return &Events{
		DatabaseCompaction: events.NewEvent(events.BoolCaller),
	}
}

// Database holds the underlying KVStore and database specific functions.
type Database struct {
	path    string
	store   kvstore.KVStore
	engine  Engine
	metrics *metrics.DatabaseMetrics
	events  *Events
}

// New creates a new Database instance.
func New(path string, kvStore kvstore.KVStore, engine Engine, metrics *metrics.DatabaseMetrics, events *Events) *Database {
	return &Database{
		path:    path,
		store:   kvStore,
		engine:  engine,
		metrics: metrics,
		events:  events,
	}
}

// Path returns the folder of the database. It is empty for in-memory databases.
func (db *Database) Path() string {
	return db.path
}

// KVStore returns the underlying KVStore.
func (db *Database) KVStore() kvstore.KVStore {
	return db.store
}

// Engine returns the engine of the database.
func (db *Database) Engine() Engine {
	return db.engine
}

// Metrics returns the metrics of the database.
func (db *Database) Metrics() *metrics.DatabaseMetrics {
	return db.metrics
}

// Events returns the events of the database.
func (db *Database) Events() *Events {
	return db.events
}

// CompactionRunning returns whether a compaction is running.
func (db *Database) CompactionRunning() bool {
	return db.metrics.CompactionRunning.Load()
}

// Size returns the size of the database folder in bytes.
// In-memory databases have a size of 0.
func (db *Database) Size() (int64, error) {
	if db.path == "" {
		return 0, nil
	}

	var size int64
	err := filepath.Walk(db.path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
