package database

import (
	"os"

	pebbleDB "github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/pkg/errors"
)

// NewPebbleDB creates a new pebble DB instance in directory.
// reportCompactionRunning is called whenever a compaction starts or ends.
func NewPebbleDB(directory string, reportCompactionRunning func(running bool), enableFilter bool) (*pebbleDB.DB, error) {

	if err := os.MkdirAll(directory, 0700); err != nil {
		return nil, errors.Wrapf(err, "could not create database dir '%s'", directory)
	}

	cache := pebbleDB.NewCache(128 << 20) // 128 MB
	defer cache.Unref()

	opts := &pebbleDB.Options{
		Cache:                       cache,
		L0CompactionThreshold:       2,
		L0StopWritesThreshold:       1000,
		LBaseMaxBytes:               64 << 20, // 64 MB
		Levels:                      make([]pebbleDB.LevelOptions, 7),
		MaxConcurrentCompactions:    2,
		MaxOpenFiles:                4096,
		MemTableSize:                16 << 20, // 16 MB
		MemTableStopWritesThreshold: 4,
	}

	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 << 10       // 32 KB
		l.IndexBlockSize = 256 << 10 // 256 KB
		if enableFilter {
			l.FilterPolicy = bloom.FilterPolicy(10)
			l.FilterType = pebbleDB.TableFilter
		}
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Levels[6].FilterPolicy = nil

	if reportCompactionRunning != nil {
		opts.EventListener = pebbleDB.EventListener{
			CompactionBegin: func(pebbleDB.CompactionInfo) {
				reportCompactionRunning(true)
			},
			CompactionEnd: func(pebbleDB.CompactionInfo) {
				reportCompactionRunning(false)
			},
		}
	}

	opts.EnsureDefaults()

	db, err := pebbleDB.Open(directory, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open pebble database (%s)", directory)
	}

	return db, nil
}
