package database

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/configuration"
	"github.com/iotaledger/hive.go/events"

	"github.com/snsbt/governance/pkg/database"
	"github.com/snsbt/governance/pkg/node"
)

const (
	// CfgDatabaseDeleteDatabase defines whether to delete the database at startup.
	CfgDatabaseDeleteDatabase = "deleteDatabase"

	// GovernanceDatabaseDirectoryName defines the subfolder for the governance ledger.
	GovernanceDatabaseDirectoryName = "governance"
	// RegistryDatabaseDirectoryName defines the subfolder for the proposal registry.
	RegistryDatabaseDirectoryName = "registry"
)

func init() {
	CorePlugin = &node.CorePlugin{
		Pluggable: node.Pluggable{
			Name:      "Database",
			DepsFunc:  func(cDeps dependencies) { deps = cDeps },
			Params:    params,
			Provide:   provide,
			Configure: configure,
		},
	}
}

var (
	CorePlugin *node.CorePlugin
	deps       dependencies

	deleteDatabase = flag.Bool(CfgDatabaseDeleteDatabase, false, "whether to delete the database at startup")

	onGovernanceDatabaseCompaction *events.Closure
)

type dependencies struct {
	dig.In
	GovernanceDatabase *database.Database `name:"governanceDatabase"`
	RegistryDatabase   *database.Database `name:"registryDatabase"`
}

func provide(c *dig.Container) {

	type databaseDeps struct {
		dig.In
		NodeConfig *configuration.Configuration `name:"nodeConfig"`
	}

	type databaseOut struct {
		dig.Out
		DatabaseEngine     database.Engine    `name:"databaseEngine"`
		DatabaseDebug      bool               `name:"databaseDebug"`
		GovernanceDatabase *database.Database `name:"governanceDatabase"`
		RegistryDatabase   *database.Database `name:"registryDatabase"`
	}

	if err := c.Provide(func(deps databaseDeps) databaseOut {

		dbEngine, err := database.DatabaseEngine(deps.NodeConfig.String(CfgDatabaseEngine))
		if err != nil {
			CorePlugin.LogPanic(err)
		}

		dbPath := deps.NodeConfig.String(CfgDatabasePath)
		if *deleteDatabase && dbEngine != database.EngineMapDB {
			CorePlugin.LogWarnf("deleting database folder %s ...", dbPath)
			if err := os.RemoveAll(dbPath); err != nil {
				CorePlugin.LogPanicf("deleting database folder failed: %s", err)
			}
		}

		openDatabase := func(directoryName string) *database.Database {
			db, err := database.DatabaseWithDefaultSettings(filepath.Join(dbPath, directoryName), true, dbEngine)
			if err != nil {
				CorePlugin.LogPanicf("%s database initialization failed: %s", directoryName, err)
			}
			return db
		}

		return databaseOut{
			DatabaseEngine:     dbEngine,
			DatabaseDebug:      deps.NodeConfig.Bool(CfgDatabaseDebug),
			GovernanceDatabase: openDatabase(GovernanceDatabaseDirectoryName),
			RegistryDatabase:   openDatabase(RegistryDatabaseDirectoryName),
		}
	}); err != nil {
		CorePlugin.LogPanic(err)
	}
}

func configure() {
	logDatabaseInfo(GovernanceDatabaseDirectoryName, deps.GovernanceDatabase)
	logDatabaseInfo(RegistryDatabaseDirectoryName, deps.RegistryDatabase)

	configureEvents()
}

func logDatabaseInfo(name string, db *database.Database) {
	size, err := db.Size()
	if err != nil {
		CorePlugin.LogWarnf("unable to determine size of %s database: %s", name, err)
	}
	CorePlugin.LogInfof("%s database: engine %s, path '%s', size %s", name, db.Engine(), db.Path(), humanize.Bytes(uint64(size)))
}

func configureEvents() {
	onGovernanceDatabaseCompaction = events.NewClosure(func(running bool) {
		if running {
			CorePlugin.LogDebugf("governance database compaction started")
			return
		}
		CorePlugin.LogDebugf("governance database compaction done")
	})
	deps.GovernanceDatabase.Events().DatabaseCompaction.Attach(onGovernanceDatabaseCompaction)
}
