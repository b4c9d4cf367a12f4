package toolset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/configuration"

	coreDatabase "github.com/snsbt/governance/core/database"
	"github.com/snsbt/governance/pkg/database"
	"github.com/snsbt/governance/pkg/model/ledger"
)

type databaseInfoResult struct {
	Name      string `json:"name"`
	Engine    string `json:"engine"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
	Entries   int    `json:"entries"`
	Corrupted bool   `json:"corrupted"`
}

func loadLedgerDatabaseInfo(name string, dbPath string) (*databaseInfoResult, error) {

	db, err := database.DatabaseWithDefaultSettings(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("%s database initialization failed: %w", name, err)
	}

	l := ledger.New(db.KVStore())
	defer func() { _ = l.Close() }()

	healthTracker, err := ledger.NewHealthTracker(db.KVStore())
	if err != nil {
		return nil, err
	}

	corrupted, err := healthTracker.IsCorrupted()
	if err != nil {
		return nil, err
	}

	var entries int
	if err := l.ForEachEntry(func(_ *ledger.Entry) bool {
		entries++
		return true
	}); err != nil {
		return nil, err
	}

	size, err := db.Size()
	if err != nil {
		return nil, err
	}

	return &databaseInfoResult{
		Name:      name,
		Engine:    string(db.Engine()),
		Path:      dbPath,
		SizeBytes: size,
		Entries:   entries,
		Corrupted: corrupted,
	}, nil
}

func loadDatabaseInfo(databasePath string) ([]*databaseInfoResult, error) {

	var results []*databaseInfoResult
	for _, name := range []string{coreDatabase.GovernanceDatabaseDirectoryName, coreDatabase.RegistryDatabaseDirectoryName} {
		result, err := loadLedgerDatabaseInfo(name, filepath.Join(databasePath, name))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func databaseInfo(nodeConfig *configuration.Configuration, args []string) error {

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	databasePathFlag := fs.String(FlagToolDatabasePath, nodeConfig.String(coreDatabase.CfgDatabasePath), "the path to the database folder")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolDatabaseInfo)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nexample: %s --%s %s\n", ToolDatabaseInfo, FlagToolDatabasePath, "governancedb")
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*databasePathFlag) == 0 {
		return fmt.Errorf("'%s' not specified", FlagToolDatabasePath)
	}

	results, err := loadDatabaseInfo(*databasePathFlag)
	if err != nil {
		return err
	}

	if *outputJSONFlag {
		return printJSON(results)
	}

	for _, result := range results {
		fmt.Printf("%s database\n", result.Name)
		fmt.Println("  engine:    ", result.Engine)
		fmt.Println("  path:      ", result.Path)
		fmt.Println("  size:      ", humanize.Bytes(uint64(result.SizeBytes)))
		fmt.Println("  entries:   ", result.Entries)
		fmt.Println("  corrupted: ", result.Corrupted)
	}

	return nil
}
