package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/utils"
)

const (
	// the name of the file holding the engine of a database folder.
	dbInfoFileName = "dbinfo"
)

type databaseInfo struct {
	Engine string `toml:"databaseEngine"`
}

// DatabaseEngine parses a string and returns an engine.
// Returns an error if the engine is unknown.
func DatabaseEngine(engineStr string, allowedEngines ...Engine) (Engine, error) {

	engine := Engine(strings.ToLower(engineStr))

	if len(allowedEngines) == 0 {
		allowedEngines = AllowedEngines
	}

	supportedEngines := make([]string, 0, len(allowedEngines))
	for _, allowedEngine := range allowedEngines {
		if engine == allowedEngine {
			return engine, nil
		}
		supportedEngines = append(supportedEngines, string(allowedEngine))
	}

	return EngineUnknown, fmt.Errorf("unknown database engine: %s, supported engines: %s", engine, strings.Join(supportedEngines, "/"))
}

// CheckDatabaseEngine checks if the correct database engine is used.
// This function stores a so called "database info file" in the database folder or
// checks if an existing "database info file" contains the correct engine.
// Otherwise the files in the database folder are not compatible.
func CheckDatabaseEngine(dbPath string, createDatabaseIfNotExists bool, dbEngine ...Engine) (Engine, error) {

	if len(dbEngine) > 0 && dbEngine[0] == EngineMapDB {
		// no need to create or access a "database info file" in case of mapdb (in-memory)
		return EngineMapDB, nil
	}

	if createDatabaseIfNotExists && len(dbEngine) == 0 {
		return EngineUnknown, errors.New("the database engine must be specified if the database should be newly created")
	}

	dbExists, err := DatabaseExists(dbPath)
	if err != nil {
		return EngineUnknown, err
	}

	if !dbExists && !createDatabaseIfNotExists {
		return EngineUnknown, fmt.Errorf("database not found (%s)", dbPath)
	}

	dbInfoFilePath := filepath.Join(dbPath, dbInfoFileName)
	dbInfoExists, err := utils.PathExists(dbInfoFilePath)
	if err != nil {
		return EngineUnknown, errors.Wrapf(err, "unable to check database info file (%s)", dbInfoFilePath)
	}

	if !dbInfoExists {
		if len(dbEngine) == 0 {
			return EngineUnknown, fmt.Errorf("database info file not found (%s)", dbInfoFilePath)
		}

		// if the dbInfo file does not exist and the dbEngine is given, create the dbInfo file.
		if err := storeDatabaseInfoToFile(dbInfoFilePath, dbEngine[0]); err != nil {
			return EngineUnknown, err
		}

		return dbEngine[0], nil
	}

	dbEngineFromInfoFile, err := LoadDatabaseEngineFromFile(dbInfoFilePath)
	if err != nil {
		return EngineUnknown, err
	}

	// if the dbInfo file exists and the dbEngine is given, compare the engines.
	if len(dbEngine) > 0 && dbEngineFromInfoFile != dbEngine[0] {
		return EngineUnknown, fmt.Errorf("database engine does not match the configuration: '%v' != '%v'", dbEngineFromInfoFile, dbEngine[0])
	}

	return dbEngineFromInfoFile, nil
}

// LoadDatabaseEngineFromFile returns the engine from the "database info file".
func LoadDatabaseEngineFromFile(path string) (Engine, error) {

	var info databaseInfo

	if err := utils.ReadTOMLFromFile(path, &info); err != nil {
		return EngineUnknown, errors.Wrap(err, "unable to read database info file")
	}

	return DatabaseEngine(info.Engine)
}

// storeDatabaseInfoToFile stores the used engine in a "database info file".
func storeDatabaseInfoToFile(filePath string, engine Engine) error {
	dirPath := filepath.Dir(filePath)

	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "could not create database dir '%s'", dirPath)
	}

	info := &databaseInfo{
		Engine: string(engine),
	}

	return utils.WriteTOMLToFile(filePath, info, 0660, "# auto-generated\n# !!! do not modify this file !!!")
}
