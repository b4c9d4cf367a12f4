package database

import (
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/utils"
)

// DatabaseExists checks if the database folder exists and is not empty.
func DatabaseExists(dbPath string) (bool, error) {

	dirExists, err := utils.PathExists(dbPath)
	if err != nil {
		return false, errors.Wrapf(err, "unable to check database path (%s)", dbPath)
	}
	if !dirExists {
		return false, nil
	}

	// directory exists, but maybe database doesn't exist.
	// check if the directory is empty (needed for example in docker environments)
	dirEmpty, err := utils.DirectoryEmpty(dbPath)
	if err != nil {
		return false, errors.Wrapf(err, "unable to check database path (%s)", dbPath)
	}

	return !dirEmpty, nil
}
