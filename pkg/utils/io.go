package utils

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// PathExists tells whether a file or directory exists at path.
func PathExists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DirectoryEmpty tells whether the directory at path contains no entries.
func DirectoryEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// ReadTOMLFromFile decodes the TOML file named by filename into data.
func ReadTOMLFromFile(filename string, data interface{}) error {
	tomlData, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "unable to read TOML file %s", filename)
	}
	return toml.Unmarshal(tomlData, data)
}

// WriteTOMLToFile writes data as TOML to filename, truncating an existing file.
// An optional header is written above the data.
func WriteTOMLToFile(filename string, data interface{}, perm os.FileMode, header ...string) (err error) {
	tomlData, err := toml.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "unable to marshal data to TOML")
	}

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if len(header) > 0 {
		if _, err := f.WriteString(header[0] + "\n"); err != nil {
			return errors.Wrapf(err, "unable to write header to %s", filename)
		}
	}
	if _, err := f.Write(tomlData); err != nil {
		return errors.Wrapf(err, "unable to write TOML data to %s", filename)
	}

	return f.Sync()
}
