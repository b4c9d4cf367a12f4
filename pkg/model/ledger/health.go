package ledger

import (
	"github.com/pkg/errors"

	"github.com/iotaledger/hive.go/kvstore"
)

const (
	// DBVersion is the version of the ledger entry encoding.
	DBVersion byte = 1
)

var (
	healthKeyCorrupted = []byte{StoreKeyPrefixHealth, 'c'}
	healthKeyVersion   = []byte{StoreKeyPrefixHealth, 'v'}
)

var (
	ErrDatabaseVersionMismatch = errors.New("ledger database version mismatch")
)

// HealthTracker marks a ledger store as corrupted while a node is running
// and keeps the encoding version of the stored entries.
type HealthTracker struct {
	store kvstore.KVStore
}

// NewHealthTracker creates a health tracker on the store of a ledger.
// A fresh store gets the current DBVersion.
func NewHealthTracker(store kvstore.KVStore) (*HealthTracker, error) {
	h := &HealthTracker{store: store}

	exists, err := store.Has(healthKeyVersion)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read database version")
	}
	if !exists {
		if err := store.Set(healthKeyVersion, []byte{DBVersion}); err != nil {
			return nil, errors.Wrap(err, "failed to set database version")
		}
	}
	return h, nil
}

// MarkCorrupted flags the store as corrupted until MarkHealthy is called.
func (h *HealthTracker) MarkCorrupted() error {
	if err := h.store.Set(healthKeyCorrupted, []byte{}); err != nil {
		return errors.Wrap(err, "failed to set database health status")
	}
	return h.store.Flush()
}

func (h *HealthTracker) MarkHealthy() error {
	if err := h.store.Delete(healthKeyCorrupted); err != nil {
		return errors.Wrap(err, "failed to set database health status")
	}
	return h.store.Flush()
}

func (h *HealthTracker) IsCorrupted() (bool, error) {
	contains, err := h.store.Has(healthKeyCorrupted)
	if err != nil {
		return true, errors.Wrap(err, "failed to read database health status")
	}
	return contains, nil
}

// CheckCorrectDatabaseVersion returns ErrDatabaseVersionMismatch if the
// store was written with a different entry encoding.
func (h *HealthTracker) CheckCorrectDatabaseVersion() error {
	value, err := h.store.Get(healthKeyVersion)
	if err != nil {
		return errors.Wrap(err, "failed to read database version")
	}
	if len(value) != 1 || value[0] != DBVersion {
		return errors.Wrapf(ErrDatabaseVersionMismatch, "expected %d, got %v", DBVersion, value)
	}
	return nil
}
