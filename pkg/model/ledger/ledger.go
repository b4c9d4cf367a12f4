package ledger

import (
	"github.com/pkg/errors"

	"github.com/iotaledger/hive.go/kvstore"
)

const (
	StoreKeyPrefixEntries byte = 0
	StoreKeyPrefixHealth  byte = 1
)

var (
	ErrEntryNotFound = errors.New("ledger entry not found")
)

func entryKey(key string) []byte {
	k := make([]byte, 0, 1+len(key))
	k = append(k, StoreKeyPrefixEntries)
	return append(k, key...)
}

// EntryConsumer is a function that consumes a ledger entry.
// Returning false stops the iteration.
type EntryConsumer func(entry *Entry) bool

// Ledger is the key-value data storage of a single account.
type Ledger struct {
	store kvstore.KVStore
}

// New creates a ledger on top of the given store.
// The store should be dedicated to this ledger.
func New(store kvstore.KVStore) *Ledger {
	return &Ledger{store: store}
}

// Value returns the value stored under key, or ErrEntryNotFound.
func (l *Ledger) Value(key string) (*Value, error) {
	data, err := l.store.Get(entryKey(key))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, errors.Wrapf(err, "failed to read ledger entry %s", key)
	}
	value, err := ValueFromBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "ledger entry %s", key)
	}
	return value, nil
}

// Integer returns the integer value stored under key.
func (l *Ledger) Integer(key string) (int64, error) {
	return integerOf(l.Value(key))
}

// String returns the string value stored under key.
func (l *Ledger) String(key string) (string, error) {
	return stringOf(l.Value(key))
}

// Has tells whether an entry exists under key.
func (l *Ledger) Has(key string) (bool, error) {
	return l.store.Has(entryKey(key))
}

// ForEachEntry iterates all entries of the ledger in key order.
func (l *Ledger) ForEachEntry(consumer EntryConsumer) error {

	var innerErr error
	if err := l.store.Iterate(kvstore.KeyPrefix{StoreKeyPrefixEntries}, func(key kvstore.Key, data kvstore.Value) bool {
		value, err := ValueFromBytes(data)
		if err != nil {
			innerErr = errors.Wrapf(err, "ledger entry %s", string(key[1:]))
			return false
		}
		return consumer(&Entry{Key: string(key[1:]), Value: value})
	}); err != nil {
		return err
	}

	return innerErr
}

// Entries returns all entries of the ledger.
func (l *Ledger) Entries() ([]*Entry, error) {
	var entries []*Entry
	if err := l.ForEachEntry(func(entry *Entry) bool {
		entries = append(entries, entry)
		return true
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetEntries writes the given entries in a single batch.
func (l *Ledger) SetEntries(entries ...*Entry) error {
	tx := l.Transaction()
	for _, entry := range entries {
		tx.Set(entry.Key, entry.Value)
	}
	return tx.Commit()
}

// Transaction starts a staged transaction on the ledger.
func (l *Ledger) Transaction() *Transaction {
	return newTransaction(l)
}

// Flush persists pending writes of the underlying store.
func (l *Ledger) Flush() error {
	return l.store.Flush()
}

// Close flushes and closes the underlying store.
func (l *Ledger) Close() error {
	if err := l.store.Flush(); err != nil {
		return err
	}
	return l.store.Close()
}

func integerOf(value *Value, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	if value.Type != ValueTypeInteger {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected integer, got %s", value.Type)
	}
	return value.Integer, nil
}

func stringOf(value *Value, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if value.Type != ValueTypeString {
		return "", errors.Wrapf(ErrTypeMismatch, "expected string, got %s", value.Type)
	}
	return value.String, nil
}
