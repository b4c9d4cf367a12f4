package ledger

import (
	"github.com/pkg/errors"
)

var (
	ErrTransactionClosed = errors.New("ledger transaction already committed or cancelled")
)

// Mutation is a single staged write of a transaction.
// A nil Value deletes the entry.
type Mutation struct {
	Key   string
	Value *Value
}

// IsDelete tells whether the mutation removes the entry.
func (m *Mutation) IsDelete() bool {
	return m.Value == nil
}

// Transaction stages writes against a ledger. Reads see the staged
// writes first and fall back to the ledger. Nothing reaches the store
// before Commit.
type Transaction struct {
	ledger *Ledger
	staged map[string]*Mutation
	order  []string
	closed bool
}

func newTransaction(l *Ledger) *Transaction {
	return &Transaction{
		ledger: l,
		staged: make(map[string]*Mutation),
	}
}

// Value returns the staged or stored value under key, or ErrEntryNotFound.
func (t *Transaction) Value(key string) (*Value, error) {
	if mutation, staged := t.staged[key]; staged {
		if mutation.IsDelete() {
			return nil, ErrEntryNotFound
		}
		return mutation.Value, nil
	}
	return t.ledger.Value(key)
}

// Integer returns the integer value under key.
func (t *Transaction) Integer(key string) (int64, error) {
	return integerOf(t.Value(key))
}

// IntegerOrZero returns the integer value under key, or 0 if the entry is absent.
func (t *Transaction) IntegerOrZero(key string) (int64, error) {
	value, err := t.Integer(key)
	if errors.Is(err, ErrEntryNotFound) {
		return 0, nil
	}
	return value, err
}

// String returns the string value under key.
func (t *Transaction) String(key string) (string, error) {
	return stringOf(t.Value(key))
}

// Has tells whether an entry exists under key.
func (t *Transaction) Has(key string) (bool, error) {
	if mutation, staged := t.staged[key]; staged {
		return !mutation.IsDelete(), nil
	}
	return t.ledger.Has(key)
}

func (t *Transaction) stage(key string, value *Value) {
	if mutation, staged := t.staged[key]; staged {
		mutation.Value = value
		return
	}
	t.staged[key] = &Mutation{Key: key, Value: value}
	t.order = append(t.order, key)
}

// Set stages a value under key.
func (t *Transaction) Set(key string, value *Value) {
	t.stage(key, value)
}

// SetInteger stages an integer value under key.
func (t *Transaction) SetInteger(key string, value int64) {
	t.stage(key, NewIntegerValue(value))
}

// SetString stages a string value under key.
func (t *Transaction) SetString(key string, value string) {
	t.stage(key, NewStringValue(value))
}

// Delete stages the removal of key.
func (t *Transaction) Delete(key string) {
	t.stage(key, nil)
}

// Mutations returns the staged writes in the order the keys were first written.
func (t *Transaction) Mutations() []*Mutation {
	mutations := make([]*Mutation, 0, len(t.order))
	for _, key := range t.order {
		m := t.staged[key]
		mutations = append(mutations, &Mutation{Key: m.Key, Value: m.Value})
	}
	return mutations
}

// Commit applies all staged writes in a single batch.
func (t *Transaction) Commit() error {
	if t.closed {
		return ErrTransactionClosed
	}
	t.closed = true

	mutations := t.ledger.store.Batched()
	for _, key := range t.order {
		m := t.staged[key]
		if m.IsDelete() {
			if err := mutations.Delete(entryKey(key)); err != nil {
				mutations.Cancel()
				return errors.Wrapf(err, "failed to stage deletion of %s", key)
			}
			continue
		}
		if err := mutations.Set(entryKey(key), m.Value.Bytes()); err != nil {
			mutations.Cancel()
			return errors.Wrapf(err, "failed to stage write of %s", key)
		}
	}

	return mutations.Commit()
}

// Cancel drops all staged writes.
func (t *Transaction) Cancel() {
	t.closed = true
	t.staged = make(map[string]*Mutation)
	t.order = nil
}
