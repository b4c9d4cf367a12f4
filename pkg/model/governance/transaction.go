package governance

import (
	"github.com/snsbt/governance/pkg/model/ledger"
)

// Transfer instructs the collaborator to move an asset out of custody.
type Transfer struct {
	Recipient string
	AssetID   string
	Amount    int64
}

// Transaction is the outcome of an accepted invocation: the ledger writes
// in the order they were staged and the transfers to perform.
type Transaction struct {
	Function  string
	Caller    string
	Timestamp int64
	Writes    []*ledger.Mutation
	Transfers []*Transfer
}

// Write returns the staged write for key, or nil.
func (t *Transaction) Write(key string) *ledger.Mutation {
	for _, w := range t.Writes {
		if w.Key == key {
			return w
		}
	}
	return nil
}
