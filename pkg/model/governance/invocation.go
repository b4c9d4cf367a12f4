package governance

import (
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/ledger"
)

const (
	FunctionDeposit  = "deposit"
	FunctionCastVote = "castVote"
	FunctionWithdraw = "withdraw"
)

// Payment is an asset amount attached to an invocation.
type Payment struct {
	AssetID string
	Amount  int64
}

// Invocation carries the caller context of a single entry point call.
type Invocation struct {
	// Caller is the address of the invoking account.
	Caller   string
	Payments []*Payment
	// Timestamp is the block time in milliseconds.
	Timestamp int64
}

// Call names an entry point and its typed arguments.
type Call struct {
	Function string
	Args     []*ledger.Value
}

func (c *Call) integerArg(index int) (int64, error) {
	arg := c.Args[index]
	if arg == nil || arg.Type != ledger.ValueTypeInteger {
		return 0, errors.Wrapf(ErrInvalidArguments, "%s: argument %d must be an integer", c.Function, index)
	}
	return arg.Integer, nil
}

func (c *Call) checkArity(arity int) error {
	if len(c.Args) != arity {
		return errors.Wrapf(ErrInvalidArguments, "%s expects %d arguments, got %d", c.Function, arity, len(c.Args))
	}
	return nil
}
