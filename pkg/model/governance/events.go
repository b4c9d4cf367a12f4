package governance

import (
	"github.com/iotaledger/hive.go/events"
)

// Events are the events issued by the governance manager.
type Events struct {
	// Deposited is triggered with the committed transaction and the deposited amount.
	Deposited *events.Event
	// VoteCast is triggered with the committed transaction, the proposal id and the option.
	VoteCast *events.Event
	// Withdrawn is triggered with the committed transaction and the withdrawn amount.
	Withdrawn *events.Event
	// InvocationFailed is triggered with the function name, the invocation and the error.
	InvocationFailed *events.Event
}

// TransactionAmountCaller is used to signal committed deposits and withdrawals.
func TransactionAmountCaller(handler interface{}, params ...interface{}) {
	handler.(func(tx *Transaction, amount int64))(params[0].(*Transaction), params[1].(int64))
}

// VoteCaller is used to signal committed votes.
func VoteCaller(handler interface{}, params ...interface{}) {
	handler.(func(tx *Transaction, proposalID int64, option int64))(params[0].(*Transaction), params[1].(int64), params[2].(int64))
}

// InvocationFailedCaller is used to signal rejected or failed invocations.
func InvocationFailedCaller(handler interface{}, params ...interface{}) {
	handler.(func(function string, inv *Invocation, err error))(params[0].(string), params[1].(*Invocation), params[2].(error))
}

func newEvents() *Events {
	return &Events{
		Deposited:        events.NewEvent(TransactionAmountCaller),
		VoteCast:         events.NewEvent(VoteCaller),
		Withdrawn:        events.NewEvent(TransactionAmountCaller),
		InvocationFailed: events.NewEvent(InvocationFailedCaller),
	}
}
