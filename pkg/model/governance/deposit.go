package governance

import (
	"math"

	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/ledger"
)

// stageDeposit adds the payment of inv to the caller's custody balance.
func (m *Manager) stageDeposit(tx *ledger.Transaction, inv *Invocation) (int64, error) {
	payment, err := m.guard.CheckDeposit(inv)
	if err != nil {
		return 0, err
	}
	if payment.Amount <= 0 {
		return 0, ErrInvalidAmount
	}

	key := DepositKey(inv.Caller)
	balance, err := tx.IntegerOrZero(key)
	if err != nil {
		return 0, err
	}
	if balance > math.MaxInt64-payment.Amount {
		return 0, errors.WithMessagef(ErrInvalidAmount, "deposit of %d overflows balance %d", payment.Amount, balance)
	}

	tx.SetInteger(key, balance+payment.Amount)
	return payment.Amount, nil
}
