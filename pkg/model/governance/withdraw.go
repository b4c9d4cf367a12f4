package governance

import (
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/ledger"
)

// stageWithdraw removes the caller's custody balance and returns the transfer
// paying it back. Vote records, tallies and the release time stay as they are.
func (m *Manager) stageWithdraw(tx *ledger.Transaction, inv *Invocation) (*Transfer, error) {
	if err := m.guard.CheckNoPayments(inv); err != nil {
		return nil, err
	}

	depositKey := DepositKey(inv.Caller)
	balance, err := tx.Integer(depositKey)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return nil, errKeyNotFound(depositKey)
		}
		return nil, err
	}

	releaseTime, err := tx.Integer(ReleaseTimeKey(inv.Caller))
	switch {
	case errors.Is(err, ledger.ErrEntryNotFound):
	case err != nil:
		return nil, err
	case inv.Timestamp < releaseTime:
		return nil, errActiveVoteLock(releaseTime)
	}

	tx.Delete(depositKey)

	return &Transfer{
		Recipient: inv.Caller,
		AssetID:   m.opts.stakingAssetID,
		Amount:    balance,
	}, nil
}
