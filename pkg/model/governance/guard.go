package governance

// Guard validates the caller identity and attached payments of an invocation.
// It has no side effects.
type Guard struct {
	governanceAddress string
	stakingAssetID    string
}

// NewGuard creates a guard for the governance account and its staking asset.
func NewGuard(governanceAddress string, stakingAssetID string) *Guard {
	return &Guard{
		governanceAddress: governanceAddress,
		stakingAssetID:    stakingAssetID,
	}
}

func (g *Guard) checkCaller(inv *Invocation) error {
	if inv.Caller == g.governanceAddress {
		return ErrAccessDenied
	}
	return nil
}

// CheckDeposit validates a deposit invocation and returns its single payment.
func (g *Guard) CheckDeposit(inv *Invocation) (*Payment, error) {
	if err := g.checkCaller(inv); err != nil {
		return nil, err
	}
	if len(inv.Payments) != 1 {
		return nil, ErrPaymentCountInvalid
	}
	payment := inv.Payments[0]
	if payment.AssetID != g.stakingAssetID {
		return nil, ErrWrongAsset
	}
	return payment, nil
}

// CheckNoPayments validates an invocation that must not carry payments.
func (g *Guard) CheckNoPayments(inv *Invocation) error {
	if err := g.checkCaller(inv); err != nil {
		return err
	}
	if len(inv.Payments) != 0 {
		return ErrPaymentsProhibited
	}
	return nil
}
