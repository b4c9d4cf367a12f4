package governance

// OutgoingTransaction is a transaction sent from an account, reduced to
// what the account script checks: the sender and the public keys that
// produced its proofs.
type OutgoingTransaction struct {
	Sender          string
	ProofPublicKeys []string
}

// Verifier is the account script of the governance account.
// Outgoing transactions of the governance account need a proof of the
// governance key and at least one proof of an admin key.
type Verifier struct {
	governanceAddress   string
	governancePublicKey string
	adminPublicKeys     map[string]struct{}
}

// NewVerifier creates the account script verifier.
func NewVerifier(governanceAddress string, governancePublicKey string, adminPublicKeys []string) *Verifier {
	admins := make(map[string]struct{}, len(adminPublicKeys))
	for _, key := range adminPublicKeys {
		if key == governancePublicKey {
			continue
		}
		admins[key] = struct{}{}
	}
	return &Verifier{
		governanceAddress:   governanceAddress,
		governancePublicKey: governancePublicKey,
		adminPublicKeys:     admins,
	}
}

// Verify returns ErrTransactionNotAllowed if tx is an outgoing transaction of
// the governance account without the required proofs.
func (v *Verifier) Verify(tx *OutgoingTransaction) error {
	if tx.Sender != v.governanceAddress {
		return nil
	}

	var signedByGovernance, signedByAdmin bool
	for _, key := range tx.ProofPublicKeys {
		if key == v.governancePublicKey {
			signedByGovernance = true
			continue
		}
		if _, isAdmin := v.adminPublicKeys[key]; isAdmin {
			signedByAdmin = true
		}
	}

	if !signedByGovernance || !signedByAdmin {
		return ErrTransactionNotAllowed
	}
	return nil
}
