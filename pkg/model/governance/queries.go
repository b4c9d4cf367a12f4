package governance

import (
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
)

// VoteRecord is the latest vote of an account on a proposal.
type VoteRecord struct {
	Option int64
	Votes  int64
}

func optionalInteger(l *ledger.Ledger, key string) (int64, bool, error) {
	value, err := l.Integer(key)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return value, true, nil
}

// DepositOf returns the custody balance of address and whether it exists.
func (m *Manager) DepositOf(address string) (int64, bool, error) {
	return optionalInteger(m.ledger, DepositKey(address))
}

// ReleaseTimeOf returns the release time of address and whether it exists.
func (m *Manager) ReleaseTimeOf(address string) (int64, bool, error) {
	return optionalInteger(m.ledger, ReleaseTimeKey(address))
}

// VoteOf returns the vote of address on proposalID, or nil if it has not voted.
func (m *Manager) VoteOf(proposalID int64, address string) (*VoteRecord, error) {
	option, voted, err := optionalInteger(m.ledger, OptionByUserKey(proposalID, address))
	if err != nil || !voted {
		return nil, err
	}
	votes, _, err := optionalInteger(m.ledger, VotesByUserKey(proposalID, address))
	if err != nil {
		return nil, err
	}
	return &VoteRecord{Option: option, Votes: votes}, nil
}

// OptionTally returns the summed vote weight on option of proposalID.
// An option without votes has a tally of 0.
func (m *Manager) OptionTally(proposalID int64, option int64) (int64, error) {
	tally, _, err := optionalInteger(m.ledger, VotesByOptionKey(proposalID, option))
	return tally, err
}

// Proposal returns the registry proposal of proposalID.
func (m *Manager) Proposal(proposalID int64) (*registry.Proposal, error) {
	return m.registry.Proposal(proposalID)
}

// Now returns the time of the manager clock in milliseconds.
func (m *Manager) Now() int64 {
	return m.opts.clock()
}

// ProposalTallies returns the tallies of all named choices and abstain of proposalID.
func (m *Manager) ProposalTallies(proposalID int64) ([]int64, error) {
	proposal, err := m.registry.Proposal(proposalID)
	if err != nil {
		return nil, err
	}

	tallies := make([]int64, 0, proposal.AbstainOption()+1)
	for option := int64(0); option <= proposal.AbstainOption(); option++ {
		tally, err := m.OptionTally(proposalID, option)
		if err != nil {
			return nil, err
		}
		tallies = append(tallies, tally)
	}
	return tallies, nil
}

// Entries returns all entries of the governance ledger.
func (m *Manager) Entries() ([]*ledger.Entry, error) {
	return m.ledger.Entries()
}
