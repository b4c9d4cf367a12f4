package governance

import (
	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
)

const (
	// the minimum number of named choices a proposal needs to be voted on.
	minProposalChoices = 2
)

// checkProposal validates that proposal accepts option at ts.
func checkProposal(proposal *registry.Proposal, option int64, ts int64) error {
	if proposal.Cancelled {
		return ErrVotingCanceled
	}
	if ts < proposal.Start {
		return ErrVotingNotStarted
	}
	if ts > proposal.End {
		return ErrVotingFinished
	}
	if len(proposal.Choices) < minProposalChoices {
		return ErrTooFewChoices
	}
	if !proposal.IsValidOption(option) {
		return errUnknownChoice(proposal.AbstainOption())
	}
	return nil
}

// stageVote moves the caller's vote weight on proposalID to option.
// The weight is the full custody balance at the time of the vote and
// replaces any weight of an earlier vote on the same proposal.
func (m *Manager) stageVote(tx *ledger.Transaction, inv *Invocation, proposalID int64, option int64) error {
	if err := m.guard.CheckNoPayments(inv); err != nil {
		return err
	}

	proposal, err := m.registry.Proposal(proposalID)
	if err != nil {
		return err
	}
	if err := checkProposal(proposal, option, inv.Timestamp); err != nil {
		return err
	}

	depositKey := DepositKey(inv.Caller)
	weight, err := tx.Integer(depositKey)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return errKeyNotFound(depositKey)
		}
		return err
	}

	optionKey := OptionByUserKey(proposalID, inv.Caller)
	votesKey := VotesByUserKey(proposalID, inv.Caller)

	hasVoted, err := tx.Has(optionKey)
	if err != nil {
		return err
	}
	if hasVoted {
		oldOption, err := tx.Integer(optionKey)
		if err != nil {
			return err
		}
		oldWeight, err := tx.IntegerOrZero(votesKey)
		if err != nil {
			return err
		}

		oldTallyKey := VotesByOptionKey(proposalID, oldOption)
		oldTally, err := tx.IntegerOrZero(oldTallyKey)
		if err != nil {
			return err
		}
		tx.SetInteger(oldTallyKey, oldTally-oldWeight)
	}

	tallyKey := VotesByOptionKey(proposalID, option)
	tally, err := tx.IntegerOrZero(tallyKey)
	if err != nil {
		return err
	}
	tx.SetInteger(tallyKey, tally+weight)

	tx.SetInteger(votesKey, weight)
	tx.SetInteger(optionKey, option)
	tx.SetInteger(ReleaseTimeKey(inv.Caller), proposal.End)

	return nil
}
