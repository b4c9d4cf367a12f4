package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/snsbt/governance/pkg/model/ledger"
)

const (
	ProposalStatusHeader = "%b%d%d%d%b%d%b"
	ProposalDataHeader   = "%s%s%s%s%s%d%d%d%s%d%s"
)

// field positions in the proposalStatusData record
const (
	statusFieldCancelled = 6
)

// field positions in the proposalData record
const (
	dataFieldTxID      = 0
	dataFieldType      = 1
	dataFieldAuthor    = 2
	dataFieldCreatedAt = 5
	dataFieldStart     = 6
	dataFieldEnd       = 7
	dataFieldChoices   = 10
)

// ProposalStatusKey is the registry key of the status record of a proposal.
func ProposalStatusKey(proposalID int64) string {
	return fmt.Sprintf("%%s%%d__proposalStatusData__%d", proposalID)
}

// ProposalDataKey is the registry key of the data record of a proposal.
func ProposalDataKey(proposalID int64) string {
	return fmt.Sprintf("%%s%%d__proposalData__%d", proposalID)
}

// Proposal is the part of a registry proposal the governance ledger depends on.
type Proposal struct {
	ID        int64
	TxID      string
	Type      string
	Author    string
	CreatedAt int64
	// Start and End are unix timestamps in milliseconds.
	Start     int64
	End       int64
	Choices   []string
	Cancelled bool
}

// AbstainOption is the index of the implicit abstain choice.
func (p *Proposal) AbstainOption() int64 {
	return int64(len(p.Choices))
}

// IsValidOption tells whether option is one of the named choices or abstain.
func (p *Proposal) IsValidOption(option int64) bool {
	return option >= 0 && option <= p.AbstainOption()
}

// Status returns a textual voting state of the proposal at ts.
func (p *Proposal) Status(ts int64) string {
	switch {
	case p.Cancelled:
		return "cancelled"
	case ts < p.Start:
		return "upcoming"
	case ts > p.End:
		return "ended"
	default:
		return "holding"
	}
}

// ParseProposalStatus parses a proposalStatusData record and returns the
// "cancelled by team" flag.
func ParseProposalStatus(s string) (bool, error) {
	record, err := ParseRecordWithHeader(s, ProposalStatusHeader)
	if err != nil {
		return false, errors.WithMessage(err, "proposalStatusData")
	}
	return record.Boolean(statusFieldCancelled)
}

// ParseProposalData parses a proposalData record into a proposal without id and status.
func ParseProposalData(s string) (*Proposal, error) {
	record, err := ParseRecordWithHeader(s, ProposalDataHeader)
	if err != nil {
		return nil, errors.WithMessage(err, "proposalData")
	}

	p := &Proposal{}
	if p.TxID, err = record.String(dataFieldTxID); err != nil {
		return nil, err
	}
	if p.Type, err = record.String(dataFieldType); err != nil {
		return nil, err
	}
	if p.Author, err = record.String(dataFieldAuthor); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = record.Integer(dataFieldCreatedAt); err != nil {
		return nil, err
	}
	if p.Start, err = record.Integer(dataFieldStart); err != nil {
		return nil, err
	}
	if p.End, err = record.Integer(dataFieldEnd); err != nil {
		return nil, err
	}

	choices, err := record.String(dataFieldChoices)
	if err != nil {
		return nil, err
	}
	p.Choices = []string{}
	if choices != "" {
		p.Choices = strings.Split(choices, ChoiceSeparator)
	}

	return p, nil
}

// Registry reads proposals from the ledger of the registry account.
// It never writes.
type Registry struct {
	ledger *ledger.Ledger
}

// New creates a registry gateway reading from l.
func New(l *ledger.Ledger) *Registry {
	return &Registry{ledger: l}
}

func (r *Registry) record(key string) (string, error) {
	value, err := r.ledger.String(key)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return "", errors.Wrapf(ErrMalformedProposalRecord, "record %s does not exist", key)
		}
		if errors.Is(err, ledger.ErrTypeMismatch) {
			return "", errors.Wrapf(ErrMalformedProposalRecord, "record %s is not a string", key)
		}
		return "", err
	}
	return value, nil
}

// Proposal fetches and parses both records of a proposal.
func (r *Registry) Proposal(proposalID int64) (*Proposal, error) {
	status, err := r.record(ProposalStatusKey(proposalID))
	if err != nil {
		return nil, err
	}
	data, err := r.record(ProposalDataKey(proposalID))
	if err != nil {
		return nil, err
	}

	cancelled, err := ParseProposalStatus(status)
	if err != nil {
		return nil, errors.WithMessagef(err, "proposal %d", proposalID)
	}
	p, err := ParseProposalData(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "proposal %d", proposalID)
	}

	p.ID = proposalID
	p.Cancelled = cancelled
	return p, nil
}

// Entries returns the registry ledger entries that describe p.
func (p *Proposal) Entries() []*ledger.Entry {
	status := FormatRecord(ProposalStatusHeader,
		"false", "0", "0", "0", "false", "0", strconv.FormatBool(p.Cancelled))

	data := FormatRecord(ProposalDataHeader,
		p.TxID,
		p.Type,
		p.Author,
		"",
		"",
		strconv.FormatInt(p.CreatedAt, 10),
		strconv.FormatInt(p.Start, 10),
		strconv.FormatInt(p.End, 10),
		"",
		"0",
		strings.Join(p.Choices, ChoiceSeparator),
	)

	return []*ledger.Entry{
		ledger.NewStringEntry(ProposalStatusKey(p.ID), status),
		ledger.NewStringEntry(ProposalDataKey(p.ID), data),
	}
}
