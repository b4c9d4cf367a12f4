package registry_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"

	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
)

const (
	testStart = int64(1671819140106)
	testEnd   = int64(1672019140106)
)

func proposalDataRecord(start int64, end int64, choices string) string {
	return fmt.Sprintf("%%s%%s%%s%%s%%s%%d%%d%%d%%s%%d%%s__6iPF8FLp2X5jSCn74U6jrtHEPKAnvMnNFfbzzS7eUJEj__IDEA__3P88qk1KzF1BKjD7fC7LjNVAKM4ezff5WE6__"+
		"368La1qZAv72FseGrkQA8Vh65Yb9XUHgN5yKobbjUUN9jB7XEK7dRE1siDsSZFHtvocKoF1Pwz89h7q6nSkvwtja__5c3z79TsQa8vka25CQoPd6B8RzrKFTSdvPPXdenH7EdQ__1671819140106__%d__%d____"+
		"1434237513036__%s", start, end, choices)
}

func TestParseProposalData(t *testing.T) {

	p, err := registry.ParseProposalData(proposalDataRecord(testStart, testEnd, "NO:YES"))
	require.NoError(t, err)
	require.Equal(t, "6iPF8FLp2X5jSCn74U6jrtHEPKAnvMnNFfbzzS7eUJEj", p.TxID)
	require.Equal(t, "IDEA", p.Type)
	require.Equal(t, "3P88qk1KzF1BKjD7fC7LjNVAKM4ezff5WE6", p.Author)
	require.Equal(t, testStart, p.Start)
	require.Equal(t, testEnd, p.End)
	require.Equal(t, []string{"NO", "YES"}, p.Choices)
	require.Equal(t, int64(2), p.AbstainOption())
	require.True(t, p.IsValidOption(2))
	require.False(t, p.IsValidOption(3))
	require.False(t, p.IsValidOption(-1))

	p, err = registry.ParseProposalData(proposalDataRecord(testStart, testEnd, "YES"))
	require.NoError(t, err)
	require.Equal(t, []string{"YES"}, p.Choices)

	p, err = registry.ParseProposalData(proposalDataRecord(testStart, testEnd, ""))
	require.NoError(t, err)
	require.Empty(t, p.Choices)
}

func TestParseProposalStatus(t *testing.T) {

	cancelled, err := registry.ParseProposalStatus("%b%d%d%d%b%d%b__false__0__0__0__false__0__false")
	require.NoError(t, err)
	require.False(t, cancelled)

	cancelled, err = registry.ParseProposalStatus("%b%d%d%d%b%d%b__false__0__0__0__false__0__true")
	require.NoError(t, err)
	require.True(t, cancelled)
}

func TestParseMalformedRecords(t *testing.T) {

	malformed := []string{
		"",
		"%b%d%d%d%b%d%b__false__0__0__0__false__0",
		"%b%d%d%d%b%d%b__false__0__0__0__false__0__false__extra",
		"%b%d%d%d%b%d%b__false__0__x__0__false__0__false",
		"%b%d%d%d%b%d%b__false__0__0__0__false__0__yes",
		"%b%d%d%d%b%d%d__false__0__0__0__false__0__0",
		"%b%d%d%d%b%d%x__false__0__0__0__false__0__false",
		"b%d%d%d%b%d%b__false__0__0__0__false__0__false",
	}
	for _, s := range malformed {
		_, err := registry.ParseProposalStatus(s)
		require.ErrorIs(t, err, registry.ErrMalformedProposalRecord, s)
	}

	_, err := registry.ParseProposalData(proposalDataRecord(testStart, testEnd, "NO:YES") + "__1")
	require.ErrorIs(t, err, registry.ErrMalformedProposalRecord)

	_, err = registry.ParseProposalData("%b%d%d%d%b%d%b__false__0__0__0__false__0__false")
	require.ErrorIs(t, err, registry.ErrMalformedProposalRecord)
}

func TestRegistryProposal(t *testing.T) {

	l := ledger.New(mapdb.NewMapDB())
	r := registry.New(l)

	// missing records
	_, err := r.Proposal(8)
	require.ErrorIs(t, err, registry.ErrMalformedProposalRecord)

	require.NoError(t, l.SetEntries(
		ledger.NewStringEntry(registry.ProposalStatusKey(8), "%b%d%d%d%b%d%b__false__0__0__0__false__0__false"),
	))
	_, err = r.Proposal(8)
	require.ErrorIs(t, err, registry.ErrMalformedProposalRecord)

	require.NoError(t, l.SetEntries(
		ledger.NewStringEntry(registry.ProposalDataKey(8), proposalDataRecord(testStart, testEnd, "NO:YES")),
	))
	p, err := r.Proposal(8)
	require.NoError(t, err)
	require.Equal(t, int64(8), p.ID)
	require.False(t, p.Cancelled)
	require.Equal(t, "holding", p.Status(testStart))
	require.Equal(t, "upcoming", p.Status(testStart-1))
	require.Equal(t, "ended", p.Status(testEnd+1))

	// integer instead of string
	require.NoError(t, l.SetEntries(ledger.NewIntegerEntry(registry.ProposalStatusKey(9), 1)))
	_, err = r.Proposal(9)
	require.ErrorIs(t, err, registry.ErrMalformedProposalRecord)
}

func TestProposalEntriesRoundTrip(t *testing.T) {

	l := ledger.New(mapdb.NewMapDB())
	r := registry.New(l)

	proposal := &registry.Proposal{
		ID:        3,
		TxID:      "tx",
		Type:      "IDEA",
		Author:    "author",
		CreatedAt: 10,
		Start:     100,
		End:       200,
		Choices:   []string{"NO", "YES", "MAYBE"},
		Cancelled: true,
	}
	require.NoError(t, l.SetEntries(proposal.Entries()...))

	p, err := r.Proposal(3)
	require.NoError(t, err)
	require.Equal(t, proposal, p)
	require.Equal(t, "cancelled", p.Status(150))
}
