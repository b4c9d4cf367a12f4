package test

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"

	"github.com/snsbt/governance/pkg/metrics"
	"github.com/snsbt/governance/pkg/model/account"
	"github.com/snsbt/governance/pkg/model/governance"
	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
)

const (
	// StartTime is the clock of a fresh test environment in milliseconds.
	StartTime = int64(1671819140106)

	day = int64(24 * 60 * 60 * 1000)
)

// Account is a test account with its address and public key.
type Account struct {
	Name      string
	Address   string
	PublicKey string
}

func newAccount(name string, seed byte) *Account {
	publicKey := bytes.Repeat([]byte{seed}, account.PublicKeyLength)
	addr, err := account.NewAddressFromPublicKey(account.ChainIDTestNet, publicKey)
	if err != nil {
		panic(err)
	}
	return &Account{
		Name:      name,
		Address:   addr.String(),
		PublicKey: base58.Encode(publicKey),
	}
}

type GovernanceTestEnv struct {
	t *testing.T

	now int64

	Governance     *Account
	Admin          *Account
	Account1       *Account
	Account2       *Account
	Account3       *Account
	StakingAssetID string
	OtherAssetID   string

	governanceStore kvstore.KVStore
	registryLedger  *ledger.Ledger
	metrics         *metrics.GovernanceMetrics
	gm              *governance.Manager
}

func NewGovernanceTestEnv(t *testing.T) *GovernanceTestEnv {

	env := &GovernanceTestEnv{
		t:               t,
		now:             StartTime,
		Governance:      newAccount("Governance", 1),
		Admin:           newAccount("Admin", 2),
		Account1:        newAccount("Account1", 11),
		Account2:        newAccount("Account2", 12),
		Account3:        newAccount("Account3", 13),
		StakingAssetID:  base58.Encode(bytes.Repeat([]byte{0x5a}, account.AssetIDLength)),
		OtherAssetID:    base58.Encode(bytes.Repeat([]byte{0x0b}, account.AssetIDLength)),
		governanceStore: mapdb.NewMapDB(),
		registryLedger:  ledger.New(mapdb.NewMapDB()),
		metrics:         metrics.NewGovernanceMetrics(),
	}

	gm, err := governance.NewManager(
		env.governanceStore,
		registry.New(env.registryLedger),
		governance.WithGovernanceAddress(env.Governance.Address),
		governance.WithGovernancePublicKey(env.Governance.PublicKey),
		governance.WithStakingAssetID(env.StakingAssetID),
		governance.WithAdminPublicKeys([]string{env.Admin.PublicKey}),
		governance.WithClock(func() int64 { return env.now }),
		governance.WithMetrics(env.metrics),
	)
	require.NoError(t, err)
	env.gm = gm

	return env
}

func (env *GovernanceTestEnv) Cleanup() {
	require.NoError(env.t, env.gm.CloseDatabase())
}

func (env *GovernanceTestEnv) GovernanceManager() *governance.Manager {
	return env.gm
}

// RegistryLedger returns the ledger of the proposal registry.
func (env *GovernanceTestEnv) RegistryLedger() *ledger.Ledger {
	return env.registryLedger
}

func (env *GovernanceTestEnv) Metrics() *metrics.GovernanceMetrics {
	return env.metrics
}

func (env *GovernanceTestEnv) Now() int64 {
	return env.now
}

// SetNow sets the clock used for invocations.
func (env *GovernanceTestEnv) SetNow(ts int64) {
	env.now = ts
}

// AdvanceDays moves the clock forward by days.
func (env *GovernanceTestEnv) AdvanceDays(days int64) {
	env.now += days * day
}

// StoreProposal writes the registry records of p.
func (env *GovernanceTestEnv) StoreProposal(p *registry.Proposal) {
	require.NoError(env.t, env.registryLedger.SetEntries(p.Entries()...))
}

// StoreRegistryEntry writes a raw registry entry.
func (env *GovernanceTestEnv) StoreRegistryEntry(key string, value string) {
	require.NoError(env.t, env.registryLedger.SetEntries(ledger.NewStringEntry(key, value)))
}

// StoreOpenProposal stores a proposal that started a day ago and ends in a day.
func (env *GovernanceTestEnv) StoreOpenProposal(proposalID int64, choices ...string) *registry.Proposal {
	p := &registry.Proposal{
		ID:        proposalID,
		TxID:      "6iPF8FLp2X5jSCn74U6jrtHEPKAnvMnNFfbzzS7eUJEj",
		Type:      "IDEA",
		Author:    env.Admin.Address,
		CreatedAt: env.now - 2*day,
		Start:     env.now - day,
		End:       env.now + day,
		Choices:   choices,
	}
	env.StoreProposal(p)
	return p
}

func (env *GovernanceTestEnv) Payment(assetID string, amount int64) *governance.Payment {
	return &governance.Payment{AssetID: assetID, Amount: amount}
}

func (env *GovernanceTestEnv) Invocation(caller *Account, payments ...*governance.Payment) *governance.Invocation {
	return &governance.Invocation{
		Caller:   caller.Address,
		Payments: payments,
	}
}

// Deposit deposits amount of the staking asset and requires success.
func (env *GovernanceTestEnv) Deposit(caller *Account, amount int64) *governance.Transaction {
	tx, err := env.gm.Deposit(env.Invocation(caller, env.Payment(env.StakingAssetID, amount)))
	require.NoError(env.t, err)
	return tx
}

// CastVote votes and requires success.
func (env *GovernanceTestEnv) CastVote(caller *Account, proposalID int64, option int64) *governance.Transaction {
	tx, err := env.gm.CastVote(env.Invocation(caller), proposalID, option)
	require.NoError(env.t, err)
	return tx
}

// Withdraw withdraws and requires success.
func (env *GovernanceTestEnv) Withdraw(caller *Account) *governance.Transaction {
	tx, err := env.gm.Withdraw(env.Invocation(caller))
	require.NoError(env.t, err)
	return tx
}

// LedgerSnapshot returns all governance ledger entries keyed by ledger key.
func (env *GovernanceTestEnv) LedgerSnapshot() map[string]*ledger.Value {
	entries, err := env.gm.Entries()
	require.NoError(env.t, err)

	snapshot := make(map[string]*ledger.Value, len(entries))
	for _, entry := range entries {
		snapshot[entry.Key] = entry.Value
	}
	return snapshot
}

// AssertLedgerUnchanged requires the governance ledger to equal snapshot.
func (env *GovernanceTestEnv) AssertLedgerUnchanged(snapshot map[string]*ledger.Value) {
	require.Equal(env.t, snapshot, env.LedgerSnapshot())
}

func (env *GovernanceTestEnv) AssertDeposit(acc *Account, expected int64) {
	balance, exists, err := env.gm.DepositOf(acc.Address)
	require.NoError(env.t, err)
	require.True(env.t, exists, "no deposit of %s", acc.Name)
	require.Equal(env.t, expected, balance)
}

func (env *GovernanceTestEnv) AssertNoDeposit(acc *Account) {
	_, exists, err := env.gm.DepositOf(acc.Address)
	require.NoError(env.t, err)
	require.False(env.t, exists, "unexpected deposit of %s", acc.Name)
}

func (env *GovernanceTestEnv) AssertReleaseTime(acc *Account, expected int64) {
	releaseTime, exists, err := env.gm.ReleaseTimeOf(acc.Address)
	require.NoError(env.t, err)
	require.True(env.t, exists, "no release time of %s", acc.Name)
	require.Equal(env.t, expected, releaseTime)
}

func (env *GovernanceTestEnv) AssertVote(acc *Account, proposalID int64, option int64, votes int64) {
	vote, err := env.gm.VoteOf(proposalID, acc.Address)
	require.NoError(env.t, err)
	require.NotNil(env.t, vote, "no vote of %s on %d", acc.Name, proposalID)
	require.Equal(env.t, option, vote.Option)
	require.Equal(env.t, votes, vote.Votes)
}

func (env *GovernanceTestEnv) AssertTally(proposalID int64, option int64, expected int64) {
	tally, err := env.gm.OptionTally(proposalID, option)
	require.NoError(env.t, err)
	require.Equal(env.t, expected, tally, "tally of option %d on %d", option, proposalID)
}

// AssertTallyConservation requires the tallies of proposalID to sum up to the
// vote weights of voters.
func (env *GovernanceTestEnv) AssertTallyConservation(proposalID int64, voters ...*Account) {
	tallies, err := env.gm.ProposalTallies(proposalID)
	require.NoError(env.t, err)

	var tallySum int64
	for _, tally := range tallies {
		tallySum += tally
	}

	var voteSum int64
	for _, voter := range voters {
		vote, err := env.gm.VoteOf(proposalID, voter.Address)
		require.NoError(env.t, err)
		if vote != nil {
			voteSum += vote.Votes
		}
	}

	require.Equal(env.t, voteSum, tallySum)
}
