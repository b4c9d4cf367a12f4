package governance

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/syncutils"

	"github.com/snsbt/governance/pkg/metrics"
	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
	"github.com/snsbt/governance/pkg/utils"
)

var (
	ErrGovernanceCorruptedStorage = errors.New("the governance database was not shutdown properly")
)

// ProposalRegistry provides read access to the proposals votes are cast on.
type ProposalRegistry interface {
	Proposal(proposalID int64) (*registry.Proposal, error)
}

// Manager owns the governance ledger. It validates invocations, stages their
// ledger writes and commits each accepted invocation atomically.
type Manager struct {
	// serializes invocations and commits.
	syncutils.Mutex
	*utils.WrappedLogger

	// holds the Manager options.
	opts *Options

	ledger       *ledger.Ledger
	ledgerHealth *ledger.HealthTracker
	registry     ProposalRegistry

	guard    *Guard
	verifier *Verifier

	Events *Events
}

// the default options applied to the Manager.
var defaultOptions = []Option{
	WithClock(func() int64 { return time.Now().UnixMilli() }),
}

// Options define options for the Manager.
type Options struct {
	logger *logger.Logger

	governanceAddress   string
	governancePublicKey string
	stakingAssetID      string
	adminPublicKeys     []string
	clock               func() int64
	metrics             *metrics.GovernanceMetrics

	ignoreCorruptedStorage bool
}

// applies the given Option.
func (so *Options) apply(opts ...Option) {
	for _, opt := range opts {
		opt(so)
	}
}

// WithLogger enables logging within the manager.
func WithLogger(logger *logger.Logger) Option {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithGovernanceAddress defines the address of the governance account.
func WithGovernanceAddress(address string) Option {
	return func(opts *Options) {
		opts.governanceAddress = address
	}
}

// WithGovernancePublicKey defines the public key of the governance account.
func WithGovernancePublicKey(publicKey string) Option {
	return func(opts *Options) {
		opts.governancePublicKey = publicKey
	}
}

// WithStakingAssetID defines the only asset accepted by deposits.
func WithStakingAssetID(assetID string) Option {
	return func(opts *Options) {
		opts.stakingAssetID = assetID
	}
}

// WithAdminPublicKeys defines the keys that may co-sign outgoing transactions.
func WithAdminPublicKeys(publicKeys []string) Option {
	return func(opts *Options) {
		opts.adminPublicKeys = publicKeys
	}
}

// WithClock defines the source of the current time in milliseconds,
// used for invocations without a timestamp.
func WithClock(clock func() int64) Option {
	return func(opts *Options) {
		opts.clock = clock
	}
}

// WithMetrics enables counting of committed and failed invocations.
func WithMetrics(m *metrics.GovernanceMetrics) Option {
	return func(opts *Options) {
		opts.metrics = m
	}
}

// WithIgnoreCorruptedStorage opens the ledger even if it was not shut down properly.
// Should only be used for debug reasons.
func WithIgnoreCorruptedStorage(ignore bool) Option {
	return func(opts *Options) {
		opts.ignoreCorruptedStorage = ignore
	}
}

// Option is a function setting a Manager option.
type Option func(opts *Options)

// NewManager creates a new Manager on the governance ledger store.
func NewManager(
	ledgerStore kvstore.KVStore,
	proposalRegistry ProposalRegistry,
	opts ...Option) (*Manager, error) {

	options := &Options{}
	options.apply(defaultOptions...)
	options.apply(opts...)

	ledgerHealth, err := ledger.NewHealthTracker(ledgerStore)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		WrappedLogger: utils.NewWrappedLogger(options.logger),
		opts:          options,
		ledger:        ledger.New(ledgerStore),
		ledgerHealth:  ledgerHealth,
		registry:      proposalRegistry,
		guard:         NewGuard(options.governanceAddress, options.stakingAssetID),
		verifier:      NewVerifier(options.governanceAddress, options.governancePublicKey, options.adminPublicKeys),
		Events:        newEvents(),
	}

	if err := manager.init(); err != nil {
		return nil, err
	}

	return manager, nil
}

func (m *Manager) init() error {

	corrupted, err := m.ledgerHealth.IsCorrupted()
	if err != nil {
		return err
	}
	if corrupted {
		if !m.opts.ignoreCorruptedStorage {
			return ErrGovernanceCorruptedStorage
		}
		m.LogWarnf("ignoring corrupted governance database")
	}

	if err := m.ledgerHealth.CheckCorrectDatabaseVersion(); err != nil {
		return err
	}

	if m.opts.metrics != nil {
		custody, err := m.custodyBalance()
		if err != nil {
			return err
		}
		m.opts.metrics.CustodyBalance.Store(custody)
	}

	// Mark the database as corrupted here and as clean when we shut it down
	return m.ledgerHealth.MarkCorrupted()
}

// CloseDatabase marks the ledger store as healthy and closes it.
func (m *Manager) CloseDatabase() error {
	m.Lock()
	defer m.Unlock()

	var flushAndCloseError error
	if err := m.ledgerHealth.MarkHealthy(); err != nil {
		flushAndCloseError = err
	}
	if err := m.ledger.Close(); err != nil {
		flushAndCloseError = err
	}
	return flushAndCloseError
}

// Ledger returns the governance ledger.
func (m *Manager) Ledger() *ledger.Ledger {
	return m.ledger
}

// GovernanceAddress returns the address of the governance account.
func (m *Manager) GovernanceAddress() string {
	return m.opts.governanceAddress
}

// StakingAssetID returns the asset accepted by deposits.
func (m *Manager) StakingAssetID() string {
	return m.opts.stakingAssetID
}

func (m *Manager) custodyBalance() (int64, error) {
	prefix := DepositKey("")

	var total int64
	if err := m.ledger.ForEachEntry(func(entry *ledger.Entry) bool {
		if strings.HasPrefix(entry.Key, prefix) && entry.Value.Type == ledger.ValueTypeInteger {
			total += entry.Value.Integer
		}
		return true
	}); err != nil {
		return 0, err
	}
	return total, nil
}

type operation func(tx *ledger.Transaction, inv *Invocation) ([]*Transfer, error)

// execute runs op against a staged transaction. If commit is set, the staged
// writes are committed in one batch, otherwise they are dropped.
func (m *Manager) execute(function string, inv *Invocation, op operation, commit bool) (*Transaction, error) {
	m.Lock()
	defer m.Unlock()

	invocation := *inv
	if invocation.Timestamp == 0 {
		invocation.Timestamp = m.opts.clock()
	}

	tx := m.ledger.Transaction()
	transfers, err := op(tx, &invocation)
	if err != nil {
		tx.Cancel()
		m.failed(function, &invocation, err)
		return nil, err
	}

	result := &Transaction{
		Function:  function,
		Caller:    invocation.Caller,
		Timestamp: invocation.Timestamp,
		Writes:    tx.Mutations(),
		Transfers: transfers,
	}

	if !commit {
		tx.Cancel()
		return result, nil
	}

	if err := tx.Commit(); err != nil {
		err = errors.Wrapf(err, "failed to commit %s of %s", function, invocation.Caller)
		m.failed(function, &invocation, err)
		return nil, err
	}

	return result, nil
}

func (m *Manager) failed(function string, inv *Invocation, err error) {
	if IsRejection(err) {
		m.LogDebugf("%s by %s rejected: %s", function, inv.Caller, err)
	} else {
		m.LogWarnf("%s by %s failed: %s", function, inv.Caller, err)
	}
	if m.opts.metrics != nil {
		m.opts.metrics.IncFailures(RejectionReason(err))
	}
	m.Events.InvocationFailed.Trigger(function, inv, err)
}

// Deposit credits the single staking asset payment of inv to the caller's custody balance.
func (m *Manager) Deposit(inv *Invocation) (*Transaction, error) {
	return m.deposit(inv, true)
}

func (m *Manager) deposit(inv *Invocation, commit bool) (*Transaction, error) {
	var amount int64
	tx, err := m.execute(FunctionDeposit, inv, func(tx *ledger.Transaction, inv *Invocation) ([]*Transfer, error) {
		var err error
		amount, err = m.stageDeposit(tx, inv)
		return nil, err
	}, commit)
	if err != nil || !commit {
		return tx, err
	}

	m.LogDebugf("deposit of %d by %s", amount, tx.Caller)
	if m.opts.metrics != nil {
		m.opts.metrics.Deposits.Inc()
		m.opts.metrics.CustodyBalance.Add(amount)
	}
	m.Events.Deposited.Trigger(tx, amount)
	return tx, nil
}

// CastVote puts the caller's full custody balance on option of proposalID.
func (m *Manager) CastVote(inv *Invocation, proposalID int64, option int64) (*Transaction, error) {
	return m.castVote(inv, proposalID, option, true)
}

func (m *Manager) castVote(inv *Invocation, proposalID int64, option int64, commit bool) (*Transaction, error) {
	tx, err := m.execute(FunctionCastVote, inv, func(tx *ledger.Transaction, inv *Invocation) ([]*Transfer, error) {
		return nil, m.stageVote(tx, inv, proposalID, option)
	}, commit)
	if err != nil || !commit {
		return tx, err
	}

	m.LogDebugf("vote for option %d of proposal %d by %s", option, proposalID, tx.Caller)
	if m.opts.metrics != nil {
		m.opts.metrics.Votes.Inc()
	}
	m.Events.VoteCast.Trigger(tx, proposalID, option)
	return tx, nil
}

// Withdraw releases the caller's custody balance if no vote lock is active.
func (m *Manager) Withdraw(inv *Invocation) (*Transaction, error) {
	return m.withdraw(inv, true)
}

func (m *Manager) withdraw(inv *Invocation, commit bool) (*Transaction, error) {
	var amount int64
	tx, err := m.execute(FunctionWithdraw, inv, func(tx *ledger.Transaction, inv *Invocation) ([]*Transfer, error) {
		transfer, err := m.stageWithdraw(tx, inv)
		if err != nil {
			return nil, err
		}
		amount = transfer.Amount
		return []*Transfer{transfer}, nil
	}, commit)
	if err != nil || !commit {
		return tx, err
	}

	m.LogDebugf("withdrawal of %d by %s", amount, tx.Caller)
	if m.opts.metrics != nil {
		m.opts.metrics.Withdrawals.Inc()
		m.opts.metrics.CustodyBalance.Sub(amount)
	}
	m.Events.Withdrawn.Trigger(tx, amount)
	return tx, nil
}

// Invoke dispatches call to the matching entry point and commits the result.
func (m *Manager) Invoke(inv *Invocation, call *Call) (*Transaction, error) {
	return m.invoke(inv, call, true)
}

// DryRun validates call like Invoke and returns the transaction it would
// commit, without touching the ledger.
func (m *Manager) DryRun(inv *Invocation, call *Call) (*Transaction, error) {
	return m.invoke(inv, call, false)
}

func (m *Manager) invoke(inv *Invocation, call *Call, commit bool) (*Transaction, error) {
	switch call.Function {
	case FunctionDeposit:
		if err := call.checkArity(0); err != nil {
			return nil, m.rejectCall(call, inv, err)
		}
		return m.deposit(inv, commit)

	case FunctionCastVote:
		if err := call.checkArity(2); err != nil {
			return nil, m.rejectCall(call, inv, err)
		}
		proposalID, err := call.integerArg(0)
		if err != nil {
			return nil, m.rejectCall(call, inv, err)
		}
		option, err := call.integerArg(1)
		if err != nil {
			return nil, m.rejectCall(call, inv, err)
		}
		return m.castVote(inv, proposalID, option, commit)

	case FunctionWithdraw:
		if err := call.checkArity(0); err != nil {
			return nil, m.rejectCall(call, inv, err)
		}
		return m.withdraw(inv, commit)

	default:
		return nil, m.rejectCall(call, inv, errors.Wrapf(ErrUnknownFunction, "%q", call.Function))
	}
}

func (m *Manager) rejectCall(call *Call, inv *Invocation, err error) error {
	m.failed(call.Function, inv, err)
	return err
}

// Verify runs the account script of the governance account on tx.
func (m *Manager) Verify(tx *OutgoingTransaction) error {
	return m.verifier.Verify(tx)
}

// SeedReleaseTime sets the release time of address outside of a vote.
func (m *Manager) SeedReleaseTime(address string, releaseTime int64) error {
	m.Lock()
	defer m.Unlock()

	tx := m.ledger.Transaction()
	tx.SetInteger(ReleaseTimeKey(address), releaseTime)
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to seed release time of %s", address)
	}

	m.LogInfof("seeded release time of %s: %d", address, releaseTime)
	return nil
}
