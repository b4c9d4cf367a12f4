package governance

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/configuration"
	"github.com/iotaledger/hive.go/events"

	"github.com/snsbt/governance/pkg/database"
	"github.com/snsbt/governance/pkg/metrics"
	"github.com/snsbt/governance/pkg/model/account"
	"github.com/snsbt/governance/pkg/model/governance"
	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
	"github.com/snsbt/governance/pkg/node"
	"github.com/snsbt/governance/pkg/shutdown"
)

func init() {
	CorePlugin = &node.CorePlugin{
		Pluggable: node.Pluggable{
			Name:      "Governance",
			DepsFunc:  func(cDeps dependencies) { deps = cDeps },
			Params:    params,
			Provide:   provide,
			Configure: configure,
			Run:       run,
		},
	}
}

var (
	CorePlugin *node.CorePlugin
	deps       dependencies

	onDeposited        *events.Closure
	onVoteCast         *events.Closure
	onWithdrawn        *events.Closure
	onInvocationFailed *events.Closure
)

type dependencies struct {
	dig.In
	GovernanceManager *governance.Manager
	RegistryLedger    *ledger.Ledger `name:"registryLedger"`
}

// Settings are the validated governance account settings.
type Settings struct {
	Address         account.Address
	PublicKey       account.PublicKey
	StakingAssetID  account.AssetID
	AdminPublicKeys []account.PublicKey
}

// LoadSettings parses and validates the governance account settings of nodeConfig.
func LoadSettings(nodeConfig *configuration.Configuration) (*Settings, error) {

	address, err := account.ParseAddress(nodeConfig.String(CfgGovernanceAddress))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", CfgGovernanceAddress)
	}

	publicKey, err := account.ParsePublicKey(nodeConfig.String(CfgGovernancePublicKey))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", CfgGovernancePublicKey)
	}

	if publicKey.Address(address.ChainID()).String() != address.String() {
		return nil, errors.Errorf("%s does not belong to %s", CfgGovernancePublicKey, CfgGovernanceAddress)
	}

	stakingAssetID, err := account.ParseAssetID(nodeConfig.String(CfgGovernanceStakingAssetID))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", CfgGovernanceStakingAssetID)
	}

	adminPublicKeys := make([]account.PublicKey, 0)
	for _, key := range nodeConfig.Strings(CfgGovernanceAdminPublicKeys) {
		adminPublicKey, err := account.ParsePublicKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s: %s", CfgGovernanceAdminPublicKeys, key)
		}
		adminPublicKeys = append(adminPublicKeys, adminPublicKey)
	}

	return &Settings{
		Address:         address,
		PublicKey:       publicKey,
		StakingAssetID:  stakingAssetID,
		AdminPublicKeys: adminPublicKeys,
	}, nil
}

func provide(c *dig.Container) {

	if err := c.Provide(func() *metrics.GovernanceMetrics {
		return metrics.NewGovernanceMetrics()
	}); err != nil {
		CorePlugin.LogPanic(err)
	}

	type registryDeps struct {
		dig.In
		RegistryDatabase *database.Database `name:"registryDatabase"`
	}

	type registryOut struct {
		dig.Out
		RegistryLedger *ledger.Ledger `name:"registryLedger"`
		Registry       *registry.Registry
	}

	if err := c.Provide(func(deps registryDeps) registryOut {
		registryLedger := ledger.New(deps.RegistryDatabase.KVStore())
		return registryOut{
			RegistryLedger: registryLedger,
			Registry:       registry.New(registryLedger),
		}
	}); err != nil {
		CorePlugin.LogPanic(err)
	}

	type managerDeps struct {
		dig.In
		NodeConfig         *configuration.Configuration `name:"nodeConfig"`
		GovernanceDatabase *database.Database           `name:"governanceDatabase"`
		DatabaseDebug      bool                         `name:"databaseDebug"`
		Registry           *registry.Registry
		GovernanceMetrics  *metrics.GovernanceMetrics
	}

	if err := c.Provide(func(deps managerDeps) *governance.Manager {

		settings, err := LoadSettings(deps.NodeConfig)
		if err != nil {
			CorePlugin.LogPanic(err)
		}

		adminPublicKeys := make([]string, 0, len(settings.AdminPublicKeys))
		for _, key := range settings.AdminPublicKeys {
			adminPublicKeys = append(adminPublicKeys, key.String())
		}

		gm, err := governance.NewManager(
			deps.GovernanceDatabase.KVStore(),
			deps.Registry,
			governance.WithLogger(CorePlugin.Logger()),
			governance.WithGovernanceAddress(settings.Address.String()),
			governance.WithGovernancePublicKey(settings.PublicKey.String()),
			governance.WithStakingAssetID(settings.StakingAssetID.String()),
			governance.WithAdminPublicKeys(adminPublicKeys),
			governance.WithMetrics(deps.GovernanceMetrics),
			governance.WithIgnoreCorruptedStorage(deps.DatabaseDebug),
		)
		if err != nil {
			CorePlugin.LogPanicf("can't initialize governance manager: %s", err)
		}
		return gm
	}); err != nil {
		CorePlugin.LogPanic(err)
	}
}

func configure() {

	CorePlugin.LogInfof("governance account: %s, staking asset: %s", deps.GovernanceManager.GovernanceAddress(), deps.GovernanceManager.StakingAssetID())

	if err := CorePlugin.Daemon().BackgroundWorker("Close governance databases", func(ctx context.Context) {
		<-ctx.Done()

		CorePlugin.LogInfo("Syncing governance databases to disk ...")
		if err := deps.GovernanceManager.CloseDatabase(); err != nil {
			CorePlugin.LogPanicf("Syncing governance database to disk ... failed: %s", err)
		}
		if err := deps.RegistryLedger.Close(); err != nil {
			CorePlugin.LogPanicf("Syncing registry database to disk ... failed: %s", err)
		}
		CorePlugin.LogInfo("Syncing governance databases to disk ... done")
	}, shutdown.PriorityCloseDatabase); err != nil {
		CorePlugin.LogPanicf("failed to start worker: %s", err)
	}

	configureEvents()
}

func run() {
	if err := CorePlugin.Daemon().BackgroundWorker("Governance", func(ctx context.Context) {
		CorePlugin.LogInfo("Starting Governance ... done")
		attachEvents()
		<-ctx.Done()
		detachEvents()
		CorePlugin.LogInfo("Stopping Governance ... done")
	}, shutdown.PriorityGovernance); err != nil {
		CorePlugin.LogPanicf("failed to start worker: %s", err)
	}
}

func configureEvents() {

	onDeposited = events.NewClosure(func(tx *governance.Transaction, amount int64) {
		CorePlugin.LogInfof("deposit of %d by %s", amount, tx.Caller)
	})

	onVoteCast = events.NewClosure(func(tx *governance.Transaction, proposalID int64, option int64) {
		CorePlugin.LogInfof("vote of %s on proposal %d for option %d", tx.Caller, proposalID, option)
	})

	onWithdrawn = events.NewClosure(func(tx *governance.Transaction, amount int64) {
		CorePlugin.LogInfof("withdrawal of %d by %s", amount, tx.Caller)
	})

	onInvocationFailed = events.NewClosure(func(function string, inv *governance.Invocation, err error) {
		if governance.IsRejection(err) {
			return
		}
		CorePlugin.LogWarnf("%s of %s failed: %s", function, inv.Caller, err)
	})
}

func attachEvents() {
	deps.GovernanceManager.Events.Deposited.Attach(onDeposited)
	deps.GovernanceManager.Events.VoteCast.Attach(onVoteCast)
	deps.GovernanceManager.Events.Withdrawn.Attach(onWithdrawn)
	deps.GovernanceManager.Events.InvocationFailed.Attach(onInvocationFailed)
}

func detachEvents() {
	deps.GovernanceManager.Events.Deposited.Detach(onDeposited)
	deps.GovernanceManager.Events.VoteCast.Detach(onVoteCast)
	deps.GovernanceManager.Events.Withdrawn.Detach(onWithdrawn)
	deps.GovernanceManager.Events.InvocationFailed.Detach(onInvocationFailed)
}
