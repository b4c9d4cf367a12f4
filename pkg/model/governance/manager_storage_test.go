package governance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"

	"github.com/snsbt/governance/pkg/metrics"
	"github.com/snsbt/governance/pkg/model/governance"
	"github.com/snsbt/governance/pkg/model/ledger"
	"github.com/snsbt/governance/pkg/model/registry"
)

const (
	storageTestAsset  = "stakingAsset"
	storageTestCaller = "3MpLXx5fXAhTjwjZk8nJFD4RLVmSafdgAw1"
)

func TestManagerDetectsCorruptedStorage(t *testing.T) {

	store := mapdb.NewMapDB()
	proposals := registry.New(ledger.New(mapdb.NewMapDB()))

	gm, err := governance.NewManager(store, proposals, governance.WithStakingAssetID(storageTestAsset))
	require.NoError(t, err)

	_, err = gm.Deposit(&governance.Invocation{
		Caller:   storageTestCaller,
		Payments: []*governance.Payment{{AssetID: storageTestAsset, Amount: 700}},
	})
	require.NoError(t, err)

	// the first manager was never closed
	_, err = governance.NewManager(store, proposals, governance.WithStakingAssetID(storageTestAsset))
	require.ErrorIs(t, err, governance.ErrGovernanceCorruptedStorage)

	governanceMetrics := metrics.NewGovernanceMetrics()
	gm, err = governance.NewManager(store, proposals,
		governance.WithStakingAssetID(storageTestAsset),
		governance.WithIgnoreCorruptedStorage(true),
		governance.WithMetrics(governanceMetrics),
	)
	require.NoError(t, err)

	// the custody gauge is restored from the stored deposits
	require.Equal(t, int64(700), governanceMetrics.CustodyBalance.Load())

	balance, exists, err := gm.DepositOf(storageTestCaller)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, int64(700), balance)
}
