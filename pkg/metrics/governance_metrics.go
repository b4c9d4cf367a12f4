package metrics

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/hive.go/syncutils"
)

// GovernanceMetrics defines metrics over the governance ledger since node start.
type GovernanceMetrics struct {
	// The number of committed deposits.
	Deposits atomic.Uint64
	// The number of committed votes.
	Votes atomic.Uint64
	// The number of committed withdrawals.
	Withdrawals atomic.Uint64
	// The total staking asset balance held in custody.
	CustodyBalance atomic.Int64

	failuresLock syncutils.RWMutex
	failures     map[string]uint64
}

// NewGovernanceMetrics creates empty governance metrics.
func NewGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		failures: make(map[string]uint64),
	}
}

// IncFailures counts a failed invocation under reason.
func (m *GovernanceMetrics) IncFailures(reason string) {
	m.failuresLock.Lock()
	defer m.failuresLock.Unlock()
	m.failures[reason]++
}

// Failures returns a copy of the failed invocation counts per reason.
func (m *GovernanceMetrics) Failures() map[string]uint64 {
	m.failuresLock.RLock()
	defer m.failuresLock.RUnlock()

	result := make(map[string]uint64, len(m.failures))
	for reason, count := range m.failures {
		result[reason] = count
	}
	return result
}
