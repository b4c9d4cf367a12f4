package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	governanceDeposits       prometheus.Gauge
	governanceVotes          prometheus.Gauge
	governanceWithdrawals    prometheus.Gauge
	governanceFailures       *prometheus.GaugeVec
	governanceCustodyBalance prometheus.Gauge
)

func configureGovernance() {

	governanceDeposits = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snsbt",
			Subsystem: "governance",
			Name:      "deposits",
			Help:      "The number of committed deposits.",
		},
	)

	governanceVotes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snsbt",
			Subsystem: "governance",
			Name:      "votes",
			Help:      "The number of committed votes.",
		},
	)

	governanceWithdrawals = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snsbt",
			Subsystem: "governance",
			Name:      "withdrawals",
			Help:      "The number of committed withdrawals.",
		},
	)

	governanceFailures = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "snsbt",
			Subsystem: "governance",
			Name:      "failed_invocations",
			Help:      "The number of failed invocations by reason.",
		},
		[]string{"reason"},
	)

	governanceCustodyBalance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snsbt",
			Subsystem: "governance",
			Name:      "custody_balance",
			Help:      "The total staking asset balance held in custody.",
		},
	)

	registry.MustRegister(governanceDeposits)
	registry.MustRegister(governanceVotes)
	registry.MustRegister(governanceWithdrawals)
	registry.MustRegister(governanceFailures)
	registry.MustRegister(governanceCustodyBalance)

	addCollect(collectGovernance)
}

func collectGovernance() {
	governanceDeposits.Set(float64(deps.GovernanceMetrics.Deposits.Load()))
	governanceVotes.Set(float64(deps.GovernanceMetrics.Votes.Load()))
	governanceWithdrawals.Set(float64(deps.GovernanceMetrics.Withdrawals.Load()))
	governanceCustodyBalance.Set(float64(deps.GovernanceMetrics.CustodyBalance.Load()))

	for reason, count := range deps.GovernanceMetrics.Failures() {
		governanceFailures.WithLabelValues(reason).Set(float64(count))
	}
}
