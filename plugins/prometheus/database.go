package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/snsbt/governance/pkg/database"
)

var (
	databaseSizeBytes     *prometheus.GaugeVec
	databaseCompactions   *prometheus.GaugeVec
	databaseCompactionRun *prometheus.GaugeVec
)

func configureDatabase(name string, db *database.Database) {

	if databaseSizeBytes == nil {
		databaseSizeBytes = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "snsbt",
				Subsystem: "database",
				Name:      "size_bytes",
				Help:      "Database sizes in bytes.",
			},
			[]string{"name"},
		)

		databaseCompactions = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "snsbt",
				Subsystem: "database",
				Name:      "compaction_count",
				Help:      "The total amount of database compactions.",
			},
			[]string{"name"},
		)

		databaseCompactionRun = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "snsbt",
				Subsystem: "database",
				Name:      "compaction_running",
				Help:      "Current state of database compaction process.",
			},
			[]string{"name"},
		)

		registry.MustRegister(databaseSizeBytes)
		registry.MustRegister(databaseCompactions)
		registry.MustRegister(databaseCompactionRun)
	}

	addCollect(func() {
		collectDatabase(name, db)
	})
}

func collectDatabase(name string, db *database.Database) {
	databaseSizeBytes.WithLabelValues(name).Set(0)
	if dbSize, err := db.Size(); err == nil {
		databaseSizeBytes.WithLabelValues(name).Set(float64(dbSize))
	}

	databaseCompactions.WithLabelValues(name).Set(float64(db.Metrics().CompactionCount.Load()))

	databaseCompactionRun.WithLabelValues(name).Set(0)
	if db.CompactionRunning() {
		databaseCompactionRun.WithLabelValues(name).Set(1)
	}
}
