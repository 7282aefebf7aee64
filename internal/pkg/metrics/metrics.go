package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	punchesIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spti_attendance",
			Name:      "punches_ingested_total",
			Help:      "Count of raw punches inserted from device batches.",
		},
	)

	punchesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spti_attendance",
			Name:      "punches_skipped_total",
			Help:      "Count of punches dropped during ingestion by reason.",
		},
		[]string{"reason"},
	)

	recomputeRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spti_attendance",
			Name:      "recompute_runs_total",
			Help:      "Count of recompute invocations.",
		},
	)

	summariesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spti_attendance",
			Name:      "summaries_written_total",
			Help:      "Count of daily summary rows upserted.",
		},
	)
)

// Skip reasons for punchesSkipped.
const (
	ReasonUnknownEmployee = "unknown_employee"
	ReasonDuplicate       = "duplicate"
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(punchesIngested, punchesSkipped, recomputeRuns, summariesWritten)
	})
}

func AddPunchesIngested(n int) {
	punchesIngested.Add(float64(n))
}

func IncPunchSkipped(reason string) {
	punchesSkipped.WithLabelValues(reason).Inc()
}

func IncRecomputeRun() {
	recomputeRuns.Inc()
}

func AddSummariesWritten(n int) {
	summariesWritten.Add(float64(n))
}
