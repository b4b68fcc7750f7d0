package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	JobsEnqueued     = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobs_enqueued_total", Help: "Total enqueued jobs"})
	JobsCompleted    = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobs_completed_total", Help: "Jobs completed successfully"})
	JobsRetried      = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobs_retried_total", Help: "Jobs that failed and were rescheduled"})
	JobsQuarantined  = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobs_quarantined_total", Help: "Jobs moved to the failed set"})
	JobsPendingGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "jobs_pending", Help: "Jobs waiting to run"})

	DrawsTotal      = prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_draws_total", Help: "Successful draws against credit lines"})
	RepaymentsTotal = prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_repayments_total", Help: "Successful repayments"})
	RiskCacheHits   = prometheus.NewCounter(prometheus.CounterOpts{Name: "risk_cache_hits_total", Help: "Risk evaluations served from cache"})
	RiskCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{Name: "risk_cache_misses_total", Help: "Risk evaluations computed fresh"})
)

// Handler exposes /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			JobsEnqueued,
			JobsCompleted,
			JobsRetried,
			JobsQuarantined,
			JobsPendingGauge,
			DrawsTotal,
			RepaymentsTotal,
			RiskCacheHits,
			RiskCacheMisses,
		)
	})
	return promhttp.Handler()
}
