package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteFinalizedTotal counts cart finalizations by outcome.
	QuoteFinalizedTotal *prometheus.CounterVec
	// QuoteSubmittedTotal counts quote submissions by outcome.
	QuoteSubmittedTotal *prometheus.CounterVec
	// PromoAppliedTotal counts promo code applications by code and result.
	PromoAppliedTotal *prometheus.CounterVec
	// ExportJobsTotal counts export jobs by format and result.
	ExportJobsTotal *prometheus.CounterVec
	// CartMutationsTotal counts cart write operations by kind.
	CartMutationsTotal *prometheus.CounterVec
	// QuoteValue records finalized quote totals in rupees.
	QuoteValue prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteFinalizedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_finalized_total",
			Help:      "Count of cart finalizations by outcome.",
		}, []string{"result"})
		QuoteSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_submitted_total",
			Help:      "Count of quote submissions by outcome.",
		}, []string{"result"})
		PromoAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_applied_total",
			Help:      "Count of promo code applications by code and result.",
		}, []string{"code", "result"})
		ExportJobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_jobs_total",
			Help:      "Count of quote export jobs by format and result.",
		}, []string{"format", "result"})
		CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart write operations by kind.",
		}, []string{"kind"})
		QuoteValue = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_value_rupees",
			Help:      "Distribution of finalized quote totals in rupees.",
			Buckets:   []float64{1000, 5000, 10000, 25000, 50000, 100000, 250000},
		})

		registerOrReuse(reg, QuoteFinalizedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteFinalizedTotal = v
			}
		})
		registerOrReuse(reg, QuoteSubmittedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteSubmittedTotal = v
			}
		})
		registerOrReuse(reg, PromoAppliedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PromoAppliedTotal = v
			}
		})
		registerOrReuse(reg, ExportJobsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ExportJobsTotal = v
			}
		})
		registerOrReuse(reg, CartMutationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartMutationsTotal = v
			}
		})
		registerOrReuse(reg, QuoteValue, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				QuoteValue = v
			}
		})
	})
}
