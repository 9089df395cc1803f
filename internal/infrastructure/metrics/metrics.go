package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec
	TransferRetries  prometheus.Counter

	// Risk metrics
	RiskFlags *prometheus.CounterVec

	// Account metrics
	AccountsOpened prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peerledger_transfers_created_total",
			Help: "Total number of transfers committed",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "peerledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "peerledger_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peerledger_transfer_errors_total",
				Help: "Total number of transfer errors by kind",
			},
			[]string{"kind"},
		),
		TransferRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peerledger_transfer_retries_total",
			Help: "Total number of retried transfer attempts",
		}),
		RiskFlags: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peerledger_risk_flags_total",
				Help: "Total advisory risk flags raised",
			},
			[]string{"flag"},
		),
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peerledger_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peerledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"scope"},
		),
	}
}
