package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds all Prometheus metrics for ledger operations. It
// implements usecase.LedgerMetrics.
type Metrics struct {
	DepositsTotal    prometheus.Counter
	WithdrawalsTotal prometheus.Counter
	TransfersTotal   prometheus.Counter

	DepositAmount  prometheus.Histogram
	WithdrawAmount prometheus.Histogram
	TransferAmount prometheus.Histogram

	RejectionsTotal *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	amountBuckets := []float64{1, 10, 100, 1000, 10000, 100000, 1000000}

	return &Metrics{
		DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankgo_deposits_total",
			Help: "Total number of committed deposits",
		}),
		WithdrawalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankgo_withdrawals_total",
			Help: "Total number of committed withdrawals",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankgo_transfers_total",
			Help: "Total number of committed transfers",
		}),
		DepositAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankgo_deposit_amount",
			Help:    "Deposit amounts",
			Buckets: amountBuckets,
		}),
		WithdrawAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankgo_withdraw_amount",
			Help:    "Withdrawal amounts",
			Buckets: amountBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankgo_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: amountBuckets,
		}),
		RejectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankgo_rejections_total",
				Help: "Total number of rejected ledger operations by type",
			},
			[]string{"operation"},
		),
	}
}

// ObserveDeposit records a committed deposit.
func (m *Metrics) ObserveDeposit(amount decimal.Decimal) {
	m.DepositsTotal.Inc()
	m.DepositAmount.Observe(amount.InexactFloat64())
}

// ObserveWithdraw records a committed withdrawal.
func (m *Metrics) ObserveWithdraw(amount decimal.Decimal) {
	m.WithdrawalsTotal.Inc()
	m.WithdrawAmount.Observe(amount.InexactFloat64())
}

// ObserveTransfer records a committed transfer.
func (m *Metrics) ObserveTransfer(amount decimal.Decimal) {
	m.TransfersTotal.Inc()
	m.TransferAmount.Observe(amount.InexactFloat64())
}

// ObserveRejection records a rejected operation.
func (m *Metrics) ObserveRejection(operation string) {
	m.RejectionsTotal.WithLabelValues(operation).Inc()
}
