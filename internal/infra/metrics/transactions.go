package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(transactionsTotal)
}

var transactionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Ledger entries recorded, by type (income/expense/transfer).",
	},
	[]string{"type"},
)

func IncTransaction(txType string) {
	transactionsTotal.WithLabelValues(norm(txType)).Inc()
}
