package gateway

import (
	"math/big"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	MetricNameSpace = "gateway"
)

var (
	unifiedBalanceGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "unified_balance",
			Help:      "unified stable token balance per depositor, token units",
		},
		[]string{"address"},
	)
	externalApiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "external_api_errors_total",
			Help:      "failed calls to the attestation gateway or price feed",
		},
		[]string{"op"},
	)
	transfersSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "transfers_attested_total",
			Help:      "burn intents attested by the gateway",
		},
	)
)

func init() {
	prometheus.MustRegister(
		unifiedBalanceGauge,
		externalApiErrors,
		transfersSubmitted,
	)
}

func metricUnifiedBalance(address string, total *big.Int) {
	amount, _ := decimal.NewFromBigInt(total, -schema.TokenDecimals).Float64()
	unifiedBalanceGauge.WithLabelValues(address).Set(amount)
}

func metricExternalApiError(op string) {
	externalApiErrors.WithLabelValues(op).Inc()
}

func metricTransfer(n int) {
	transfersSubmitted.Add(float64(n))
}
