package router

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
	accountBalance,
	envelopeAmount,
	transactionCount,
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry.
func registerPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics unregisters all Prometheus metrics.
//
// This is needed to cleanly exit.
func unregisterPrometheusMetrics() bool {
	ok := true
	for _, c := range metrics {
		ok = prometheus.Unregister(c) && ok
	}

	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

var accountBalance = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ledger_account_balance",
		Help: "Balance of each open account.",
	},
	[]string{"account"},
)

var envelopeAmount = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ledger_envelope_amount",
		Help: "Current amount of each envelope. Negative for overdrawn envelopes.",
	},
	[]string{"envelope"},
)

var transactionCount = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ledger_transactions",
		Help: "Number of recorded transactions.",
	},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// LedgerMetrics sets the ledger gauges from a snapshot.
//
// Series of renamed, closed or deleted accounts and envelopes are removed.
func LedgerMetrics(snapshot ledger.Snapshot) {
	accountBalance.Reset()
	for _, a := range snapshot.Accounts {
		if a.Closed {
			continue
		}
		accountBalance.WithLabelValues(a.Name).Set(a.Balance.InexactFloat64())
	}

	envelopeAmount.Reset()
	for _, e := range snapshot.Envelopes {
		envelopeAmount.WithLabelValues(e.Name).Set(e.CurrentAmount.InexactFloat64())
	}

	transactionCount.Set(float64(len(snapshot.Transactions)))
}
