package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "adsettle_"

	// ResultSuccess labels a successful operation.
	ResultSuccess = "success"
	// ResultError labels a failed operation.
	ResultError = "error"
)

var (
	registerOnce sync.Once

	extractTotal   *prometheus.CounterVec
	extractLatency *prometheus.HistogramVec
	extractErrors  *prometheus.CounterVec

	settlementWriteTotal *prometheus.CounterVec

	summaryTotal   *prometheus.CounterVec
	summaryLatency *prometheus.HistogramVec

	rollupTotal   *prometheus.CounterVec
	rollupLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		extractTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "estimate_extract_total",
				Help: "Total estimate extractions by result",
			},
			[]string{"result"},
		)
		extractLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "estimate_extract_latency_seconds",
				Help:    "Estimate extraction latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		extractErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "estimate_extract_errors_total",
				Help: "Total estimate extraction errors by reason",
			},
			[]string{"reason"},
		)

		settlementWriteTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_write_total",
				Help: "Total settlement write operations by action and result",
			},
			[]string{"action", "result"},
		)

		summaryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_summary_total",
				Help: "Total month summary computations by result",
			},
			[]string{"result"},
		)
		summaryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "settlement_summary_latency_seconds",
				Help:    "Month summary latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		rollupTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "estimate_rollup_total",
				Help: "Total estimate month rollup computations by result",
			},
			[]string{"result"},
		)
		rollupLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "estimate_rollup_latency_seconds",
				Help:    "Estimate month rollup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			extractTotal,
			extractLatency,
			extractErrors,
			settlementWriteTotal,
			summaryTotal,
			summaryLatency,
			rollupTotal,
			rollupLatency,
			exportTotal,
			exportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveExtract records extraction duration and result.
func ObserveExtract(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if extractTotal != nil {
		extractTotal.WithLabelValues(result).Inc()
	}
	if extractLatency != nil {
		extractLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncExtractError increments extraction error counter.
func IncExtractError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if extractErrors != nil {
		extractErrors.WithLabelValues(reason).Inc()
	}
}

// IncSettlementWrite increments the settlement write counter.
func IncSettlementWrite(action, result string) {
	if result == "" {
		result = ResultSuccess
	}
	if settlementWriteTotal != nil {
		settlementWriteTotal.WithLabelValues(action, result).Inc()
	}
}

// ObserveSummary records month summary duration and result.
func ObserveSummary(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if summaryTotal != nil {
		summaryTotal.WithLabelValues(result).Inc()
	}
	if summaryLatency != nil {
		summaryLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveRollup records estimate rollup duration and result.
func ObserveRollup(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if rollupTotal != nil {
		rollupTotal.WithLabelValues(result).Inc()
	}
	if rollupLatency != nil {
		rollupLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export duration by format and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "estimates_stored",
			Help: "Stored estimate documents",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM estimates")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "settlements_stored",
			Help: "Stored settlement records",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM settlements")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
