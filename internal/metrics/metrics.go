package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	TickOK         = "ok"
	TickFetchError = "fetch_error"
	TickFatal      = "fatal"
	TickSkipped    = "skipped"
)

var (
	// Ingestion metrics
	ticks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ynx_indexer_ticks_total",
			Help: "Total number of ingestion ticks by outcome",
		},
		[]string{"outcome"},
	)

	heightIngestTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ynx_indexer_height_ingest_duration_seconds",
			Help:    "Time taken to fetch, persist and cache one height",
			Buckets: prometheus.DefBuckets,
		},
	)

	ingestLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ynx_indexer_lag_heights",
			Help: "Heights between the chain head and the last indexed height",
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ynx_indexer_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ynx_indexer_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ynx_indexer_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func TickInc(outcome string) {
	ticks.WithLabelValues(outcome).Inc()
}

func HeightIngestDuration(duration time.Duration) {
	heightIngestTime.Observe(duration.Seconds())
}

func IngestLagSet(latest, last uint64) {
	if latest < last {
		ingestLag.Set(0)
		return
	}
	ingestLag.Set(float64(latest - last))
}

// UpdateSystemMetrics updates runtime system metrics.
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
