package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ynx_indexer_store_commit_duration_seconds",
			Help:    "Duration of flushing the record logs and saving the checkpoint for one height",
			Buckets: prometheus.DefBuckets,
		},
	)

	bytesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ynx_indexer_store_bytes_written_total",
			Help: "Total bytes committed to the record logs",
		},
		[]string{"log"},
	)
)
