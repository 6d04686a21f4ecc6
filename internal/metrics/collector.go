package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ynxchain/ynx-indexer/internal/types"
)

// StateSource exposes the indexer progress read at scrape time.
type StateSource interface {
	State() types.IndexerState
}

// HeadSource exposes the highest chain height seen by the ingestion loop.
type HeadSource interface {
	LatestSeen() uint64
}

var (
	lastHeightDesc = prometheus.NewDesc(
		"ynx_indexer_last_height",
		"Last fully indexed block height",
		nil, nil,
	)
	latestSeenDesc = prometheus.NewDesc(
		"ynx_indexer_latest_seen",
		"Highest block height reported by the node",
		nil, nil,
	)
	blocksIndexedDesc = prometheus.NewDesc(
		"ynx_indexer_blocks_indexed",
		"Blocks indexed since the data directory was created",
		nil, nil,
	)
	txsIndexedDesc = prometheus.NewDesc(
		"ynx_indexer_txs_indexed",
		"Transactions indexed since the data directory was created",
		nil, nil,
	)
)

// StateCollector reports the persisted checkpoint and the chain head.
// Counters start from the checkpoint, so they survive restarts.
type StateCollector struct {
	state StateSource
	head  HeadSource
}

// NewStateCollector creates a collector reading from state and head.
func NewStateCollector(state StateSource, head HeadSource) *StateCollector {
	return &StateCollector{state: state, head: head}
}

// Describe implements prometheus.Collector.
func (c *StateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- lastHeightDesc
	ch <- latestSeenDesc
	ch <- blocksIndexedDesc
	ch <- txsIndexedDesc
}

// Collect implements prometheus.Collector.
func (c *StateCollector) Collect(ch chan<- prometheus.Metric) {
	state := c.state.State()

	ch <- prometheus.MustNewConstMetric(lastHeightDesc, prometheus.GaugeValue, float64(state.LastHeight))
	ch <- prometheus.MustNewConstMetric(latestSeenDesc, prometheus.GaugeValue, float64(c.head.LatestSeen()))
	ch <- prometheus.MustNewConstMetric(blocksIndexedDesc, prometheus.CounterValue, float64(state.BlocksIndexed))
	ch <- prometheus.MustNewConstMetric(txsIndexedDesc, prometheus.CounterValue, float64(state.TxsIndexed))
}
