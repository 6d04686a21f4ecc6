package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/metrics"
	"github.com/ynxchain/ynx-indexer/internal/store"
	"github.com/ynxchain/ynx-indexer/internal/types"
	"github.com/ynxchain/ynx-indexer/pkg/chain"
)

// ErrTickInProgress is returned by Tick while another tick is still running.
var ErrTickInProgress = errors.New("ingestion tick already in progress")

// Store is the durable side of ingestion.
type Store interface {
	State() types.IndexerState
	AppendBlock(record types.BlockRecord) error
	AppendTx(record types.TxRecord) error
	Commit(height, blocks, txs uint64) (types.IndexerState, error)
	Rollback() error
}

// Cache receives every committed record.
type Cache interface {
	PushBlock(record types.BlockRecord)
	PushTx(record types.TxRecord)
}

// Governance is refreshed lazily until it has been loaded once.
type Governance interface {
	Loaded() bool
	Load(ctx context.Context) error
}

// Config controls polling and the starting point on an empty store.
type Config struct {
	PollInterval time.Duration
	// StartHeight, when non-zero, is the first height indexed on an empty store
	StartHeight uint64
	// Backfill, when non-zero and StartHeight is zero, is the number of heights
	// below the head indexed on an empty store
	Backfill uint64
}

// Loop polls the node and ingests every new height in order.
// Exactly one tick runs at a time.
type Loop struct {
	cfg    Config
	client chain.Client
	store  Store
	cache  Cache
	gov    Governance
	log    *logger.Logger

	polling    atomic.Bool
	latestSeen atomic.Uint64

	mu      sync.RWMutex
	chainID string
}

// New creates an ingestion loop.
func New(cfg Config, client chain.Client, st Store, cache Cache, gov Governance, log *logger.Logger) *Loop {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Loop{
		cfg:    cfg,
		client: client,
		store:  st,
		cache:  cache,
		gov:    gov,
		log:    log.WithComponent(common.ComponentIngest),
	}
}

// ChainID returns the chain id reported by the node, or "" before the first successful status call.
func (l *Loop) ChainID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chainID
}

// LatestSeen returns the highest chain height reported by the node so far.
func (l *Loop) LatestSeen() uint64 {
	return l.latestSeen.Load()
}

func (l *Loop) observeStatus(status *chain.Status) {
	if status.ChainID != "" {
		l.mu.Lock()
		l.chainID = status.ChainID
		l.mu.Unlock()
	}

	for {
		seen := l.latestSeen.Load()
		if status.LatestHeight <= seen || l.latestSeen.CompareAndSwap(seen, status.LatestHeight) {
			return
		}
	}
}

// Init discovers the chain id and loads governance metadata. Both are best
// effort: failures are logged and retried by later ticks.
func (l *Loop) Init(ctx context.Context) {
	status, err := l.client.Status(ctx)
	if err != nil {
		l.log.Warnw("failed to fetch node status", "error", err)
	} else {
		l.observeStatus(status)
		l.log.Infow("connected to node", "chain_id", status.ChainID, "latest_height", status.LatestHeight)
	}

	if err := l.gov.Load(ctx); err != nil {
		l.log.Warnw("failed to load governance metadata, using configured values", "error", err)
	}
}

// Run ticks immediately and then every PollInterval until ctx is done.
// It returns nil on cancellation and an error wrapping store.ErrPersistence
// when a write fails.
func (l *Loop) Run(ctx context.Context) error {
	l.Init(ctx)

	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	l.log.Infow("ingestion loop started", "poll_interval", l.cfg.PollInterval.String())

	for {
		if err := l.Tick(ctx); errors.Is(err, store.ErrPersistence) {
			l.log.Errorw("ingestion stopped", "error", err)
			return err
		}

		select {
		case <-ctx.Done():
			l.log.Info("ingestion loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs one ingestion cycle: query the head, seed the checkpoint on an
// empty store, then ingest every height above the checkpoint in order.
// A failed height aborts the tick; the next tick retries it.
func (l *Loop) Tick(ctx context.Context) error {
	if !l.polling.CompareAndSwap(false, true) {
		metrics.TickInc(metrics.TickSkipped)
		return ErrTickInProgress
	}
	defer l.polling.Store(false)

	err := l.tick(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		metrics.TickInc(metrics.TickOK)
	case errors.Is(err, store.ErrPersistence):
		metrics.TickInc(metrics.TickFatal)
	default:
		metrics.TickInc(metrics.TickFetchError)
		l.log.Warnw("ingestion tick failed", "last_height", l.store.State().LastHeight, "error", err)
	}

	return err
}

func (l *Loop) tick(ctx context.Context) error {
	status, err := l.client.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest height: %w", err)
	}
	l.observeStatus(status)
	latest := status.LatestHeight

	if !l.gov.Loaded() && latest > 0 {
		if err := l.gov.Load(ctx); err != nil {
			l.log.Debugw("governance metadata still unavailable", "error", err)
		}
	}

	state := l.store.State()
	if state.LastHeight == 0 {
		seed := l.seedHeight(latest)
		if state, err = l.store.Commit(seed, 0, 0); err != nil {
			return err
		}
		l.log.Infow("seeded indexer state", "last_height", seed, "latest_height", latest)
	}

	defer func() { metrics.IngestLagSet(latest, l.store.State().LastHeight) }()

	for h := state.LastHeight + 1; h <= latest; h++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.ingestHeight(ctx, h); err != nil {
			return fmt.Errorf("height %d: %w", h, err)
		}
	}

	return nil
}

// seedHeight picks the checkpoint for an empty store: explicit start height
// minus one, else the head minus the backfill window, else the head.
func (l *Loop) seedHeight(latest uint64) uint64 {
	switch {
	case l.cfg.StartHeight > 0:
		return l.cfg.StartHeight - 1
	case l.cfg.Backfill > 0:
		if l.cfg.Backfill >= latest {
			return 0
		}
		return latest - l.cfg.Backfill
	default:
		return latest
	}
}

func (l *Loop) ingestHeight(ctx context.Context, height uint64) error {
	start := time.Now()

	payload, err := l.client.Block(ctx, height)
	if err != nil {
		return err
	}

	results, err := l.client.BlockResults(ctx, height)
	if err != nil {
		return err
	}

	block, txs := BuildRecords(payload, results)

	if err := l.append(block, txs); err != nil {
		if rbErr := l.store.Rollback(); rbErr != nil {
			l.log.Errorw("failed to roll back partial height", "height", height, "error", rbErr)
		}
		return err
	}

	state, err := l.store.Commit(height, 1, uint64(len(txs)))
	if err != nil {
		return err
	}

	l.cache.PushBlock(block)
	for _, tx := range txs {
		l.cache.PushTx(tx)
	}

	metrics.HeightIngestDuration(time.Since(start))
	l.log.Debugw("indexed height",
		"height", height,
		"txs", len(txs),
		"blocks_indexed", state.BlocksIndexed,
		"txs_indexed", state.TxsIndexed,
	)

	return nil
}

func (l *Loop) append(block types.BlockRecord, txs []types.TxRecord) error {
	if err := l.store.AppendBlock(block); err != nil {
		return err
	}

	for _, tx := range txs {
		if err := l.store.AppendTx(tx); err != nil {
			return err
		}
	}

	return nil
}

// BuildRecords derives the block record and the transaction records of one
// height. Execution results are matched to transactions by position; a
// missing result leaves code and gas at zero.
func BuildRecords(payload *chain.BlockPayload, results []chain.ExecResult) (types.BlockRecord, []types.TxRecord) {
	block := types.BlockRecord{
		Height:   payload.Height,
		Hash:     payload.Hash,
		Time:     payload.Time,
		Proposer: payload.Proposer,
		NumTxs:   uint32(len(payload.Txs)), //nolint:gosec
		AppHash:  payload.AppHash,
	}

	txs := make([]types.TxRecord, len(payload.Txs))
	for i, raw := range payload.Txs {
		rec := types.TxRecord{
			Hash:   TxHash(raw),
			Height: payload.Height,
			Index:  uint32(i), //nolint:gosec
		}

		if i < len(results) {
			rec.Code = results[i].Code
			rec.GasWanted = nonNegative(results[i].GasWanted)
			rec.GasUsed = nonNegative(results[i].GasUsed)
		}

		txs[i] = rec
	}

	return block, txs
}

// TxHash returns "0x" followed by the uppercase hex SHA-256 of the raw transaction.
func TxHash(raw []byte) string {
	return fmt.Sprintf("0x%X", cmttypes.Tx(raw).Hash())
}

func nonNegative(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
