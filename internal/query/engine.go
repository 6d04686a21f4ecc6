package query

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/types"
	"github.com/ynxchain/ynx-indexer/pkg/chain"
	"github.com/ynxchain/ynx-indexer/pkg/config"
)

// ErrNotFound is returned by point lookups when neither the cache nor the log has the record.
var ErrNotFound = errors.New("not found")

const (
	validatorsPerPage     = 100
	maxValidatorPages     = 100
	snapshotSlowThreshold = 2 * time.Second
)

// Cache is the hot read path.
type Cache interface {
	BlockByHeight(height uint64) (types.BlockRecord, bool)
	TxByHash(hash string) (types.TxRecord, bool)
	Blocks() []types.BlockRecord
	Txs() []types.TxRecord
	Sizes() (blocks, txs int)
}

// Store is the cold read path.
type Store interface {
	State() types.IndexerState
	ScanBlocks() iter.Seq2[types.BlockRecord, error]
	ScanTxs() iter.Seq2[types.TxRecord, error]
}

// Head reports what the ingestion loop has learned about the chain.
type Head interface {
	ChainID() string
	LatestSeen() uint64
}

// Governance serves the current governance metadata without network I/O.
type Governance interface {
	Meta() types.GovernanceMeta
}

// Config holds the query limits and the node address reported by health endpoints.
type Config struct {
	RPC          string
	DefaultLimit int
	MaxLimit     int
}

// Engine answers list, point and summary queries. It only reads and is safe
// for concurrent use.
type Engine struct {
	cfg    Config
	cache  Cache
	store  Store
	head   Head
	gov    Governance
	client chain.Client
	log    *logger.Logger
}

// New creates a query engine.
func New(cfg Config, cache Cache, st Store, head Head, gov Governance, client chain.Client, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if cfg.MaxLimit <= 0 || cfg.MaxLimit > config.MaxAPILimit {
		cfg.MaxLimit = config.MaxAPILimit
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = config.DefaultAPILimit
	}
	cfg.DefaultLimit = min(cfg.DefaultLimit, cfg.MaxLimit)

	return &Engine{
		cfg:    cfg,
		cache:  cache,
		store:  st,
		head:   head,
		gov:    gov,
		client: client,
		log:    log.WithComponent(common.ComponentQuery),
	}
}

// Limit normalizes a requested page size: non-positive means the default,
// anything above the maximum is capped.
func (e *Engine) Limit(requested int) int {
	if requested <= 0 {
		return e.cfg.DefaultLimit
	}
	return min(requested, e.cfg.MaxLimit)
}

// ListBlocks returns up to limit of the most recent cached blocks, newest
// first. A non-zero before keeps only heights strictly below it.
func (e *Engine) ListBlocks(limit int, before uint64) []types.BlockRecord {
	blocks := e.cache.Blocks()
	if before > 0 {
		blocks = slices.DeleteFunc(blocks, func(b types.BlockRecord) bool { return b.Height >= before })
	}

	return newestFirst(blocks, e.Limit(limit))
}

// ListTxs returns up to limit of the most recent cached transactions, newest
// first. A non-zero height keeps only transactions of that block.
func (e *Engine) ListTxs(limit int, height uint64) []types.TxRecord {
	txs := e.cache.Txs()
	if height > 0 {
		txs = slices.DeleteFunc(txs, func(t types.TxRecord) bool { return t.Height != height })
	}

	return newestFirst(txs, e.Limit(limit))
}

// newestFirst takes the last n items of an oldest-first slice and reverses them.
func newestFirst[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[len(items)-n:]
	}

	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

// BlockByHeight looks the block up in the cache and falls back to scanning the blocks log.
func (e *Engine) BlockByHeight(ctx context.Context, height uint64) (types.BlockRecord, error) {
	if b, ok := e.cache.BlockByHeight(height); ok {
		return b, nil
	}

	if height > e.store.State().LastHeight {
		return types.BlockRecord{}, ErrNotFound
	}

	for b, err := range e.store.ScanBlocks() {
		if err != nil {
			return types.BlockRecord{}, fmt.Errorf("failed to scan blocks: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return types.BlockRecord{}, err
		}

		switch {
		case b.Height == height:
			return b, nil
		case b.Height > height:
			return types.BlockRecord{}, ErrNotFound
		}
	}

	return types.BlockRecord{}, ErrNotFound
}

// TxByHash looks the transaction up in the cache and falls back to scanning
// the txs log. The hash is matched ignoring case and the 0x prefix. When the
// same hash was included more than once, the latest inclusion wins.
func (e *Engine) TxByHash(ctx context.Context, hash string) (types.TxRecord, error) {
	key := common.NormalizeHash(hash)
	if key == "0x" {
		return types.TxRecord{}, ErrNotFound
	}

	if tx, ok := e.cache.TxByHash(key); ok {
		return tx, nil
	}

	var (
		found types.TxRecord
		ok    bool
	)
	for tx, err := range e.store.ScanTxs() {
		if err != nil {
			return types.TxRecord{}, fmt.Errorf("failed to scan txs: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return types.TxRecord{}, err
		}

		if common.NormalizeHash(tx.Hash) == key {
			found, ok = tx, true
		}
	}

	if !ok {
		return types.TxRecord{}, ErrNotFound
	}
	return found, nil
}

// ValidatorSnapshot fetches the validator set at the current chain head and
// marks which validators signed the head block's last commit. Rows are sorted
// by descending voting power; equal powers keep the node's order.
func (e *Engine) ValidatorSnapshot(ctx context.Context) (types.ValidatorSnapshot, error) {
	start := time.Now()

	status, err := e.client.Status(ctx)
	if err != nil {
		return types.ValidatorSnapshot{}, err
	}

	latest := status.LatestHeight
	if latest == 0 {
		return types.ValidatorSnapshot{Validators: []types.ValidatorRow{}}, nil
	}

	validators, err := e.fetchValidators(ctx, latest)
	if err != nil {
		return types.ValidatorSnapshot{}, err
	}

	block, err := e.client.Block(ctx, latest)
	if err != nil {
		return types.ValidatorSnapshot{}, err
	}

	signed := make(map[string]struct{}, len(block.LastCommit))
	for _, sig := range block.LastCommit {
		if sig.Signed() && sig.ValidatorAddress != "" {
			signed[sig.ValidatorAddress] = struct{}{}
		}
	}

	snapshot := types.ValidatorSnapshot{
		LatestHeight: latest,
		Total:        len(validators),
		Validators:   make([]types.ValidatorRow, 0, len(validators)),
	}

	for _, v := range validators {
		_, ok := signed[v.Address]
		if ok {
			snapshot.SignedCount++
		}

		snapshot.Validators = append(snapshot.Validators, types.ValidatorRow{
			Address:          v.Address,
			VotingPower:      v.VotingPower,
			ProposerPriority: v.ProposerPriority,
			SignedLastBlock:  ok,
		})
	}

	slices.SortStableFunc(snapshot.Validators, func(a, b types.ValidatorRow) int {
		switch {
		case a.VotingPower > b.VotingPower:
			return -1
		case a.VotingPower < b.VotingPower:
			return 1
		default:
			return 0
		}
	})

	if elapsed := time.Since(start); elapsed > snapshotSlowThreshold {
		e.log.Warnw("slow validator snapshot", "height", latest, "validators", snapshot.Total, "duration", elapsed.String())
	}

	return snapshot, nil
}

// fetchValidators pages through the validator set until the reported total
// is reached, an empty page is returned or the page cap is hit.
func (e *Engine) fetchValidators(ctx context.Context, height uint64) ([]chain.Validator, error) {
	var validators []chain.Validator

	for page := 1; page <= maxValidatorPages; page++ {
		res, err := e.client.Validators(ctx, height, page, validatorsPerPage)
		if err != nil {
			return nil, err
		}

		validators = append(validators, res.Validators...)

		total := res.Total
		if total <= 0 {
			total = len(res.Validators)
		}

		if len(res.Validators) == 0 || len(validators) >= total {
			return validators, nil
		}

		if page == maxValidatorPages {
			e.log.Warnw("validator paging stopped at page cap",
				"height", height, "fetched", len(validators), "reported_total", total)
		}
	}

	return validators, nil
}

// Health reports ingestion progress.
func (e *Engine) Health() Health {
	return Health{
		ChainID:     e.head.ChainID(),
		RPC:         e.cfg.RPC,
		LastIndexed: e.store.State().LastHeight,
		LatestSeen:  e.head.LatestSeen(),
	}
}

// Stats reports ingestion progress, cumulative counts and cache occupancy.
func (e *Engine) Stats() Stats {
	state := e.store.State()
	blocks, txs := e.cache.Sizes()

	return Stats{
		Health: Health{
			ChainID:     e.head.ChainID(),
			RPC:         e.cfg.RPC,
			LastIndexed: state.LastHeight,
			LatestSeen:  e.head.LatestSeen(),
		},
		BlocksIndexed: state.BlocksIndexed,
		TxsIndexed:    state.TxsIndexed,
		CacheBlocks:   blocks,
		CacheTxs:      txs,
	}
}

// Overview returns the governance metadata together with the chain's
// positioning. It never touches the network.
func (e *Engine) Overview() Overview {
	return Overview{
		Health:           e.Health(),
		Governance:       e.gov.Meta(),
		ValueProposition: valueProposition,
		Positioning: Positioning{
			Statement:    positioningStatement,
			TargetUsers:  slices.Clone(targetUsers),
			WhyChooseYNX: slices.Clone(whyChooseYNX),
		},
	}
}
