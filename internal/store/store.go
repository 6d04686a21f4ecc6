package store

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sync"
	"time"

	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/types"
	"github.com/ynxchain/ynx-indexer/pkg/config"
)

// ErrPersistence marks a failed write to the record logs or the checkpoint.
// The process cannot continue safely after it.
var ErrPersistence = errors.New("persistence failure")

const (
	blocksLogName = "blocks"
	txsLogName    = "txs"
)

// Store is the durable log store: two append-only record logs plus the
// checkpoint that tells how much of them is committed.
//
// Append and Commit must be called from a single goroutine. State and the
// Scan iterators are safe for concurrent use.
type Store struct {
	log        *logger.Logger
	syncWrites bool

	blocks     *recordLog[types.BlockRecord]
	txs        *recordLog[types.TxRecord]
	checkpoint *Checkpoint

	mu    sync.RWMutex
	state types.IndexerState
}

// Open opens or creates the store under cfg.DataDir. Records appended after
// the last checkpoint are discarded.
func Open(cfg config.IndexerConfig, log *logger.Logger) (*Store, error) {
	log = log.WithComponent(common.ComponentLogStore)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	checkpoint, err := OpenCheckpoint(cfg.CheckpointPath(), cfg.DB, log)
	if err != nil {
		return nil, err
	}

	state, err := checkpoint.Load()
	if err != nil {
		checkpoint.Close()
		return nil, err
	}

	blocks, err := openRecordLog[types.BlockRecord](blocksLogName, cfg.BlocksLogPath(), state.BlocksOffset, log)
	if err != nil {
		checkpoint.Close()
		return nil, err
	}

	txs, err := openRecordLog[types.TxRecord](txsLogName, cfg.TxsLogPath(), state.TxsOffset, log)
	if err != nil {
		blocks.Close()
		checkpoint.Close()
		return nil, err
	}

	log.Infow("store opened",
		"data_dir", cfg.DataDir,
		"last_height", state.LastHeight,
		"blocks_indexed", state.BlocksIndexed,
		"txs_indexed", state.TxsIndexed,
	)

	return &Store{
		log:        log,
		syncWrites: cfg.ShouldSyncWrites(),
		blocks:     blocks,
		txs:        txs,
		checkpoint: checkpoint,
		state:      state,
	}, nil
}

// State returns the last committed checkpoint.
func (s *Store) State() types.IndexerState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// AppendBlock adds a block record to the blocks log.
func (s *Store) AppendBlock(record types.BlockRecord) error {
	if err := s.blocks.Append(record); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// AppendTx adds a transaction record to the txs log.
func (s *Store) AppendTx(record types.TxRecord) error {
	if err := s.txs.Append(record); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Commit makes the records appended since the previous commit durable and
// records height as fully ingested, adding the given counts. On failure the
// appended records are dropped and the previous checkpoint stays in effect.
func (s *Store) Commit(height, blocks, txs uint64) (types.IndexerState, error) {
	start := time.Now()
	defer func() { commitDuration.Observe(time.Since(start).Seconds()) }()

	prev := s.State()

	next, err := s.persist(prev, height, blocks, txs)
	if err != nil {
		if rbErr := s.rollback(); rbErr != nil {
			s.log.Errorw("failed to roll back record logs", "error", rbErr)
		}
		return prev, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	bytesWritten.WithLabelValues(blocksLogName).Add(float64(next.BlocksOffset - prev.BlocksOffset))
	bytesWritten.WithLabelValues(txsLogName).Add(float64(next.TxsOffset - prev.TxsOffset))

	s.blocks.Publish(next.BlocksOffset)
	s.txs.Publish(next.TxsOffset)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	return next, nil
}

func (s *Store) persist(prev types.IndexerState, height, blocks, txs uint64) (types.IndexerState, error) {
	blocksOffset, err := s.blocks.Flush(s.syncWrites)
	if err != nil {
		return prev, err
	}

	txsOffset, err := s.txs.Flush(s.syncWrites)
	if err != nil {
		return prev, err
	}

	next := types.IndexerState{
		ID:            1,
		LastHeight:    height,
		BlocksIndexed: prev.BlocksIndexed + blocks,
		TxsIndexed:    prev.TxsIndexed + txs,
		BlocksOffset:  blocksOffset,
		TxsOffset:     txsOffset,
		UpdatedAt:     time.Now().Unix(),
	}

	if err := s.checkpoint.Save(next); err != nil {
		return prev, err
	}

	return next, nil
}

// Rollback drops records appended since the last commit.
func (s *Store) Rollback() error {
	if err := s.rollback(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *Store) rollback() error {
	return errors.Join(s.blocks.Rollback(), s.txs.Rollback())
}

// ScanBlocks iterates committed block records in height order.
func (s *Store) ScanBlocks() iter.Seq2[types.BlockRecord, error] {
	return s.blocks.Scan()
}

// ScanTxs iterates committed transaction records in height, then index order.
func (s *Store) ScanTxs() iter.Seq2[types.TxRecord, error] {
	return s.txs.Scan()
}

// Close releases the record logs and the checkpoint database.
func (s *Store) Close() error {
	return errors.Join(s.blocks.Close(), s.txs.Close(), s.checkpoint.Close())
}
