package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ynxchain/ynx-indexer/internal/cache"
	chainmocks "github.com/ynxchain/ynx-indexer/internal/chain/mocks"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/store"
	"github.com/ynxchain/ynx-indexer/internal/types"
	"github.com/ynxchain/ynx-indexer/pkg/chain"
	"github.com/ynxchain/ynx-indexer/pkg/config"
)

// fakeChain serves blocks from memory and fails heights listed in down.
type fakeChain struct {
	mu     sync.Mutex
	latest uint64
	txs    map[uint64][][]byte
	down   map[uint64]bool
}

func newFakeChain(latest uint64) *fakeChain {
	return &fakeChain{latest: latest, txs: map[uint64][][]byte{}, down: map[uint64]bool{}}
}

func (f *fakeChain) set(fn func(f *fakeChain)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeChain) wire(m *chainmocks.Client) {
	m.EXPECT().Status(mock.Anything).RunAndReturn(func(context.Context) (*chain.Status, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		return &chain.Status{ChainID: "ynx_9002-1", LatestHeight: f.latest}, nil
	}).Maybe()

	m.EXPECT().Block(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, h uint64) (*chain.BlockPayload, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.down[h] {
			return nil, fmt.Errorf("%w: block: connection refused", chain.ErrFetch)
		}
		return &chain.BlockPayload{
			Height:   h,
			Hash:     fmt.Sprintf("BLOCK%d", h),
			Time:     time.Unix(int64(1_700_000_000+h), 0).UTC(), //nolint:gosec
			Proposer: "PROPOSER",
			AppHash:  "APPHASH",
			Txs:      f.txs[h],
		}, nil
	}).Maybe()

	m.EXPECT().BlockResults(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, h uint64) ([]chain.ExecResult, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		results := make([]chain.ExecResult, len(f.txs[h]))
		for i := range results {
			results[i] = chain.ExecResult{Code: 0, GasWanted: 21000, GasUsed: 21000}
		}
		return results, nil
	}).Maybe()
}

type fakeGovernance struct {
	mu     sync.Mutex
	loaded bool
	calls  int
	err    error
}

func (g *fakeGovernance) Loaded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loaded
}

func (g *fakeGovernance) Load(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return g.err
	}
	g.loaded = true
	return nil
}

type fixture struct {
	chain *fakeChain
	store *store.Store
	cache *cache.Cache
	gov   *fakeGovernance
	loop  *Loop
}

func newFixture(t *testing.T, cfg Config, fc *fakeChain) *fixture {
	t.Helper()

	client := chainmocks.NewClient(t)
	fc.wire(client)

	icfg := config.IndexerConfig{DataDir: t.TempDir()}
	icfg.ApplyDefaults()

	st, err := store.Open(icfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	c, err := cache.New(500, 2000, logger.NewNopLogger())
	require.NoError(t, err)

	gov := &fakeGovernance{}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}

	return &fixture{
		chain: fc,
		store: st,
		cache: c,
		gov:   gov,
		loop:  New(cfg, client, st, c, gov, logger.NewNopLogger()),
	}
}

func TestTick_IngestsFromStartHeight(t *testing.T) {
	t.Parallel()

	fc := newFakeChain(103)
	fc.txs[101] = [][]byte{[]byte("tx-a"), []byte("tx-b")}

	f := newFixture(t, Config{StartHeight: 100}, fc)
	require.NoError(t, f.loop.Tick(context.Background()))

	state := f.store.State()
	require.Equal(t, uint64(103), state.LastHeight)
	require.Equal(t, uint64(4), state.BlocksIndexed)
	require.Equal(t, uint64(2), state.TxsIndexed)
	require.Equal(t, "ynx_9002-1", f.loop.ChainID())
	require.Equal(t, uint64(103), f.loop.LatestSeen())

	blocks := f.cache.Blocks()
	require.Len(t, blocks, 4)
	for i, b := range blocks {
		require.Equal(t, uint64(100+i), b.Height) //nolint:gosec
	}
	require.Equal(t, uint32(2), blocks[1].NumTxs)

	txs := f.cache.Txs()
	require.Len(t, txs, 2)
	require.Equal(t, TxHash([]byte("tx-a")), txs[0].Hash)
	require.Equal(t, uint32(0), txs[0].Index)
	require.Equal(t, uint32(1), txs[1].Index)
	require.Equal(t, uint64(101), txs[1].Height)

	var scanned []types.BlockRecord
	for b, err := range f.store.ScanBlocks() {
		require.NoError(t, err)
		scanned = append(scanned, b)
	}
	require.Equal(t, blocks, scanned)
}

func TestTick_OutageStopsAtLastGoodHeight(t *testing.T) {
	t.Parallel()

	fc := newFakeChain(103)
	f := newFixture(t, Config{StartHeight: 100}, fc)
	require.NoError(t, f.loop.Tick(context.Background()))

	fc.set(func(fc *fakeChain) {
		fc.latest = 105
		fc.down[105] = true
	})

	err := f.loop.Tick(context.Background())
	require.ErrorIs(t, err, chain.ErrFetch)
	require.NotErrorIs(t, err, store.ErrPersistence)
	require.Equal(t, uint64(104), f.store.State().LastHeight)
	require.Equal(t, uint64(5), f.store.State().BlocksIndexed)

	fc.set(func(fc *fakeChain) { delete(fc.down, 105) })

	require.NoError(t, f.loop.Tick(context.Background()))
	require.Equal(t, uint64(105), f.store.State().LastHeight)
	require.Equal(t, uint64(6), f.store.State().BlocksIndexed)

	_, ok := f.cache.BlockByHeight(105)
	require.True(t, ok)
}

func TestTick_Seeding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         Config
		latest      uint64
		firstHeight uint64
		blocks      uint64
	}{
		{name: "start height", cfg: Config{StartHeight: 40, Backfill: 5}, latest: 50, firstHeight: 40, blocks: 11},
		{name: "backfill", cfg: Config{Backfill: 3}, latest: 50, firstHeight: 48, blocks: 3},
		{name: "backfill beyond genesis", cfg: Config{Backfill: 100}, latest: 5, firstHeight: 1, blocks: 5},
		{name: "head only", cfg: Config{}, latest: 50, blocks: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.cfg, newFakeChain(tt.latest))
			require.NoError(t, f.loop.Tick(context.Background()))

			state := f.store.State()
			require.Equal(t, tt.latest, state.LastHeight)
			require.Equal(t, tt.blocks, state.BlocksIndexed)

			blocks := f.cache.Blocks()
			require.Len(t, blocks, int(tt.blocks)) //nolint:gosec
			if tt.blocks > 0 {
				require.Equal(t, tt.firstHeight, blocks[0].Height)
			}
		})
	}
}

func TestTick_ResumesFromCheckpoint(t *testing.T) {
	t.Parallel()

	fc := newFakeChain(10)
	f := newFixture(t, Config{StartHeight: 8}, fc)
	require.NoError(t, f.loop.Tick(context.Background()))
	require.Equal(t, uint64(3), f.store.State().BlocksIndexed)

	// a checkpoint is present, so start height no longer applies
	f.loop.cfg.StartHeight = 1
	fc.set(func(fc *fakeChain) { fc.latest = 12 })

	require.NoError(t, f.loop.Tick(context.Background()))
	require.Equal(t, uint64(12), f.store.State().LastHeight)
	require.Equal(t, uint64(5), f.store.State().BlocksIndexed)
}

func TestTick_RejectsConcurrentTick(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})

	client := chainmocks.NewClient(t)
	client.EXPECT().Status(mock.Anything).RunAndReturn(func(context.Context) (*chain.Status, error) {
		close(entered)
		<-release
		return &chain.Status{ChainID: "ynx_9002-1", LatestHeight: 0}, nil
	}).Once()

	st := &stubStore{}
	loop := New(Config{PollInterval: time.Second}, client, st, &stubCache{}, &fakeGovernance{}, nil)

	done := make(chan error, 1)
	go func() { done <- loop.Tick(context.Background()) }()

	<-entered
	require.ErrorIs(t, loop.Tick(context.Background()), ErrTickInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestTick_GovernanceLoadedLazily(t *testing.T) {
	t.Parallel()

	fc := newFakeChain(0)
	f := newFixture(t, Config{}, fc)
	f.gov.err = errors.New("genesis unavailable")

	require.NoError(t, f.loop.Tick(context.Background()))
	require.Equal(t, 0, f.gov.calls, "no load attempt before the chain has blocks")

	fc.set(func(fc *fakeChain) { fc.latest = 2 })
	require.NoError(t, f.loop.Tick(context.Background()))
	require.Equal(t, 1, f.gov.calls)
	require.False(t, f.gov.Loaded())

	f.gov.mu.Lock()
	f.gov.err = nil
	f.gov.mu.Unlock()

	require.NoError(t, f.loop.Tick(context.Background()))
	require.True(t, f.gov.Loaded())

	require.NoError(t, f.loop.Tick(context.Background()))
	require.Equal(t, 2, f.gov.calls)
}

func TestRun_StopsOnPersistenceFailure(t *testing.T) {
	t.Parallel()

	client := chainmocks.NewClient(t)
	client.EXPECT().Status(mock.Anything).Return(&chain.Status{ChainID: "ynx_9002-1", LatestHeight: 3}, nil)

	st := &stubStore{commitErr: fmt.Errorf("%w: disk full", store.ErrPersistence)}
	loop := New(Config{PollInterval: time.Millisecond}, client, st, &stubCache{}, &fakeGovernance{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := loop.Run(ctx)
	require.ErrorIs(t, err, store.ErrPersistence)
	require.Equal(t, uint64(0), st.State().LastHeight)
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	fc := newFakeChain(5)
	f := newFixture(t, Config{Backfill: 2}, fc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.loop.Run(ctx) }()

	require.Eventually(t, func() bool {
		return f.store.State().LastHeight == 5
	}, 5*time.Second, 5*time.Millisecond)

	fc.set(func(fc *fakeChain) { fc.latest = 7 })
	require.Eventually(t, func() bool {
		return f.store.State().LastHeight == 7
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.Equal(t, uint64(4), f.store.State().BlocksIndexed)
}

func TestBuildRecords(t *testing.T) {
	t.Parallel()

	payload := &chain.BlockPayload{
		Height:   7,
		Hash:     "ABC",
		Time:     time.Unix(1_700_000_000, 0).UTC(),
		Proposer: "PROP",
		AppHash:  "APP",
		Txs:      [][]byte{[]byte("one"), []byte("two"), []byte("three")},
	}
	results := []chain.ExecResult{
		{Code: 0, GasWanted: 100, GasUsed: 80},
		{Code: 5, GasWanted: -1, GasUsed: -20},
	}

	block, txs := BuildRecords(payload, results)
	require.Equal(t, uint64(7), block.Height)
	require.Equal(t, uint32(3), block.NumTxs)
	require.Equal(t, "APP", block.AppHash)
	require.Len(t, txs, 3)

	require.Equal(t, types.TxRecord{Hash: TxHash([]byte("one")), Height: 7, Index: 0, GasWanted: 100, GasUsed: 80}, txs[0])
	require.Equal(t, types.TxRecord{Hash: TxHash([]byte("two")), Height: 7, Index: 1, Code: 5}, txs[1])
	require.Equal(t, types.TxRecord{Hash: TxHash([]byte("three")), Height: 7, Index: 2}, txs[2])
}

func TestTxHash(t *testing.T) {
	t.Parallel()

	// sha256("abc")
	require.Equal(t,
		"0xBA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD",
		TxHash([]byte("abc")),
	)
}

type stubStore struct {
	mu        sync.Mutex
	state     types.IndexerState
	commitErr error
}

func (s *stubStore) State() types.IndexerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *stubStore) AppendBlock(types.BlockRecord) error { return nil }
func (s *stubStore) AppendTx(types.TxRecord) error       { return nil }
func (s *stubStore) Rollback() error                     { return nil }

func (s *stubStore) Commit(height, blocks, txs uint64) (types.IndexerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commitErr != nil {
		return s.state, s.commitErr
	}
	s.state.LastHeight = height
	s.state.BlocksIndexed += blocks
	s.state.TxsIndexed += txs
	return s.state, nil
}

type stubCache struct{}

func (stubCache) PushBlock(types.BlockRecord) {}
func (stubCache) PushTx(types.TxRecord)       {}
