package chain

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cometbft/cometbft/p2p"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/require"
	pkgchain "github.com/ynxchain/ynx-indexer/pkg/chain"
)

type fakeNode struct {
	status     *ctypes.ResultStatus
	block      *ctypes.ResultBlock
	results    *ctypes.ResultBlockResults
	validators map[int]*ctypes.ResultValidators
	genesis    *ctypes.ResultGenesis
	chunks     []*ctypes.ResultGenesisChunk
	err        error
	genesisErr error

	gotHeight  int64
	gotPage    int
	gotPerPage int
}

func (f *fakeNode) Status(context.Context) (*ctypes.ResultStatus, error) {
	return f.status, f.err
}

func (f *fakeNode) Block(_ context.Context, height *int64) (*ctypes.ResultBlock, error) {
	f.gotHeight = *height
	return f.block, f.err
}

func (f *fakeNode) BlockResults(_ context.Context, height *int64) (*ctypes.ResultBlockResults, error) {
	f.gotHeight = *height
	return f.results, f.err
}

func (f *fakeNode) Validators(_ context.Context, height *int64, page, perPage *int) (*ctypes.ResultValidators, error) {
	f.gotHeight, f.gotPage, f.gotPerPage = *height, *page, *perPage
	return f.validators[*page], f.err
}

func (f *fakeNode) Genesis(context.Context) (*ctypes.ResultGenesis, error) {
	return f.genesis, f.genesisErr
}

func (f *fakeNode) GenesisChunked(_ context.Context, id uint) (*ctypes.ResultGenesisChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks[id], nil
}

func TestClient_Status(t *testing.T) {
	t.Parallel()

	node := &fakeNode{status: &ctypes.ResultStatus{
		NodeInfo: p2p.DefaultNodeInfo{Network: "ynx_9102-1"},
		SyncInfo: ctypes.SyncInfo{LatestBlockHeight: 1234},
	}}
	c := newClient(node, "http://node:26657", nil)

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ynx_9102-1", status.ChainID)
	require.Equal(t, uint64(1234), status.LatestHeight)
}

func TestClient_TransportErrorWrapsErrFetch(t *testing.T) {
	t.Parallel()

	c := newClient(&fakeNode{err: errors.New("connection refused")}, "http://node:26657", nil)

	_, err := c.Status(context.Background())
	require.ErrorIs(t, err, pkgchain.ErrFetch)
	require.ErrorContains(t, err, "connection refused")

	_, err = c.BlockResults(context.Background(), 5)
	require.ErrorIs(t, err, pkgchain.ErrFetch)

	_, err = c.Validators(context.Background(), 5, 1, 100)
	require.ErrorIs(t, err, pkgchain.ErrFetch)
}

func TestClient_Block(t *testing.T) {
	t.Parallel()

	blockTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	txs := types.Txs{types.Tx("first"), types.Tx("second")}

	node := &fakeNode{block: &ctypes.ResultBlock{
		BlockID: types.BlockID{Hash: []byte{0xAB, 0xCD}},
		Block: &types.Block{
			Header: types.Header{
				Height:          101,
				Time:            blockTime,
				ProposerAddress: []byte{0x01, 0x02},
				AppHash:         []byte{0xFF},
			},
			Data: types.Data{Txs: txs},
			LastCommit: &types.Commit{Signatures: []types.CommitSig{
				{BlockIDFlag: types.BlockIDFlagCommit, ValidatorAddress: []byte{0x0A}},
				{BlockIDFlag: types.BlockIDFlagAbsent},
				{BlockIDFlag: types.BlockIDFlagNil, ValidatorAddress: []byte{0x0B}},
			}},
		},
	}}
	c := newClient(node, "", nil)

	block, err := c.Block(context.Background(), 101)
	require.NoError(t, err)
	require.Equal(t, int64(101), node.gotHeight)

	require.Equal(t, uint64(101), block.Height)
	require.Equal(t, "ABCD", block.Hash)
	require.Equal(t, "0102", block.Proposer)
	require.Equal(t, "FF", block.AppHash)
	require.True(t, block.Time.Equal(blockTime))
	require.Equal(t, [][]byte{[]byte("first"), []byte("second")}, block.Txs)

	require.Len(t, block.LastCommit, 3)
	require.True(t, block.LastCommit[0].Signed())
	require.Equal(t, "0A", block.LastCommit[0].ValidatorAddress)
	require.False(t, block.LastCommit[1].Signed())
	require.False(t, block.LastCommit[2].Signed())
}

func TestClient_BlockNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *fakeNode
	}{
		{name: "nil block", node: &fakeNode{block: &ctypes.ResultBlock{}}},
		{
			name: "above head",
			node: &fakeNode{err: errors.New("height 500 must be less than or equal to the current blockchain height 400")},
		},
		{
			name: "pruned",
			node: &fakeNode{err: errors.New("height 1 is not available, lowest height is 100")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newClient(tt.node, "", nil).Block(context.Background(), 500)
			require.ErrorIs(t, err, pkgchain.ErrNotFound)
			require.NotErrorIs(t, err, pkgchain.ErrFetch)
		})
	}
}

func TestClient_BlockResults(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: &ctypes.ResultBlockResults{
		TxsResults: []*abci.ExecTxResult{
			{Code: 0, GasWanted: 200_000, GasUsed: 150_000},
			nil,
			{Code: 5, GasWanted: 90_000, GasUsed: 21_000},
		},
	}}

	results, err := newClient(node, "", nil).BlockResults(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, []pkgchain.ExecResult{
		{Code: 0, GasWanted: 200_000, GasUsed: 150_000},
		{},
		{Code: 5, GasWanted: 90_000, GasUsed: 21_000},
	}, results)
}

func TestClient_Validators(t *testing.T) {
	t.Parallel()

	node := &fakeNode{validators: map[int]*ctypes.ResultValidators{
		2: {
			Validators: []*types.Validator{
				{Address: []byte{0x01}, VotingPower: 10, ProposerPriority: -5},
				{Address: []byte{0x02}, VotingPower: 20, ProposerPriority: 5},
			},
			Count: 2,
			Total: 102,
		},
	}}

	page, err := newClient(node, "", nil).Validators(context.Background(), 42, 2, 100)
	require.NoError(t, err)
	require.Equal(t, int64(42), node.gotHeight)
	require.Equal(t, 2, node.gotPage)
	require.Equal(t, 100, node.gotPerPage)

	require.Equal(t, 102, page.Total)
	require.Equal(t, 2, page.Count)
	require.Equal(t, []pkgchain.Validator{
		{Address: "01", VotingPower: 10, ProposerPriority: -5},
		{Address: "02", VotingPower: 20, ProposerPriority: 5},
	}, page.Validators)
}

func TestClient_GenesisAppState(t *testing.T) {
	t.Parallel()

	node := &fakeNode{genesis: &ctypes.ResultGenesis{
		Genesis: &types.GenesisDoc{AppState: []byte(`{"ynx":{"params":{"fee_burn_bps":4000}}}`)},
	}}

	appState, err := newClient(node, "", nil).GenesisAppState(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"ynx":{"params":{"fee_burn_bps":4000}}}`, string(appState))
}

func TestClient_GenesisAppStateChunked(t *testing.T) {
	t.Parallel()

	doc := `{"chain_id":"ynx_9102-1","app_state":{"feemarket":{"params":{"no_base_fee":true}}}}`
	half := len(doc) / 2

	node := &fakeNode{
		genesisErr: errors.New("genesis response is large, please use the genesis_chunked API instead"),
		chunks: []*ctypes.ResultGenesisChunk{
			{ChunkNumber: 0, TotalChunks: 2, Data: base64.StdEncoding.EncodeToString([]byte(doc[:half]))},
			{ChunkNumber: 1, TotalChunks: 2, Data: base64.StdEncoding.EncodeToString([]byte(doc[half:]))},
		},
	}

	appState, err := newClient(node, "", nil).GenesisAppState(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"feemarket":{"params":{"no_base_fee":true}}}`, string(appState))
}

func TestClient_GenesisAppStateErrors(t *testing.T) {
	t.Parallel()

	c := newClient(&fakeNode{genesisErr: errors.New("timeout")}, "", nil)
	_, err := c.GenesisAppState(context.Background())
	require.ErrorIs(t, err, pkgchain.ErrFetch)

	c = newClient(&fakeNode{
		genesisErr: errors.New("use genesis_chunked"),
		chunks:     []*ctypes.ResultGenesisChunk{{TotalChunks: 1, Data: "!!not base64!!"}},
	}, "", nil)
	_, err = c.GenesisAppState(context.Background())
	require.ErrorIs(t, err, pkgchain.ErrFetch)
	require.ErrorContains(t, err, "malformed")
}
