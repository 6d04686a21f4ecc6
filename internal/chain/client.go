package chain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	jsonrpcclient "github.com/cometbft/cometbft/rpc/jsonrpc/client"
	"github.com/cometbft/cometbft/types"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	pkgchain "github.com/ynxchain/ynx-indexer/pkg/chain"
)

// Compile-time check to ensure Client implements pkgchain.Client interface.
var _ pkgchain.Client = (*Client)(nil)

const (
	methodStatus         = "status"
	methodBlock          = "block"
	methodBlockResults   = "block_results"
	methodValidators     = "validators"
	methodGenesis        = "genesis"
	methodGenesisChunked = "genesis_chunked"

	errTypeTransport = "transport"
	errTypeMalformed = "malformed"
	errTypeNotFound  = "not_found"

	// maxGenesisChunks bounds the chunked genesis download
	maxGenesisChunks = 10_000
)

// rpcNode is the subset of the CometBFT RPC client used by Client.
type rpcNode interface {
	Status(ctx context.Context) (*ctypes.ResultStatus, error)
	Block(ctx context.Context, height *int64) (*ctypes.ResultBlock, error)
	BlockResults(ctx context.Context, height *int64) (*ctypes.ResultBlockResults, error)
	Validators(ctx context.Context, height *int64, page, perPage *int) (*ctypes.ResultValidators, error)
	Genesis(ctx context.Context) (*ctypes.ResultGenesis, error)
	GenesisChunked(ctx context.Context, id uint) (*ctypes.ResultGenesisChunk, error)
}

// Client queries a CometBFT node over its HTTP RPC.
// It implements the pkgchain.Client interface.
type Client struct {
	node   rpcNode
	remote string
	log    *logger.Logger
}

// NewClient creates a client for the node RPC at remote (http, https, tcp or unix URL).
// timeout bounds every request at the transport level; zero disables it.
func NewClient(remote string, timeout time.Duration, log *logger.Logger) (*Client, error) {
	httpClient, err := jsonrpcclient.DefaultHTTPClient(remote)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client for %s: %w", remote, err)
	}
	httpClient.Timeout = timeout

	node, err := rpchttp.NewWithClient(remote, "/websocket", httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc client for %s: %w", remote, err)
	}

	return newClient(node, remote, log), nil
}

func newClient(node rpcNode, remote string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{node: node, remote: remote, log: log}
}

// Remote returns the RPC endpoint this client talks to.
func (c *Client) Remote() string {
	return c.remote
}

// observe records request metrics for one call and returns a function that
// completes the measurement.
func observe(method string) func() {
	RPCMethodInc(method)
	start := time.Now()
	return func() {
		RPCMethodDuration(method, time.Since(start))
	}
}

func (c *Client) transportError(method string, err error) error {
	RPCMethodError(method, errTypeTransport)
	c.log.Debugw("rpc call failed", "method", method, "error", err)
	return fmt.Errorf("%w: %s: %w", pkgchain.ErrFetch, method, err)
}

func malformed(method, format string, args ...any) error {
	RPCMethodError(method, errTypeMalformed)
	return fmt.Errorf("%w: %s: malformed response: %s", pkgchain.ErrFetch, method, fmt.Sprintf(format, args...))
}

func heightArg(height uint64) *int64 {
	h := int64(height) //nolint:gosec
	return &h
}

// Status implements pkgchain.Client.
func (c *Client) Status(ctx context.Context) (*pkgchain.Status, error) {
	defer observe(methodStatus)()

	res, err := c.node.Status(ctx)
	if err != nil {
		return nil, c.transportError(methodStatus, err)
	}
	if res == nil || res.SyncInfo.LatestBlockHeight < 0 {
		return nil, malformed(methodStatus, "missing sync info")
	}

	return &pkgchain.Status{
		ChainID:      res.NodeInfo.Network,
		LatestHeight: uint64(res.SyncInfo.LatestBlockHeight),
	}, nil
}

// Block implements pkgchain.Client.
func (c *Client) Block(ctx context.Context, height uint64) (*pkgchain.BlockPayload, error) {
	defer observe(methodBlock)()

	res, err := c.node.Block(ctx, heightArg(height))
	if err != nil {
		if isHeightUnavailable(err) {
			RPCMethodError(methodBlock, errTypeNotFound)
			return nil, fmt.Errorf("%w: height %d: %w", pkgchain.ErrNotFound, height, err)
		}
		return nil, c.transportError(methodBlock, err)
	}
	if res == nil || res.Block == nil {
		RPCMethodError(methodBlock, errTypeNotFound)
		return nil, fmt.Errorf("%w: height %d", pkgchain.ErrNotFound, height)
	}

	return toBlockPayload(res), nil
}

// isHeightUnavailable detects the node's answers for heights above the head or below the pruning base.
func isHeightUnavailable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "must be less than or equal to the current blockchain height") ||
		strings.Contains(msg, "is not available, lowest height is")
}

func toBlockPayload(res *ctypes.ResultBlock) *pkgchain.BlockPayload {
	block := res.Block

	txs := make([][]byte, len(block.Data.Txs))
	for i, tx := range block.Data.Txs {
		txs[i] = tx
	}

	var sigs []pkgchain.CommitSig
	if block.LastCommit != nil {
		sigs = make([]pkgchain.CommitSig, len(block.LastCommit.Signatures))
		for i, sig := range block.LastCommit.Signatures {
			sigs[i] = pkgchain.CommitSig{
				Flag:             int(sig.BlockIDFlag),
				ValidatorAddress: sig.ValidatorAddress.String(),
			}
		}
	}

	return &pkgchain.BlockPayload{
		Height:     uint64(block.Height), //nolint:gosec
		Hash:       res.BlockID.Hash.String(),
		Time:       block.Time,
		Proposer:   block.ProposerAddress.String(),
		AppHash:    block.AppHash.String(),
		Txs:        txs,
		LastCommit: sigs,
	}
}

// BlockResults implements pkgchain.Client.
func (c *Client) BlockResults(ctx context.Context, height uint64) ([]pkgchain.ExecResult, error) {
	defer observe(methodBlockResults)()

	res, err := c.node.BlockResults(ctx, heightArg(height))
	if err != nil {
		return nil, c.transportError(methodBlockResults, err)
	}
	if res == nil {
		return nil, malformed(methodBlockResults, "empty result at height %d", height)
	}

	results := make([]pkgchain.ExecResult, len(res.TxsResults))
	for i, r := range res.TxsResults {
		if r == nil {
			continue
		}
		results[i] = pkgchain.ExecResult{
			Code:      r.Code,
			GasWanted: r.GasWanted,
			GasUsed:   r.GasUsed,
		}
	}

	return results, nil
}

// Validators implements pkgchain.Client.
func (c *Client) Validators(ctx context.Context, height uint64, page, perPage int) (*pkgchain.ValidatorPage, error) {
	defer observe(methodValidators)()

	res, err := c.node.Validators(ctx, heightArg(height), &page, &perPage)
	if err != nil {
		return nil, c.transportError(methodValidators, err)
	}
	if res == nil {
		return nil, malformed(methodValidators, "empty result at height %d", height)
	}

	return &pkgchain.ValidatorPage{
		Validators: toValidators(res.Validators),
		Count:      res.Count,
		Total:      res.Total,
	}, nil
}

func toValidators(vals []*types.Validator) []pkgchain.Validator {
	out := make([]pkgchain.Validator, 0, len(vals))
	for _, v := range vals {
		if v == nil {
			continue
		}
		out = append(out, pkgchain.Validator{
			Address:          v.Address.String(),
			VotingPower:      v.VotingPower,
			ProposerPriority: v.ProposerPriority,
		})
	}
	return out
}

// GenesisAppState implements pkgchain.Client. Large genesis documents are
// fetched through genesis_chunked and reassembled.
func (c *Client) GenesisAppState(ctx context.Context) (json.RawMessage, error) {
	done := observe(methodGenesis)
	res, err := c.node.Genesis(ctx)
	done()

	if err != nil {
		if !strings.Contains(err.Error(), "genesis_chunked") {
			return nil, c.transportError(methodGenesis, err)
		}

		c.log.Debugw("genesis too large, falling back to chunked download", "remote", c.remote)
		return c.chunkedAppState(ctx)
	}
	if res == nil || res.Genesis == nil {
		return nil, malformed(methodGenesis, "missing genesis document")
	}

	return res.Genesis.AppState, nil
}

func (c *Client) chunkedAppState(ctx context.Context) (json.RawMessage, error) {
	var doc []byte

	for id, total := uint(0), uint(1); id < total; id++ {
		chunk, err := c.genesisChunk(ctx, id)
		if err != nil {
			return nil, err
		}

		if chunk.TotalChunks <= 0 || chunk.TotalChunks > maxGenesisChunks {
			return nil, malformed(methodGenesisChunked, "invalid chunk total %d", chunk.TotalChunks)
		}
		total = uint(chunk.TotalChunks)

		data, err := base64.StdEncoding.DecodeString(chunk.Data)
		if err != nil {
			return nil, malformed(methodGenesisChunked, "chunk %d: %v", id, err)
		}
		doc = append(doc, data...)
	}

	var genesis struct {
		AppState json.RawMessage `json:"app_state"`
	}
	if err := json.Unmarshal(doc, &genesis); err != nil {
		return nil, malformed(methodGenesisChunked, "genesis document: %v", err)
	}

	return genesis.AppState, nil
}

func (c *Client) genesisChunk(ctx context.Context, id uint) (*ctypes.ResultGenesisChunk, error) {
	defer observe(methodGenesisChunked)()

	chunk, err := c.node.GenesisChunked(ctx, id)
	if err != nil {
		return nil, c.transportError(methodGenesisChunked, err)
	}
	if chunk == nil {
		return nil, malformed(methodGenesisChunked, "empty chunk %d", id)
	}

	return chunk, nil
}
