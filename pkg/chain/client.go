package chain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrFetch marks a failed node query: transport failure or a malformed response.
	ErrFetch = errors.New("chain fetch failed")

	// ErrNotFound is returned when the node has no block at the requested height.
	ErrNotFound = errors.New("block not found")
)

// BlockIDFlagCommit marks a commit signature of a validator that voted for the block.
const BlockIDFlagCommit = 2

// Client defines the read-only node queries the indexer depends on.
// Every call is a single attempt; failures wrap ErrFetch.
type Client interface {
	// Status returns the chain id and the latest block height known to the node.
	Status(ctx context.Context) (*Status, error)

	// Block returns the block at height, or an error wrapping ErrNotFound.
	Block(ctx context.Context, height uint64) (*BlockPayload, error)

	// BlockResults returns the per-transaction execution results at height.
	BlockResults(ctx context.Context, height uint64) ([]ExecResult, error)

	// Validators returns one page of the validator set at height. Pages start at 1.
	Validators(ctx context.Context, height uint64, page, perPage int) (*ValidatorPage, error)

	// GenesisAppState returns the raw app_state of the genesis document.
	GenesisAppState(ctx context.Context) (json.RawMessage, error)
}

// Status is the subset of node status used by the indexer.
type Status struct {
	ChainID      string
	LatestHeight uint64
}

// BlockPayload is a block as returned by the node.
type BlockPayload struct {
	Height     uint64
	Hash       string
	Time       time.Time
	Proposer   string
	AppHash    string
	Txs        [][]byte
	LastCommit []CommitSig
}

// CommitSig is one entry of the previous block's commit.
type CommitSig struct {
	Flag             int
	ValidatorAddress string
}

// Signed reports whether the validator voted for the block.
func (c CommitSig) Signed() bool {
	return c.Flag == BlockIDFlagCommit
}

// ExecResult is the execution outcome of one transaction.
type ExecResult struct {
	Code      uint32
	GasWanted int64
	GasUsed   int64
}

// Validator is one member of the validator set.
type Validator struct {
	Address          string
	VotingPower      int64
	ProposerPriority int64
}

// ValidatorPage is one page of the validator set.
type ValidatorPage struct {
	Validators []Validator
	Count      int
	Total      int
}
