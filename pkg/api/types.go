package api

import (
	"github.com/ynxchain/ynx-indexer/internal/query"
	"github.com/ynxchain/ynx-indexer/internal/types"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidHeight         = "invalid_height"
	ErrCodeInvalidHash           = "invalid_hash"
	ErrCodeNotFound              = "not_found"
	ErrCodeMethodNotAllowed      = "method_not_allowed"
	ErrCodeValidatorsFetchFailed = "validators_fetch_failed"
	ErrCodeInternal              = "internal_error"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	OK bool `json:"ok"`
	query.Health
}

// StatsResponse adds cumulative counts and cache sizes to the health check.
type StatsResponse struct {
	OK bool `json:"ok"`
	query.Stats
}

// BlockListResponse is a newest-first page of blocks.
type BlockListResponse struct {
	OK    bool                `json:"ok"`
	Items []types.BlockRecord `json:"items"`
}

// TxListResponse is a newest-first page of transactions.
type TxListResponse struct {
	OK    bool             `json:"ok"`
	Items []types.TxRecord `json:"items"`
}

// BlockResponse wraps a single block.
type BlockResponse struct {
	OK    bool              `json:"ok"`
	Block types.BlockRecord `json:"block"`
}

// TxResponse wraps a single transaction.
type TxResponse struct {
	OK bool           `json:"ok"`
	Tx types.TxRecord `json:"tx"`
}

// ValidatorsResponse is the validator set at the chain head.
type ValidatorsResponse struct {
	OK bool `json:"ok"`
	types.ValidatorSnapshot
}

// OverviewResponse is the governance and positioning summary.
type OverviewResponse struct {
	OK bool `json:"ok"`
	query.Overview
}
