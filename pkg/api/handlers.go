package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/query"
	"github.com/ynxchain/ynx-indexer/internal/types"
)

// QueryEngine defines the read operations the API exposes.
type QueryEngine interface {
	ListBlocks(limit int, before uint64) []types.BlockRecord
	ListTxs(limit int, height uint64) []types.TxRecord
	BlockByHeight(ctx context.Context, height uint64) (types.BlockRecord, error)
	TxByHash(ctx context.Context, hash string) (types.TxRecord, error)
	ValidatorSnapshot(ctx context.Context) (types.ValidatorSnapshot, error)
	Health() query.Health
	Stats() query.Stats
	Overview() query.Overview
}

// Handler handles HTTP requests for the API.
type Handler struct {
	engine QueryEngine
	log    *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(engine QueryEngine, log *logger.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log,
	}
}

// Health returns ingestion progress.
// @Summary Health check
// @Description Chain id, node address, last indexed height and latest height seen on the node
// @Tags Status
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{OK: true, Health: h.engine.Health()})
}

// Stats returns ingestion progress, cumulative counts and cache sizes.
// @Summary Indexer statistics
// @Tags Status
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, StatsResponse{OK: true, Stats: h.engine.Stats()})
}

// ListBlocks returns the most recent blocks.
// @Summary List recent blocks
// @Description Newest first, served from the in-memory window of recent blocks
// @Tags Blocks
// @Produce json
// @Param limit query int false "Maximum number of blocks (capped at 200)"
// @Param before query int false "Only blocks strictly below this height"
// @Success 200 {object} BlockListResponse
// @Router /blocks [get]
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.engine.ListBlocks(parseLimit(q.Get("limit")), parseOptionalHeight(q.Get("before")))

	respondJSON(w, http.StatusOK, BlockListResponse{OK: true, Items: items})
}

// GetBlock returns one block.
// @Summary Get block by height
// @Tags Blocks
// @Produce json
// @Param height path int true "Block height"
// @Success 200 {object} BlockResponse
// @Failure 400 {object} ErrorResponse "invalid_height"
// @Failure 404 {object} ErrorResponse "not_found"
// @Router /blocks/{height} [get]
func (h *Handler) GetBlock(w http.ResponseWriter, r *http.Request) {
	height, ok := common.ParsePositiveUint64(firstSegment(r.PathValue("height")))
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidHeight)
		return
	}

	block, err := h.engine.BlockByHeight(r.Context(), height)
	if err != nil {
		h.respondLookupError(w, "block", err)
		return
	}

	respondJSON(w, http.StatusOK, BlockResponse{OK: true, Block: block})
}

// ListTxs returns the most recent transactions.
// @Summary List recent transactions
// @Description Newest first, served from the in-memory window of recent transactions
// @Tags Transactions
// @Produce json
// @Param limit query int false "Maximum number of transactions (capped at 200)"
// @Param height query int false "Only transactions of this block"
// @Success 200 {object} TxListResponse
// @Router /txs [get]
func (h *Handler) ListTxs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.engine.ListTxs(parseLimit(q.Get("limit")), parseOptionalHeight(q.Get("height")))

	respondJSON(w, http.StatusOK, TxListResponse{OK: true, Items: items})
}

// GetTx returns one transaction.
// @Summary Get transaction by hash
// @Description The hash is matched ignoring case, with or without the 0x prefix
// @Tags Transactions
// @Produce json
// @Param hash path string true "Transaction hash"
// @Success 200 {object} TxResponse
// @Failure 400 {object} ErrorResponse "invalid_hash"
// @Failure 404 {object} ErrorResponse "not_found"
// @Router /txs/{hash} [get]
func (h *Handler) GetTx(w http.ResponseWriter, r *http.Request) {
	hash := firstSegment(r.PathValue("hash"))
	if hash == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidHash)
		return
	}

	tx, err := h.engine.TxByHash(r.Context(), hash)
	if err != nil {
		h.respondLookupError(w, "tx", err)
		return
	}

	respondJSON(w, http.StatusOK, TxResponse{OK: true, Tx: tx})
}

// Validators returns the validator set at the chain head.
// @Summary Validator snapshot
// @Description Validators sorted by voting power, with their signature on the last commit
// @Tags Validators
// @Produce json
// @Success 200 {object} ValidatorsResponse
// @Failure 500 {object} ErrorResponse "validators_fetch_failed"
// @Router /validators [get]
func (h *Handler) Validators(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.engine.ValidatorSnapshot(r.Context())
	if err != nil {
		h.log.Warnw("validator snapshot failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  ErrCodeValidatorsFetchFailed,
			Detail: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, ValidatorsResponse{OK: true, ValidatorSnapshot: snapshot})
}

// Overview returns governance metadata and chain positioning.
// @Summary Chain overview
// @Tags Governance
// @Produce json
// @Success 200 {object} OverviewResponse
// @Router /overview [get]
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, OverviewResponse{OK: true, Overview: h.engine.Overview()})
}

// NotFound answers unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, ErrCodeNotFound)
}

func (h *Handler) respondLookupError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, query.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound)
		return
	}

	h.log.Errorw("lookup failed", "kind", kind, "error", err)
	respondError(w, http.StatusInternalServerError, ErrCodeInternal)
}

// parseLimit returns 0 for anything that is not an integer; the engine maps
// non-positive values to the default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return limit
}

// parseOptionalHeight returns 0 (no filter) unless raw is a positive integer.
func parseOptionalHeight(raw string) uint64 {
	height, _ := common.ParsePositiveUint64(raw)
	return height
}

func firstSegment(rest string) string {
	segment, _, _ := strings.Cut(rest, "/")
	return segment
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// headers are already sent, nothing useful to do on failure
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code string) {
	respondJSON(w, status, ErrorResponse{Error: code})
}
