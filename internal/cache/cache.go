package cache

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/types"
)

// Cache keeps the most recent block and transaction records in two
// independently sized FIFO buffers. Lookups never change eviction order.
// It is safe for concurrent use.
type Cache struct {
	log *logger.Logger

	mu     sync.RWMutex
	blocks *simplelru.LRU[uint64, types.BlockRecord]
	txs    *simplelru.LRU[txKey, types.TxRecord]
	// normalized hash -> position of the newest cached record with that hash
	byHash map[string]txKey
}

// txKey is the position of a transaction in the chain.
type txKey struct {
	height uint64
	index  uint32
}

func keyOf(rec types.TxRecord) txKey {
	return txKey{height: rec.Height, index: rec.Index}
}

// New creates a cache holding at most blockCap blocks and txCap transactions.
func New(blockCap, txCap int, log *logger.Logger) (*Cache, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithComponent(common.ComponentCache)

	blocks, err := simplelru.NewLRU[uint64, types.BlockRecord](blockCap, nil)
	if err != nil {
		return nil, fmt.Errorf("block cache: %w", err)
	}

	c := &Cache{log: log, blocks: blocks, byHash: make(map[string]txKey)}

	c.txs, err = simplelru.NewLRU[txKey, types.TxRecord](txCap, c.onTxEvicted)
	if err != nil {
		return nil, fmt.Errorf("tx cache: %w", err)
	}

	log.Debugw("cache created", "block_capacity", blockCap, "tx_capacity", txCap)

	return c, nil
}

// onTxEvicted runs under c.mu from inside the LRU.
func (c *Cache) onTxEvicted(key txKey, rec types.TxRecord) {
	hash := common.NormalizeHash(rec.Hash)
	if c.byHash[hash] == key {
		delete(c.byHash, hash)
	}
}

// PushBlock appends a block record, evicting the oldest one when full.
func (c *Cache) PushBlock(rec types.BlockRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// re-adding an existing key would only refresh it in place
	c.blocks.Remove(rec.Height)
	c.blocks.Add(rec.Height, rec)
}

// PushTx appends a transaction record, evicting the oldest one when full.
// Records are kept per position, so the same hash included at two heights
// occupies two slots; hash lookups see the newer one.
func (c *Cache) PushTx(rec types.TxRecord) {
	key := keyOf(rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.txs.Remove(key)
	c.txs.Add(key, rec)
	c.byHash[common.NormalizeHash(rec.Hash)] = key
}

// BlockByHeight returns the cached block at height.
func (c *Cache) BlockByHeight(height uint64) (types.BlockRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks.Peek(height)
}

// TxByHash returns the cached transaction with hash, ignoring case and the 0x prefix.
func (c *Cache) TxByHash(hash string) (types.TxRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, ok := c.byHash[common.NormalizeHash(hash)]
	if !ok {
		return types.TxRecord{}, false
	}
	return c.txs.Peek(key)
}

// Blocks returns the cached blocks, oldest first.
func (c *Cache) Blocks() []types.BlockRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks.Values()
}

// Txs returns the cached transactions, oldest first.
func (c *Cache) Txs() []types.TxRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.txs.Values()
}

// Sizes returns the number of cached blocks and transactions.
func (c *Cache) Sizes() (blocks, txs int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks.Len(), c.txs.Len()
}
