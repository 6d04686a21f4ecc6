package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"time"

	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
)

const (
	// MaxAPILimit is the hard ceiling on list page sizes regardless of configuration.
	MaxAPILimit = 200

	// BPSDenominator is the basis point scale used by the fee split parameters.
	BPSDenominator = 10_000

	DefaultRPCURL         = "http://127.0.0.1:26657"
	DefaultListenAddress  = ":8081"
	DefaultPollInterval   = time.Second
	DefaultBlockCacheSize = 500
	DefaultTxCacheSize    = 2000
	DefaultAPILimit       = 20
	DefaultDataDir        = "data"

	DefaultFeeBurnBps           = 4_000
	DefaultFeeTreasuryBps       = 1_000
	DefaultFeeFounderBps        = 1_000
	DefaultInflationTreasuryBps = 3_000
)

// Config represents the complete configuration for the indexer.
type Config struct {
	// Chain describes how to reach the node RPC
	Chain ChainConfig `yaml:"chain" json:"chain" toml:"chain"`

	// Indexer contains ingestion loop, cache and storage settings
	Indexer IndexerConfig `yaml:"indexer" json:"indexer" toml:"indexer"`

	// API contains the HTTP query surface settings
	API APIConfig `yaml:"api" json:"api" toml:"api"`

	// Governance holds fallback values used until genesis parameters are loaded
	Governance GovernanceConfig `yaml:"governance" json:"governance" toml:"governance"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`
}

// Default returns a configuration with every field set to its documented default.
func Default() *Config {
	cfg := &Config{
		Governance: GovernanceConfig{
			FeeBurnBps:           DefaultFeeBurnBps,
			FeeTreasuryBps:       DefaultFeeTreasuryBps,
			FeeFounderBps:        DefaultFeeFounderBps,
			InflationTreasuryBps: DefaultInflationTreasuryBps,
		},
		Logging: &LoggingConfig{},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ChainConfig configures the node RPC connection.
type ChainConfig struct {
	// RPCURL is the CometBFT RPC endpoint, e.g. http://127.0.0.1:26657
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// Timeout bounds a single RPC call at the transport level
	Timeout common.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
}

// ApplyDefaults sets default values for optional chain configuration fields.
func (c *ChainConfig) ApplyDefaults() {
	if c.RPCURL == "" {
		c.RPCURL = DefaultRPCURL
	}
	if c.Timeout.Duration <= 0 {
		c.Timeout = common.NewDuration(30 * time.Second) //nolint:mnd
	}
}

// IndexerConfig configures the ingestion loop, the bounded cache and the durable store.
type IndexerConfig struct {
	// DataDir holds blocks.jsonl, txs.jsonl and the checkpoint database
	DataDir string `yaml:"data_dir" json:"data_dir" toml:"data_dir"`

	// PollInterval is the fixed tick interval of the ingestion loop
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// BlockCacheSize is the number of most recent blocks kept in memory
	BlockCacheSize int `yaml:"block_cache_size" json:"block_cache_size" toml:"block_cache_size"`

	// TxCacheSize is the number of most recent transactions kept in memory
	TxCacheSize int `yaml:"tx_cache_size" json:"tx_cache_size" toml:"tx_cache_size"`

	// StartHeight, when non-zero, is the first height indexed on a fresh data dir
	StartHeight uint64 `yaml:"start_height" json:"start_height" toml:"start_height"`

	// Backfill, when non-zero and StartHeight is zero, indexes this many heights
	// below the chain head on a fresh data dir
	Backfill uint64 `yaml:"backfill" json:"backfill" toml:"backfill"`

	// SyncWrites fsyncs the record logs after every height
	SyncWrites *bool `yaml:"sync_writes,omitempty" json:"sync_writes,omitempty" toml:"sync_writes,omitempty"`

	// DB configures the SQLite checkpoint database
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`
}

// ApplyDefaults sets default values for optional indexer configuration fields.
func (i *IndexerConfig) ApplyDefaults() {
	if i.DataDir == "" {
		i.DataDir = DefaultDataDir
	}
	if i.PollInterval.Duration <= 0 {
		i.PollInterval = common.NewDuration(DefaultPollInterval)
	}
	if i.BlockCacheSize <= 0 {
		i.BlockCacheSize = DefaultBlockCacheSize
	}
	if i.TxCacheSize <= 0 {
		i.TxCacheSize = DefaultTxCacheSize
	}
	if i.SyncWrites == nil {
		syncWrites := true
		i.SyncWrites = &syncWrites
	}
	i.DB.ApplyDefaults()
}

// ShouldSyncWrites reports whether record logs are fsynced per height.
func (i *IndexerConfig) ShouldSyncWrites() bool {
	return i.SyncWrites == nil || *i.SyncWrites
}

// CheckpointPath is the checkpoint database path, defaulting to state.db in DataDir.
func (i *IndexerConfig) CheckpointPath() string {
	if i.DB.Path != "" {
		return i.DB.Path
	}
	return filepath.Join(i.DataDir, "state.db")
}

// BlocksLogPath is the path of the block record log.
func (i *IndexerConfig) BlocksLogPath() string {
	return filepath.Join(i.DataDir, "blocks.jsonl")
}

// TxsLogPath is the path of the transaction record log.
func (i *IndexerConfig) TxsLogPath() string {
	return filepath.Join(i.DataDir, "txs.jsonl")
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database; empty means <data_dir>/state.db
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	// The checkpoint is the resume point, so FULL is the default
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "FULL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if !slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}
	if !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}
	return nil
}

// APIConfig configures the HTTP query surface.
type APIConfig struct {
	// ListenAddress is the address to bind the API server to ("host:port" or ":port")
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// DefaultLimit is the page size used when a list request omits limit
	DefaultLimit int `yaml:"default_limit" json:"default_limit" toml:"default_limit"`

	// MaxLimit caps page sizes; it can never exceed MaxAPILimit
	MaxLimit int `yaml:"max_limit" json:"max_limit" toml:"max_limit"`

	// Swagger exposes the OpenAPI UI under /swagger/
	Swagger bool `yaml:"swagger" json:"swagger" toml:"swagger"`

	ReadTimeout  common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout  common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS configures cross-origin access; responses are readable from any origin by default
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = DefaultListenAddress
	}
	if a.MaxLimit <= 0 || a.MaxLimit > MaxAPILimit {
		a.MaxLimit = MaxAPILimit
	}
	if a.DefaultLimit <= 0 {
		a.DefaultLimit = DefaultAPILimit
	}
	if a.DefaultLimit > a.MaxLimit {
		a.DefaultLimit = a.MaxLimit
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		// validator snapshots page through the RPC inside the request
		a.WriteTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// GovernanceConfig holds governance addresses and fee parameters used as fallbacks
// for fields the genesis app state does not carry.
type GovernanceConfig struct {
	FounderAddress            string `yaml:"founder_address" json:"founder_address" toml:"founder_address"`
	TreasuryAddress           string `yaml:"treasury_address" json:"treasury_address" toml:"treasury_address"`
	TeamBeneficiaryAddress    string `yaml:"team_beneficiary_address" json:"team_beneficiary_address" toml:"team_beneficiary_address"`          //nolint:lll
	CommunityRecipientAddress string `yaml:"community_recipient_address" json:"community_recipient_address" toml:"community_recipient_address"` //nolint:lll

	FeeBurnBps           uint32 `yaml:"fee_burn_bps" json:"fee_burn_bps" toml:"fee_burn_bps"`
	FeeTreasuryBps       uint32 `yaml:"fee_treasury_bps" json:"fee_treasury_bps" toml:"fee_treasury_bps"`
	FeeFounderBps        uint32 `yaml:"fee_founder_bps" json:"fee_founder_bps" toml:"fee_founder_bps"`
	InflationTreasuryBps uint32 `yaml:"inflation_treasury_bps" json:"inflation_treasury_bps" toml:"inflation_treasury_bps"`

	// NoBaseFee is unknown (nil) unless configured
	NoBaseFee *bool `yaml:"no_base_fee,omitempty" json:"no_base_fee,omitempty" toml:"no_base_fee,omitempty"`
}

// Validate checks the basis point parameters.
func (g *GovernanceConfig) Validate() error {
	for name, v := range map[string]uint32{
		"fee_burn_bps":           g.FeeBurnBps,
		"fee_treasury_bps":       g.FeeTreasuryBps,
		"fee_founder_bps":        g.FeeFounderBps,
		"inflation_treasury_bps": g.InflationTreasuryBps,
	} {
		if v > BPSDenominator {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
	}
	if sum := g.FeeSplitSum(); sum > BPSDenominator {
		return fmt.Errorf("fee split bps must be <= %d, got %d", BPSDenominator, sum)
	}
	return nil
}

// FeeSplitSum returns the combined burn, treasury and founder shares.
func (g *GovernanceConfig) FeeSplitSum() uint64 {
	return uint64(g.FeeBurnBps) + uint64(g.FeeTreasuryBps) + uint64(g.FeeFounderBps)
}

// ResetFeeSplit restores the burn, treasury and founder shares to their defaults.
func (g *GovernanceConfig) ResetFeeSplit() {
	g.FeeBurnBps = DefaultFeeBurnBps
	g.FeeTreasuryBps = DefaultFeeTreasuryBps
	g.FeeFounderBps = DefaultFeeFounderBps
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - chain-client: node RPC calls
	//   - log-store: record logs and checkpoint
	//   - cache: bounded in-memory cache
	//   - ingest: polling loop
	//   - query: query engine
	//   - governance: genesis parameter loader
	//   - api: HTTP server
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if level, ok := l.ComponentLevels[component]; ok {
		return level
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Chain.ApplyDefaults()
	c.Indexer.ApplyDefaults()
	c.API.ApplyDefaults()

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.ApplyDefaults()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Chain.RPCURL)
	if err != nil {
		return fmt.Errorf("chain.rpc_url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "tcp", "unix":
	default:
		return fmt.Errorf("chain.rpc_url: unsupported scheme %q", u.Scheme)
	}

	if c.Indexer.DataDir == "" {
		return fmt.Errorf("indexer.data_dir is required")
	}

	if err := c.Indexer.DB.Validate(); err != nil {
		return fmt.Errorf("indexer.db: %w", err)
	}

	if err := c.Governance.Validate(); err != nil {
		return fmt.Errorf("governance: %w", err)
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	return nil
}
