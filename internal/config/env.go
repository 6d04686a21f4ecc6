package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ynxchain/ynx-indexer/internal/common"
	pkgconfig "github.com/ynxchain/ynx-indexer/pkg/config"
)

// envOverlay collects warnings while applying environment overrides.
type envOverlay struct {
	lookup   LookupFunc
	warnings []string
}

func (e *envOverlay) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok && v != "" {
		*dst = v
	}
}

func (e *envOverlay) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (e *envOverlay) invalid(key, value string) {
	e.warnings = append(e.warnings, fmt.Sprintf("ignoring invalid %s=%q, keeping default", key, value))
}

func (e *envOverlay) uint64(key string, dst *uint64) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		e.invalid(key, v)
		return
	}
	*dst = n
}

func (e *envOverlay) positiveInt(key string, dst *int) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.invalid(key, v)
		return
	}
	*dst = n
}

func (e *envOverlay) bps(key string, dst *uint32) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil || n > pkgconfig.BPSDenominator {
		e.invalid(key, v)
		return
	}
	*dst = uint32(n)
}

// bpsRange resets a basis point value above the denominator to its default.
func (e *envOverlay) bpsRange(key string, dst *uint32, def uint32) {
	if *dst <= pkgconfig.BPSDenominator {
		return
	}
	e.invalid(key, strconv.FormatUint(uint64(*dst), 10))
	*dst = def
}

// feeSplit resets the fee split when its shares add up to more than the whole.
func (e *envOverlay) feeSplit(gov *pkgconfig.GovernanceConfig) {
	sum := gov.FeeSplitSum()
	if sum <= pkgconfig.BPSDenominator {
		return
	}
	e.warnings = append(e.warnings, fmt.Sprintf(
		"ignoring fee split of %d bps (max %d), keeping defaults", sum, pkgconfig.BPSDenominator))
	gov.ResetFeeSplit()
}

func (e *envOverlay) millis(key string, dst *common.Duration) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		e.invalid(key, v)
		return
	}
	*dst = common.NewDuration(time.Duration(n) * time.Millisecond)
}

// applyEnv overlays INDEXER_* and YNX_* environment keys onto cfg.
func applyEnv(cfg *pkgconfig.Config, lookup LookupFunc) []string {
	e := &envOverlay{lookup: lookup}

	e.str("INDEXER_RPC", &cfg.Chain.RPCURL)
	e.millis("INDEXER_RPC_TIMEOUT_MS", &cfg.Chain.Timeout)

	e.str("INDEXER_DATA_DIR", &cfg.Indexer.DataDir)
	e.millis("INDEXER_POLL_MS", &cfg.Indexer.PollInterval)
	e.positiveInt("INDEXER_CACHE_SIZE", &cfg.Indexer.BlockCacheSize)
	e.positiveInt("INDEXER_TX_CACHE_SIZE", &cfg.Indexer.TxCacheSize)
	e.uint64("INDEXER_BACKFILL", &cfg.Indexer.Backfill)
	e.uint64("INDEXER_START_HEIGHT", &cfg.Indexer.StartHeight)

	if v, ok := e.raw("INDEXER_PORT"); ok {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil || port == 0 {
			e.invalid("INDEXER_PORT", v)
		} else {
			host, _, splitErr := net.SplitHostPort(cfg.API.ListenAddress)
			if splitErr != nil {
				host = ""
			}
			cfg.API.ListenAddress = net.JoinHostPort(host, strconv.FormatUint(port, 10))
		}
	}
	e.str("INDEXER_LISTEN_ADDRESS", &cfg.API.ListenAddress)
	e.positiveInt("INDEXER_API_LIMIT", &cfg.API.DefaultLimit)

	if v, ok := e.raw("INDEXER_LOG_LEVEL"); ok {
		if cfg.Logging == nil {
			cfg.Logging = &pkgconfig.LoggingConfig{}
		}
		cfg.Logging.DefaultLevel = common.ToLowerWithTrim(v)
	}

	gov := &cfg.Governance
	e.str("YNX_FOUNDER_ADDRESS", &gov.FounderAddress)
	e.str("YNX_TREASURY_ADDRESS", &gov.TreasuryAddress)
	e.str("YNX_TEAM_BENEFICIARY", &gov.TeamBeneficiaryAddress)
	e.str("YNX_COMMUNITY_RECIPIENT", &gov.CommunityRecipientAddress)
	e.bps("YNX_FEE_BURN_BPS", &gov.FeeBurnBps)
	e.bps("YNX_FEE_TREASURY_BPS", &gov.FeeTreasuryBps)
	e.bps("YNX_FEE_FOUNDER_BPS", &gov.FeeFounderBps)
	e.bps("YNX_INFLATION_TREASURY_BPS", &gov.InflationTreasuryBps)

	// values from the config file are checked here too
	e.bpsRange("fee_burn_bps", &gov.FeeBurnBps, pkgconfig.DefaultFeeBurnBps)
	e.bpsRange("fee_treasury_bps", &gov.FeeTreasuryBps, pkgconfig.DefaultFeeTreasuryBps)
	e.bpsRange("fee_founder_bps", &gov.FeeFounderBps, pkgconfig.DefaultFeeFounderBps)
	e.bpsRange("inflation_treasury_bps", &gov.InflationTreasuryBps, pkgconfig.DefaultInflationTreasuryBps)
	e.feeSplit(gov)

	// any set value other than "1"/"true" means false
	if v, ok := lookup("YNX_NO_BASE_FEE"); ok {
		noBaseFee := v == "1" || v == "true"
		gov.NoBaseFee = &noBaseFee
	}

	return e.warnings
}
