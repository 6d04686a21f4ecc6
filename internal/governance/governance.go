package governance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/types"
	"github.com/ynxchain/ynx-indexer/pkg/config"
)

// AppStateSource provides the genesis app state.
type AppStateSource interface {
	GenesisAppState(ctx context.Context) (json.RawMessage, error)
}

// FromConfig builds the metadata used until genesis parameters are loaded.
func FromConfig(cfg config.GovernanceConfig) types.GovernanceMeta {
	return types.GovernanceMeta{
		FounderAddress:            cfg.FounderAddress,
		TreasuryAddress:           cfg.TreasuryAddress,
		TeamBeneficiaryAddress:    cfg.TeamBeneficiaryAddress,
		CommunityRecipientAddress: cfg.CommunityRecipientAddress,
		FeeBurnBps:                cfg.FeeBurnBps,
		FeeTreasuryBps:            cfg.FeeTreasuryBps,
		FeeFounderBps:             cfg.FeeFounderBps,
		InflationTreasuryBps:      cfg.InflationTreasuryBps,
		NoBaseFee:                 cfg.NoBaseFee,
	}
}

type appState struct {
	YNX struct {
		Params struct {
			FounderAddress       string  `json:"founder_address"`
			TreasuryAddress      string  `json:"treasury_address"`
			FeeBurnBps           bpsJSON `json:"fee_burn_bps"`
			FeeTreasuryBps       bpsJSON `json:"fee_treasury_bps"`
			FeeFounderBps        bpsJSON `json:"fee_founder_bps"`
			InflationTreasuryBps bpsJSON `json:"inflation_treasury_bps"`
		} `json:"params"`
		System struct {
			TeamBeneficiaryAddress    string `json:"team_beneficiary_address"`
			CommunityRecipientAddress string `json:"community_recipient_address"`
		} `json:"system"`
	} `json:"ynx"`
	FeeMarket struct {
		Params struct {
			NoBaseFee boolJSON   `json:"no_base_fee"`
			BaseFee   stringJSON `json:"base_fee"`
		} `json:"params"`
	} `json:"feemarket"`
}

// bpsJSON accepts a basis point value encoded as a JSON number or a decimal string.
// Values that are absent, null or not a number leave it unset.
type bpsJSON struct {
	value *uint32
}

func (b *bpsJSON) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil //nolint:nilerr
	}

	n := uint32(v)
	b.value = &n
	return nil
}

func (b bpsJSON) or(fallback uint32) uint32 {
	if b.value == nil {
		return fallback
	}
	return *b.value
}

// boolJSON accepts true/false, optionally quoted.
type boolJSON struct {
	value *bool
}

func (b *boolJSON) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseBool(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	if err != nil {
		return nil //nolint:nilerr
	}

	b.value = &v
	return nil
}

func (b boolJSON) or(fallback *bool) *bool {
	if b.value == nil {
		return fallback
	}
	return b.value
}

// stringJSON keeps a string or number as its textual form.
type stringJSON string

func (s *stringJSON) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = stringJSON(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = stringJSON(num.String())
	}
	return nil
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// Parse reads governance parameters from a genesis app state. Every field the
// app state does not carry keeps its value from fallback.
func Parse(raw json.RawMessage, fallback types.GovernanceMeta) (types.GovernanceMeta, error) {
	var state appState
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &state); err != nil {
			return fallback, fmt.Errorf("failed to decode genesis app state: %w", err)
		}
	}

	params := state.YNX.Params
	system := state.YNX.System
	feemarket := state.FeeMarket.Params

	return types.GovernanceMeta{
		FounderAddress:            firstNonEmpty(params.FounderAddress, fallback.FounderAddress),
		TreasuryAddress:           firstNonEmpty(params.TreasuryAddress, fallback.TreasuryAddress),
		TeamBeneficiaryAddress:    firstNonEmpty(system.TeamBeneficiaryAddress, fallback.TeamBeneficiaryAddress),
		CommunityRecipientAddress: firstNonEmpty(system.CommunityRecipientAddress, fallback.CommunityRecipientAddress),
		FeeBurnBps:                params.FeeBurnBps.or(fallback.FeeBurnBps),
		FeeTreasuryBps:            params.FeeTreasuryBps.or(fallback.FeeTreasuryBps),
		FeeFounderBps:             params.FeeFounderBps.or(fallback.FeeFounderBps),
		InflationTreasuryBps:      params.InflationTreasuryBps.or(fallback.InflationTreasuryBps),
		NoBaseFee:                 feemarket.NoBaseFee.or(fallback.NoBaseFee),
		BaseFee:                   firstNonEmpty(string(feemarket.BaseFee), fallback.BaseFee),
	}, nil
}

// Provider serves governance metadata, replacing the configured fallbacks with
// genesis parameters once they have been loaded. It is safe for concurrent use.
type Provider struct {
	source AppStateSource
	log    *logger.Logger

	mu     sync.RWMutex
	meta   types.GovernanceMeta
	loaded bool
}

// NewProvider creates a provider serving fallback until Load succeeds.
func NewProvider(source AppStateSource, fallback types.GovernanceMeta, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Provider{
		source: source,
		log:    log.WithComponent(common.ComponentGovernance),
		meta:   fallback,
	}
}

// Load fetches the genesis app state and replaces the served metadata.
// On failure the current metadata is kept and the provider stays unloaded.
func (p *Provider) Load(ctx context.Context) error {
	raw, err := p.source.GenesisAppState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch genesis: %w", err)
	}

	current := p.Meta()

	meta, err := Parse(raw, current)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.meta = meta
	p.loaded = true
	p.mu.Unlock()

	p.log.Infow("governance metadata loaded",
		"founder", meta.FounderAddress,
		"treasury", meta.TreasuryAddress,
		"fee_burn_bps", meta.FeeBurnBps,
		"fee_treasury_bps", meta.FeeTreasuryBps,
		"fee_founder_bps", meta.FeeFounderBps,
	)

	return nil
}

// Loaded reports whether genesis parameters have been loaded.
func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.loaded
}

// Meta returns the current governance metadata.
func (p *Provider) Meta() types.GovernanceMeta {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.meta
}
