package query

import "github.com/ynxchain/ynx-indexer/internal/types"

// Health is the ingestion progress summary.
type Health struct {
	ChainID     string `json:"chain_id"`
	RPC         string `json:"rpc"`
	LastIndexed uint64 `json:"last_indexed"`
	LatestSeen  uint64 `json:"latest_seen"`
}

// Stats extends Health with cumulative counts and cache occupancy.
type Stats struct {
	Health
	BlocksIndexed uint64 `json:"blocks_indexed"`
	TxsIndexed    uint64 `json:"txs_indexed"`
	CacheBlocks   int    `json:"cache_blocks"`
	CacheTxs      int    `json:"cache_txs"`
}

// ValueProposition lists the chain's headline capabilities.
type ValueProposition struct {
	EVMCompatible        bool `json:"evm_compatible"`
	OnchainGovernance    bool `json:"onchain_governance"`
	OpenValidatorProgram bool `json:"open_validator_program"`
	PublicTestnetLive    bool `json:"public_testnet_live"`
}

// Positioning describes who the chain is for.
type Positioning struct {
	Statement    string   `json:"statement"`
	TargetUsers  []string `json:"target_users"`
	WhyChooseYNX []string `json:"why_choose_ynx"`
}

// Overview is the governance and positioning summary.
type Overview struct {
	Health
	Governance       types.GovernanceMeta `json:"governance"`
	ValueProposition ValueProposition     `json:"value_proposition"`
	Positioning      Positioning          `json:"positioning"`
}

const positioningStatement = "Governance-native EVM chain for real Web3 services"

var (
	valueProposition = ValueProposition{
		EVMCompatible:        true,
		OnchainGovernance:    true,
		OpenValidatorProgram: true,
		PublicTestnetLive:    true,
	}

	targetUsers = []string{
		"web3 builders",
		"validator operators",
		"onchain organizations",
	}

	whyChooseYNX = []string{
		"mainnet-parity public testnet workflow",
		"machine-readable governance and fee-routing transparency",
		"copy-paste operator onboarding and verification tooling",
		"open validator onboarding with phased decentralization",
	}
)
