package types

import "time"

// BlockRecord is the indexed form of one block.
type BlockRecord struct {
	Height   uint64    `json:"height"`
	Hash     string    `json:"hash"`
	Time     time.Time `json:"time"`
	Proposer string    `json:"proposer"`
	NumTxs   uint32    `json:"num_txs"`
	AppHash  string    `json:"app_hash"`
}

// TxRecord is the indexed form of one transaction.
// Hash is "0x" followed by the uppercase hex SHA-256 of the raw transaction bytes.
type TxRecord struct {
	Hash      string `json:"hash"`
	Height    uint64 `json:"height"`
	Index     uint32 `json:"index"`
	Code      uint32 `json:"code"`
	GasWanted uint64 `json:"gas_wanted"`
	GasUsed   uint64 `json:"gas_used"`
}

// IndexerState is the resume checkpoint of the ingestion loop.
// BlocksOffset and TxsOffset are the committed byte lengths of the record logs
// after LastHeight was fully ingested.
type IndexerState struct {
	ID            int    `meddler:"id,pk" json:"-"`
	LastHeight    uint64 `meddler:"last_height" json:"last_height"`
	BlocksIndexed uint64 `meddler:"blocks_indexed" json:"blocks_indexed"`
	TxsIndexed    uint64 `meddler:"txs_indexed" json:"txs_indexed"`
	BlocksOffset  int64  `meddler:"blocks_offset" json:"blocks_offset"`
	TxsOffset     int64  `meddler:"txs_offset" json:"txs_offset"`
	UpdatedAt     int64  `meddler:"updated_at" json:"updated_at"`
}

// ValidatorRow is one validator of a snapshot joined with its last commit signature.
type ValidatorRow struct {
	Address          string `json:"address"`
	VotingPower      int64  `json:"voting_power"`
	ProposerPriority int64  `json:"proposer_priority"`
	SignedLastBlock  bool   `json:"signed_last_block"`
}

// ValidatorSnapshot is the validator set at LatestHeight.
type ValidatorSnapshot struct {
	LatestHeight uint64         `json:"latest_height"`
	Total        int            `json:"total"`
	SignedCount  int            `json:"signed_count"`
	Validators   []ValidatorRow `json:"validators"`
}

// GovernanceMeta holds the governance addresses and fee routing parameters of the chain.
type GovernanceMeta struct {
	FounderAddress            string `json:"founder_address"`
	TreasuryAddress           string `json:"treasury_address"`
	TeamBeneficiaryAddress    string `json:"team_beneficiary_address"`
	CommunityRecipientAddress string `json:"community_recipient_address"`
	FeeBurnBps                uint32 `json:"fee_burn_bps"`
	FeeTreasuryBps            uint32 `json:"fee_treasury_bps"`
	FeeFounderBps             uint32 `json:"fee_founder_bps"`
	InflationTreasuryBps      uint32 `json:"inflation_treasury_bps"`
	NoBaseFee                 *bool  `json:"no_base_fee"`
	BaseFee                   string `json:"base_fee"`
}
