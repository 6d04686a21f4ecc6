package common

const (
	ComponentChainClient = "chain-client"
	ComponentLogStore    = "log-store"
	ComponentCache       = "cache"
	ComponentIngest      = "ingest"
	ComponentQuery       = "query"
	ComponentGovernance  = "governance"
	ComponentAPI         = "api"
)

var AllComponents = map[string]struct{}{
	ComponentChainClient: {},
	ComponentLogStore:    {},
	ComponentCache:       {},
	ComponentIngest:      {},
	ComponentQuery:       {},
	ComponentGovernance:  {},
	ComponentAPI:         {},
}
