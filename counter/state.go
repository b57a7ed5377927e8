package counter

import "github.com/govm-net/counter/core"

// State is the persisted contract record
type State struct {
	Count int32        `json:"count"`
	Owner core.Address `json:"owner"`
}

// ContractInfo records which contract and version created the state
type ContractInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

var (
	stateItem        = NewItem[State]("state")
	contractInfoItem = NewItem[ContractInfo]("contract_info")
)
