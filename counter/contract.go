// Package counter implements a counter contract: anyone may increment the
// count, only the account that instantiated the contract may reset it.
//
// Every entry point takes the store it operates on. Entry points write only
// after all checks pass; hosts that need all-or-nothing semantics across the
// two keys written by Instantiate run the call inside types.TxStore.Update.
package counter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/govm-net/counter/core"
	"github.com/govm-net/counter/types"
)

// Contract identity stored at instantiation, used to reason about migrations.
const (
	ContractName    = "github.com/govm-net/counter"
	ContractVersion = "0.1.0"
)

// Instantiate creates the state record with the sender as its owner
func Instantiate(store types.Store, sender core.Address, msg InitMsg) (*core.Response, error) {
	existing, err := stateItem.MayLoad(store)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInitialized
	}

	info := &ContractInfo{Contract: ContractName, Version: ContractVersion}
	if err := contractInfoItem.Save(store, info); err != nil {
		return nil, err
	}

	state := &State{
		Count: msg.Count,
		Owner: sender,
	}
	if err := stateItem.Save(store, state); err != nil {
		return nil, err
	}

	return core.NewResponse().
		AddAttribute("method", "instantiate").
		AddAttribute("owner", sender.String()).
		AddAttribute("count", strconv.FormatInt(int64(msg.Count), 10)), nil
}

// Execute routes an execute message to its handler
func Execute(store types.Store, sender core.Address, msg ExecuteMsg) (*core.Response, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case msg.Increment != nil:
		return tryIncrement(store)
	case msg.Reset != nil:
		return tryReset(store, sender, msg.Reset.Count)
	default:
		panic("unreachable: validated execute message has no variant")
	}
}

func tryIncrement(store types.Store) (*core.Response, error) {
	_, err := stateItem.Update(store, func(state *State) error {
		if state.Count == math.MaxInt32 {
			return ErrOverflow
		}
		state.Count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return core.NewResponse().AddAttribute("method", "try_increment"), nil
}

func tryReset(store types.Store, sender core.Address, count int32) (*core.Response, error) {
	_, err := stateItem.Update(store, func(state *State) error {
		if sender != state.Owner {
			return ErrUnauthorized
		}
		state.Count = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	return core.NewResponse().AddAttribute("method", "reset"), nil
}

// Query routes a query message and returns the JSON encoded answer
func Query(store types.Store, msg QueryMsg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case msg.GetCount != nil:
		resp, err := QueryCount(store)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode count response: %w", err)
		}
		return data, nil
	default:
		panic("unreachable: validated query message has no variant")
	}
}

// QueryCount returns the current count
func QueryCount(store types.Store) (*CountResponse, error) {
	state, err := stateItem.Load(store)
	if err != nil {
		return nil, err
	}
	return &CountResponse{Count: state.Count}, nil
}

// GetContractVersion returns the contract identity recorded at instantiation
func GetContractVersion(store types.Store) (*ContractInfo, error) {
	return contractInfoItem.Load(store)
}

// LoadState returns the full state record
func LoadState(store types.Store) (*State, error) {
	return stateItem.Load(store)
}
