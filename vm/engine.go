package vm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/govm-net/counter/core"
	"github.com/govm-net/counter/counter"
	"github.com/govm-net/counter/store"
	"github.com/govm-net/counter/types"
)

// Engine hosts the counter contract on top of a transactional store
type Engine struct {
	config *Config
	store  types.TxStore
	// mu keeps the load-then-save of one mutating call from interleaving with another
	mu sync.RWMutex
}

// Config represents engine configuration
type Config struct {
	StoreType   string         // Store backend type, empty selects the registry default
	StoreParams map[string]any // Store backend parameters
}

// Result is the outcome of a committed mutating call
type Result struct {
	TxID       string           `json:"tx_id"`
	Attributes []core.Attribute `json:"attributes"`
}

// NewEngine creates a new contract engine
func NewEngine(config *Config) (*Engine, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s, err := store.Get(store.StoreType(config.StoreType), config.StoreParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &Engine{
		config: config,
		store:  s,
	}, nil
}

// WithStore replaces the backing store
func (e *Engine) WithStore(s types.TxStore) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = s
	return e
}

// GetStore returns the backing store
func (e *Engine) GetStore() types.TxStore {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store
}

func validateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	if config.StoreType == "" {
		return nil
	}

	for _, st := range store.ListRegistered() {
		if string(st) == config.StoreType {
			return nil
		}
	}
	return fmt.Errorf("unknown store type %q, registered: %v", config.StoreType, store.ListRegistered())
}

// Instantiate decodes an init payload and creates the contract state owned by sender
func (e *Engine) Instantiate(ctx context.Context, sender core.Address, payload []byte) (*Result, error) {
	msg, err := counter.ParseInitMsg(payload)
	if err != nil {
		return nil, err
	}
	return e.apply(ctx, func(s types.Store) (*core.Response, error) {
		return counter.Instantiate(s, sender, msg)
	})
}

// Execute decodes an execute payload and applies it on behalf of sender
func (e *Engine) Execute(ctx context.Context, sender core.Address, payload []byte) (*Result, error) {
	msg, err := counter.ParseExecuteMsg(payload)
	if err != nil {
		return nil, err
	}
	return e.apply(ctx, func(s types.Store) (*core.Response, error) {
		return counter.Execute(s, sender, msg)
	})
}

// Query decodes a query payload and returns the JSON encoded answer
func (e *Engine) Query(ctx context.Context, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, err := counter.ParseQueryMsg(payload)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return counter.Query(e.store, msg)
}

// ContractVersion returns the contract identity stored at instantiation
func (e *Engine) ContractVersion(ctx context.Context) (*counter.ContractInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return counter.GetContractVersion(e.store)
}

// apply runs one mutating call in a store transaction. The acknowledgement is
// recorded with the state change when the backend supports it, and logged once
// the transaction has committed.
func (e *Engine) apply(ctx context.Context, call func(s types.Store) (*core.Response, error)) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	txID := uuid.NewString()
	var (
		resp    *core.Response
		callErr error
	)
	err := e.store.Update(func(tx types.Store) error {
		resp, callErr = call(tx)
		if callErr != nil {
			return callErr
		}
		if recorder, ok := tx.(types.EventRecorder); ok {
			method, _ := resp.Attribute("method")
			if err := recorder.RecordEvent(txID, method, resp.Attributes); err != nil {
				callErr = &counter.StoreError{Op: "record event", Key: txID, Err: err}
				return callErr
			}
		}
		return nil
	})
	if err != nil {
		if callErr == nil {
			// the transaction itself failed to begin or commit
			err = &counter.StoreError{Op: "commit", Key: txID, Err: err}
		}
		slog.Debug("contract call rejected", "tx", txID, "error", err)
		return nil, err
	}

	params := append([]any{"tx", txID}, resp.KeyValues()...)
	slog.Info("Contract event", params...)

	return &Result{TxID: txID, Attributes: resp.Attributes}, nil
}

// Close closes the backing store
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
