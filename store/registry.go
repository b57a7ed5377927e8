package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/govm-net/counter/types"
)

// StoreType names a persistence backend
type StoreType string

const (
	// MemoryStoreType represents the in-memory store
	MemoryStoreType StoreType = "memory"
	// DBStoreType represents the SQLite store
	DBStoreType StoreType = "db"
	// BoltStoreType represents the bbolt store
	BoltStoreType StoreType = "bolt"
)

// StoreConstructor creates a new TxStore from backend specific parameters
type StoreConstructor func(params map[string]any) (types.TxStore, error)

// Registry defines the interface for managing TxStore implementations
type Registry interface {
	// Register adds a new store implementation to the registry
	Register(st StoreType, constructor StoreConstructor) error
	// SetDefault sets the default store type
	SetDefault(st StoreType) error
	// Get returns a new instance of the specified store type
	Get(st StoreType, params map[string]any) (types.TxStore, error)
	// GetDefault returns a new instance of the default store type
	GetDefault(params map[string]any) (types.TxStore, error)
	// DefaultStoreType returns the current default store type
	DefaultStoreType() StoreType
	// ListRegistered returns the registered store types in sorted order
	ListRegistered() []StoreType
}

type registry struct {
	mu        sync.RWMutex
	stores    map[StoreType]StoreConstructor
	defaultSt StoreType
}

var defaultRegistry Registry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() Registry {
	return &registry{
		stores: make(map[StoreType]StoreConstructor),
	}
}

// GetRegistry returns the global Registry instance
func GetRegistry() Registry {
	return defaultRegistry
}

func (r *registry) Register(st StoreType, constructor StoreConstructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[st]; exists {
		return fmt.Errorf("store type %s already registered", st)
	}

	r.stores[st] = constructor
	return nil
}

func (r *registry) SetDefault(st StoreType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[st]; !exists {
		return fmt.Errorf("store type %s not registered", st)
	}

	r.defaultSt = st
	return nil
}

func (r *registry) Get(st StoreType, params map[string]any) (types.TxStore, error) {
	r.mu.RLock()
	constructor, exists := r.stores[st]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("store type %s not found", st)
	}

	return constructor(params)
}

func (r *registry) GetDefault(params map[string]any) (types.TxStore, error) {
	r.mu.RLock()
	st := r.defaultSt
	r.mu.RUnlock()

	if st == "" {
		return nil, fmt.Errorf("no default store type set")
	}
	return r.Get(st, params)
}

func (r *registry) DefaultStoreType() StoreType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultSt == "" {
		return MemoryStoreType
	}
	return r.defaultSt
}

func (r *registry) ListRegistered() []StoreType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]StoreType, 0, len(r.stores))
	for st := range r.stores {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Package level functions that delegate to defaultRegistry

// Register adds a new store implementation to the global registry
func Register(st StoreType, constructor StoreConstructor) error {
	return GetRegistry().Register(st, constructor)
}

// SetDefault sets the default store type of the global registry
func SetDefault(st StoreType) error {
	return GetRegistry().SetDefault(st)
}

// Get returns a new store of the given type, falling back to the default type when st is empty
func Get(st StoreType, params map[string]any) (types.TxStore, error) {
	if st == "" {
		st = GetRegistry().DefaultStoreType()
	}
	return GetRegistry().Get(st, params)
}

// GetDefault returns a new instance of the default store type
func GetDefault(params map[string]any) (types.TxStore, error) {
	return GetRegistry().GetDefault(params)
}

// DefaultStoreType returns the current default store type
func DefaultStoreType() StoreType {
	return GetRegistry().DefaultStoreType()
}

// ListRegistered returns all registered store types
func ListRegistered() []StoreType {
	return GetRegistry().ListRegistered()
}

// DBPath extracts the "db_path" parameter, returning fallback when unset
func DBPath(params map[string]any, fallback string) string {
	if path, ok := params["db_path"].(string); ok && path != "" {
		return path
	}
	return fallback
}
