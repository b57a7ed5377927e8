// Package types contains the interfaces the host implements for the contract:
// key-value persistence and the transactional view used for one contract call.
package types

import "github.com/govm-net/counter/core"

// Store is the key-value persistence a contract reads and writes
type Store interface {
	// Load returns the value stored at key, or nil when the key is absent
	Load(key string) ([]byte, error)
	// Save writes value at key
	Save(key string, value []byte) error
}

// TxStore is a Store that can run a unit of work atomically
type TxStore interface {
	Store
	// Update runs fn against a transactional view of the store. Writes made
	// through the view are committed only if fn returns nil.
	Update(fn func(tx Store) error) error
	// Close releases the underlying resources
	Close() error
}

// EventRecorder is implemented by transactional views that can persist the
// acknowledgement of a call alongside its state changes.
type EventRecorder interface {
	RecordEvent(txID, method string, attrs []core.Attribute) error
}
