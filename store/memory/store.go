package memory

import (
	"sync"

	"github.com/govm-net/counter/store"
	"github.com/govm-net/counter/types"
)

// Store keeps contract state in a map. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte
}

func init() {
	store.Register(store.MemoryStoreType, NewStore)
}

// NewStore creates an empty in-memory store
func NewStore(params map[string]any) (types.TxStore, error) {
	return New(), nil
}

// New returns an empty in-memory store
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

func (s *Store) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.data[key]), nil
}

func (s *Store) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = clone(value)
	return nil
}

// Update buffers the writes of fn and applies them only when fn succeeds
func (s *Store) Update(fn func(tx types.Store) error) error {
	tx := &overlay{parent: s, writes: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range tx.writes {
		s.data[k] = v
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// overlay is the transactional view handed to Update callbacks
type overlay struct {
	parent *Store
	writes map[string][]byte
}

func (o *overlay) Load(key string) ([]byte, error) {
	if v, ok := o.writes[key]; ok {
		return clone(v), nil
	}
	return o.parent.Load(key)
}

func (o *overlay) Save(key string, value []byte) error {
	o.writes[key] = clone(value)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
