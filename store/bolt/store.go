package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/govm-net/counter/store"
	"github.com/govm-net/counter/types"
	bolt "go.etcd.io/bbolt"
)

const (
	defaultDBPath = "./counter.bolt"
)

var stateBucket = []byte("state")

// Store implements types.TxStore on a bbolt file
type Store struct {
	db *bolt.DB
}

func init() {
	store.Register(store.BoltStoreType, NewStore)
}

// NewStore opens the bbolt file named by the "db_path" param
func NewStore(params map[string]any) (types.TxStore, error) {
	return Open(store.DBPath(params, defaultDBPath))
}

// Open opens (creating if needed) the bbolt file at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Load(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		value, err = (&view{tx: tx}).Load(key)
		return err
	})
	return value, err
}

func (s *Store) Save(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return (&view{tx: tx}).Save(key, value)
	})
}

// Update runs fn inside a read-write bolt transaction; returning an error rolls it back
func (s *Store) Update(fn func(tx types.Store) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&view{tx: tx})
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

type view struct {
	tx *bolt.Tx
}

func (v *view) Load(key string) ([]byte, error) {
	b := v.tx.Bucket(stateBucket)
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", stateBucket)
	}
	data := b.Get([]byte(key))
	if data == nil {
		return nil, nil
	}
	// bolt values are only valid for the life of the transaction
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (v *view) Save(key string, value []byte) error {
	b := v.tx.Bucket(stateBucket)
	if b == nil {
		return fmt.Errorf("bucket %s not found", stateBucket)
	}
	if value == nil {
		value = []byte{}
	}
	return b.Put([]byte(key), value)
}
