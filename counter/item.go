package counter

import (
	"encoding/json"

	"github.com/govm-net/counter/types"
)

// Item is a single JSON encoded value stored under a fixed key
type Item[T any] struct {
	key string
}

// NewItem declares an item stored at key
func NewItem[T any](key string) Item[T] {
	return Item[T]{key: key}
}

// Key returns the storage key of the item
func (i Item[T]) Key() string {
	return i.key
}

// MayLoad returns nil without error when the item has never been saved
func (i Item[T]) MayLoad(s types.Store) (*T, error) {
	data, err := s.Load(i.key)
	if err != nil {
		return nil, &StoreError{Op: "load", Key: i.key, Err: err}
	}
	if data == nil {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &StoreError{Op: "decode", Key: i.key, Err: err}
	}
	return &v, nil
}

// Load returns ErrNotInitialized when the item is absent
func (i Item[T]) Load(s types.Store) (*T, error) {
	v, err := i.MayLoad(s)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotInitialized
	}
	return v, nil
}

func (i Item[T]) Save(s types.Store, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &StoreError{Op: "encode", Key: i.key, Err: err}
	}
	if err := s.Save(i.key, data); err != nil {
		return &StoreError{Op: "save", Key: i.key, Err: err}
	}
	return nil
}

// Update loads the item, applies fn and saves the result. Nothing is written
// when the load or fn fails.
func (i Item[T]) Update(s types.Store, fn func(v *T) error) (*T, error) {
	v, err := i.Load(s)
	if err != nil {
		return nil, err
	}
	if err := fn(v); err != nil {
		return nil, err
	}
	if err := i.Save(s, v); err != nil {
		return nil, err
	}
	return v, nil
}
