package counter

import (
	"errors"
	"fmt"
)

// Errors returned by the contract entry points
var (
	ErrAlreadyInitialized = errors.New("contract already initialized")
	ErrNotInitialized     = errors.New("contract not initialized")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrOverflow           = errors.New("count overflow")
	ErrStoreFailure       = errors.New("store failure")
	ErrInvalidMessage     = errors.New("invalid message")
)

// StoreError wraps a failure of the underlying key-value store.
// errors.Is(err, ErrStoreFailure) reports true for it.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrStoreFailure, e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}
