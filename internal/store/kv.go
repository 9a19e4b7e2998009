package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get when the key holds no value.
var ErrKeyNotFound = errors.New("store: key not found")

// KV is the persistence collaborator: a single key holds the whole board
// collection as one document. Implementations live in the memory, file,
// redis and postgres subpackages.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
