package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) when a key has no stored value.
var ErrNotFound = errors.New("not found")

// KVRepo is a flat string key-value store. The board keeps its whole note
// collection under one key.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
