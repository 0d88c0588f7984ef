package repository

import "context"

// SlotRepository stores serialized values under named keys.
// Get returns nil, nil when the key has never been written.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
