package storage

import (
	"context"
	"errors"
)

// TieredBackend reads from a fast front backend and falls back to a slower
// back backend, promoting hits into the front. Writes go to both.
type TieredBackend struct {
	front Backend
	back  Backend
}

// NewTieredBackend layers front over back.
func NewTieredBackend(front, back Backend) *TieredBackend {
	return &TieredBackend{front: front, back: back}
}

// Get implements Backend.
func (t *TieredBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok, err := t.front.Get(ctx, key); err != nil || ok {
		return value, ok, err
	}

	value, ok, err := t.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := t.front.Put(ctx, key, value); err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put implements Backend.
func (t *TieredBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := t.front.Put(ctx, key, value); err != nil {
		return err
	}
	return t.back.Put(ctx, key, value)
}

// Close implements Backend.
func (t *TieredBackend) Close() error {
	return errors.Join(t.front.Close(), t.back.Close())
}
