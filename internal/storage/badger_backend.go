package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotInitialized is returned when a BadgerBackend is used before Initialize.
var ErrNotInitialized = errors.New("badger backend not initialized")

// BadgerBackend is a BadgerDB-backed persistent backend.
type BadgerBackend struct {
	mu sync.RWMutex
	db *badger.DB
}

// NewBadgerBackend creates a new BadgerDB backend.
func NewBadgerBackend() *BadgerBackend {
	return &BadgerBackend{}
}

// Initialize opens or creates the BadgerDB database at the given path.
func (b *BadgerBackend) Initialize(path string, readOnly bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	opts := badger.DefaultOptions(path).
		WithNumCompactors(2).
		WithLoggingLevel(badger.ERROR) // Suppress INFO/WARNING logs

	if readOnly {
		opts = opts.WithReadOnly(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("opening badger DB: %w", err)
	}
	b.db = db
	return nil
}

// Get implements Backend.
func (b *BadgerBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.db == nil {
		return nil, false, ErrNotInitialized
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

// Put implements Backend.
func (b *BadgerBackend) Put(_ context.Context, key string, value []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.db == nil {
		return ErrNotInitialized
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// Count returns the number of cached facts entries.
func (b *BadgerBackend) Count() (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.db == nil {
		return 0, ErrNotInitialized
	}

	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixFacts)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Clear removes every cached entry.
func (b *BadgerBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return ErrNotInitialized
	}
	if err := b.db.DropAll(); err != nil {
		return fmt.Errorf("clearing badger DB: %w", err)
	}
	return nil
}

// Close implements Backend.
func (b *BadgerBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	return err
}
