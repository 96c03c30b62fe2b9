// Package storage provides the cache backends for parsed source facts.
//
// Parsing is the most expensive phase of a run. Backends store the encoded
// raw definitions of a file keyed by its language and content hash, so that
// unchanged files are not parsed again by watch mode, the MCP server or
// subsequent CLI runs.
package storage

import (
	"context"
)

// Key prefix for cached facts.
const prefixFacts = "f:"

// Backend is a key-value store for encoded facts.
type Backend interface {
	// Get returns the value stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases all resources held by the backend.
	Close() error
}

// FactsKey builds the cache key of a file's facts.
func FactsKey(language, sha256 string) string {
	return prefixFacts + language + ":" + sha256
}
