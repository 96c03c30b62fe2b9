package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Benny93/phuml-go/internal/code"
	"github.com/Benny93/phuml-go/internal/storage"
)

// CodeParser turns source files into a Codebase: it extracts raw facts with
// its traverser, optionally caching them by content hash, and resolves them.
type CodeParser struct {
	traverser Traverser
	resolver  *RelationsResolver
	cache     storage.Backend
}

// Option configures a CodeParser.
type Option func(*CodeParser)

// WithCache caches extracted facts in the given backend.
func WithCache(cache storage.Backend) Option {
	return func(p *CodeParser) {
		p.cache = cache
	}
}

// NewCodeParser creates a parser that extracts facts with t.
func NewCodeParser(t Traverser, opts ...Option) *CodeParser {
	p := &CodeParser{
		traverser: t,
		resolver:  NewRelationsResolver(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Traverser returns the traverser used by the parser.
func (p *CodeParser) Traverser() Traverser {
	return p.traverser
}

// Parse extracts the facts of every file, in order, and resolves them.
func (p *CodeParser) Parse(ctx context.Context, files []SourceFile) (*code.Codebase, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	raw := NewRawDefinitions()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		definitions, err := p.extract(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file.RelPath, err)
		}
		raw.Add(definitions...)
	}

	return p.resolver.Resolve(raw), nil
}

func (p *CodeParser) extract(ctx context.Context, file SourceFile) ([]RawDefinition, error) {
	if p.cache == nil || file.SHA256 == "" {
		return p.traverser.Traverse(ctx, file)
	}

	key := storage.FactsKey(p.traverser.Language(), file.SHA256)
	cached, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok {
		var definitions []RawDefinition
		if err := json.Unmarshal(cached, &definitions); err == nil {
			return definitions, nil
		}
	}

	definitions, err := p.traverser.Traverse(ctx, file)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(definitions)
	if err != nil {
		return nil, fmt.Errorf("encoding facts: %w", err)
	}
	if err := p.cache.Put(ctx, key, encoded); err != nil {
		return nil, fmt.Errorf("writing cache: %w", err)
	}
	return definitions, nil
}
