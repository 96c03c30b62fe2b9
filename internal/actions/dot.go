package actions

import (
	"context"
	"fmt"

	"github.com/Benny93/phuml-go/internal/parser"
	"github.com/Benny93/phuml-go/internal/processors"
)

// GenerateDotFile writes the DOT digraph of a codebase.
type GenerateDotFile struct {
	action
	graphviz *processors.GraphvizProcessor
}

// NewGenerateDotFile creates the action. progress may be nil.
func NewGenerateDotFile(p *parser.CodeParser, graphviz *processors.GraphvizProcessor, progress ProgressCallback) *GenerateDotFile {
	return &GenerateDotFile{
		action:   action{parser: p, progress: progress},
		graphviz: graphviz,
	}
}

// Dot returns the DOT digraph of the source.
func (a *GenerateDotFile) Dot(ctx context.Context, source Source) (string, error) {
	codebase, err := a.parse(ctx, source)
	if err != nil {
		return "", err
	}

	a.report(PhaseProcessing, 0.0)
	dot, err := a.graphviz.Process(codebase)
	if err != nil {
		return "", fmt.Errorf("%s: %w", a.graphviz.Name(), err)
	}
	a.report(PhaseProcessing, 1.0)
	return dot, nil
}

// Generate writes the DOT digraph of the source to outputFile.
func (a *GenerateDotFile) Generate(ctx context.Context, source Source, outputFile string) error {
	dot, err := a.Dot(ctx, source)
	if err != nil {
		return err
	}
	return a.save(outputFile, []byte(dot))
}
