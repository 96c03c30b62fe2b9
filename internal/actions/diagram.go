package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Benny93/phuml-go/internal/parser"
	"github.com/Benny93/phuml-go/internal/processors"
)

// GenerateClassDiagram renders the class diagram of a codebase into an image
// with a Graphviz layout binary.
type GenerateClassDiagram struct {
	action
	graphviz *processors.GraphvizProcessor
	image    *processors.ExternalCommandProcessor
}

// NewGenerateClassDiagram creates the action. It fails when the image
// processor cannot render the output of the graphviz processor.
func NewGenerateClassDiagram(
	p *parser.CodeParser,
	graphviz *processors.GraphvizProcessor,
	image *processors.ExternalCommandProcessor,
	progress ProgressCallback,
) (*GenerateClassDiagram, error) {
	if _, err := processors.NewChain(graphviz, image); err != nil {
		return nil, err
	}
	return &GenerateClassDiagram{
		action:   action{parser: p, progress: progress},
		graphviz: graphviz,
		image:    image,
	}, nil
}

// Generate writes the class diagram of the source to outputFile.
func (a *GenerateClassDiagram) Generate(ctx context.Context, source Source, outputFile string) error {
	codebase, err := a.parse(ctx, source)
	if err != nil {
		return err
	}

	a.report(PhaseProcessing, 0.0)
	dot, err := a.graphviz.Process(codebase)
	if err != nil {
		return fmt.Errorf("%s: %w", a.graphviz.Name(), err)
	}

	tmpDir, err := os.MkdirTemp("", "phuml-")
	if err != nil {
		return fmt.Errorf("creating temporary directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dotFile := filepath.Join(tmpDir, "diagram.gv")
	if err := os.WriteFile(dotFile, []byte(dot), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", dotFile, err)
	}
	a.report(PhaseProcessing, 1.0)

	a.report(PhaseSaving, 0.0)
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := a.image.Execute(ctx, dotFile, outputFile, a.image.OutputType()); err != nil {
		return fmt.Errorf("%s: %w", a.image.Name(), err)
	}
	a.report(PhaseSaving, 1.0)
	return nil
}
