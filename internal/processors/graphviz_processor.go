package processors

import (
	"github.com/Benny93/phuml-go/internal/code"
	"github.com/Benny93/phuml-go/internal/graphviz"
	"github.com/Benny93/phuml-go/internal/templates"
)

// GraphvizProcessor turns a codebase into a DOT digraph.
type GraphvizProcessor struct {
	builder *graphviz.DigraphBuilder
	printer *graphviz.DigraphPrinter
}

// NewGraphvizProcessor creates a processor rendering labels with renderer.
// Associations are only drawn when withAssociations is true.
func NewGraphvizProcessor(renderer templates.Renderer, withAssociations bool) *GraphvizProcessor {
	var associations graphviz.AssociationsBuilder = graphviz.NoAssociations{}
	if withAssociations {
		associations = graphviz.EdgesBuilder{}
	}
	return &GraphvizProcessor{
		builder: graphviz.NewDigraphBuilder(associations),
		printer: graphviz.NewDigraphPrinter(renderer),
	}
}

// Name implements Processor.
func (p *GraphvizProcessor) Name() string { return "graphviz" }

// AcceptedInputTypes implements Processor.
func (p *GraphvizProcessor) AcceptedInputTypes() []ContentType { return []ContentType{Code} }

// OutputType implements Processor.
func (p *GraphvizProcessor) OutputType() ContentType { return Dot }

// Process returns the DOT text of the codebase.
func (p *GraphvizProcessor) Process(codebase *code.Codebase) (string, error) {
	return p.printer.ToDot(p.builder.Build(codebase))
}
