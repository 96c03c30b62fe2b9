package graphviz

import (
	"crypto/sha1" //nolint:gosec // names the graph, not used for security
	"errors"
	"fmt"
	"strings"

	"github.com/Benny93/phuml-go/internal/code"
	"github.com/Benny93/phuml-go/internal/templates"
)

// Layout directives written before any node or edge.
const layout = "splines = true;\noverlap = false;\nmindist = 0.6;\n"

// DigraphPrinter writes a Digraph in the DOT language.
type DigraphPrinter struct {
	renderer templates.Renderer
}

// NewDigraphPrinter creates a printer that renders node labels with renderer.
func NewDigraphPrinter(renderer templates.Renderer) *DigraphPrinter {
	return &DigraphPrinter{renderer: renderer}
}

// ToDot returns the DOT representation of the digraph: nodes first, then
// edges, each in the order they were added. The graph is named after the
// SHA-1 of its nodes and edges, so printing the same digraph always yields the
// same text. A label that cannot be rendered fails the whole print.
func (p *DigraphPrinter) ToDot(g *Digraph) (string, error) {
	var body strings.Builder

	for _, node := range g.Nodes() {
		label, err := p.label(node.Definition)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&body, "\"%d\" [label=<%s> shape=plaintext]\n", node.ID, label)
	}

	for _, edge := range g.Edges() {
		source, _ := g.ID(edge.Source)
		target, _ := g.ID(edge.Target)
		fmt.Fprintf(&body, "\"%d\" -> \"%d\" [dir=back arrowtail=%s style=%s]\n",
			source, target, edge.Kind.Arrowtail(), edge.Kind.Style())
	}

	var dot strings.Builder
	fmt.Fprintf(&dot, "digraph \"%x\" {\n", sha1.Sum([]byte(body.String())))
	dot.WriteString(layout)
	dot.WriteString(body.String())
	dot.WriteString("}")
	return dot.String(), nil
}

func (p *DigraphPrinter) label(d code.Definition) (string, error) {
	name := templates.ClassTemplate
	if _, ok := d.(*code.InterfaceDefinition); ok {
		name = templates.InterfaceTemplate
	}

	label, err := p.renderer.Render(name, d)
	if err != nil {
		var failure *templates.TemplateFailure
		if errors.As(err, &failure) {
			return "", err
		}
		return "", &templates.TemplateFailure{Template: name, Cause: err}
	}
	return label, nil
}
