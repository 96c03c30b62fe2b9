package graphviz

import (
	"github.com/Benny93/phuml-go/internal/code"
)

// InheritanceEdges returns the edge from the parent of a definition to the
// definition, if it has a resolved parent.
func InheritanceEdges(d code.Definition) []Element {
	switch d := d.(type) {
	case *code.ClassDefinition:
		if d.HasParent() {
			return []Element{InheritanceEdge(d.Parent(), d)}
		}
	case *code.InterfaceDefinition:
		if d.HasParent() {
			return []Element{InheritanceEdge(d.Parent(), d)}
		}
	}
	return nil
}

// ImplementationEdges returns one edge per interface the class implements, in
// declaration order.
func ImplementationEdges(class *code.ClassDefinition) []Element {
	var elements []Element
	for _, iface := range class.Implements() {
		elements = append(elements, ImplementationEdge(iface, class))
	}
	return elements
}

// AssociationsBuilder discovers the associations of a class.
type AssociationsBuilder interface {
	// FromAttributes returns the associations implied by typed attributes.
	FromAttributes(class *code.ClassDefinition, codebase *code.Codebase) []Element

	// FromConstructor returns the associations implied by typed constructor
	// parameters.
	FromConstructor(class *code.ClassDefinition, codebase *code.Codebase) []Element
}

// EdgesBuilder creates an association edge for every attribute or constructor
// parameter whose type names a definition in the codebase.
type EdgesBuilder struct{}

// FromAttributes implements AssociationsBuilder.
func (EdgesBuilder) FromAttributes(class *code.ClassDefinition, codebase *code.Codebase) []Element {
	var elements []Element
	for _, attribute := range class.Attributes() {
		if edge, ok := association(attribute.Variable, class, codebase); ok {
			elements = append(elements, edge)
		}
	}
	return elements
}

// FromConstructor implements AssociationsBuilder.
func (EdgesBuilder) FromConstructor(class *code.ClassDefinition, codebase *code.Codebase) []Element {
	constructor, ok := class.Constructor()
	if !ok {
		return nil
	}

	var elements []Element
	for _, parameter := range constructor.Parameters {
		if edge, ok := association(parameter, class, codebase); ok {
			elements = append(elements, edge)
		}
	}
	return elements
}

func association(v code.Variable, class *code.ClassDefinition, codebase *code.Codebase) (Element, bool) {
	if !v.Type.IsReference() {
		return nil, false
	}
	referenced, ok := codebase.Get(string(v.Type))
	if !ok {
		return nil, false
	}
	return AssociationEdge(referenced, class), true
}

// NoAssociations is the AssociationsBuilder used when associations are not
// drawn.
type NoAssociations struct{}

// FromAttributes implements AssociationsBuilder.
func (NoAssociations) FromAttributes(*code.ClassDefinition, *code.Codebase) []Element { return nil }

// FromConstructor implements AssociationsBuilder.
func (NoAssociations) FromConstructor(*code.ClassDefinition, *code.Codebase) []Element { return nil }

// ClassGraphBuilder extracts the elements of a class.
type ClassGraphBuilder struct {
	associations AssociationsBuilder
}

// NewClassGraphBuilder creates a class builder. A nil associations builder
// draws no associations.
func NewClassGraphBuilder(associations AssociationsBuilder) *ClassGraphBuilder {
	if associations == nil {
		associations = NoAssociations{}
	}
	return &ClassGraphBuilder{associations: associations}
}

// Extract returns the associations of the class (from its attributes, then
// its constructor), its node, its inheritance edge and its implementation
// edges.
func (b *ClassGraphBuilder) Extract(class *code.ClassDefinition, codebase *code.Codebase) []Element {
	var elements []Element
	elements = append(elements, b.associations.FromAttributes(class, codebase)...)
	elements = append(elements, b.associations.FromConstructor(class, codebase)...)
	elements = append(elements, NewNode(class))
	elements = append(elements, InheritanceEdges(class)...)
	elements = append(elements, ImplementationEdges(class)...)
	return elements
}

// InterfaceGraphBuilder extracts the elements of an interface.
type InterfaceGraphBuilder struct{}

// Extract returns the node of the interface and its inheritance edge.
func (InterfaceGraphBuilder) Extract(iface *code.InterfaceDefinition) []Element {
	return append([]Element{NewNode(iface)}, InheritanceEdges(iface)...)
}

// DigraphBuilder builds the digraph of a whole codebase.
type DigraphBuilder struct {
	classes    *ClassGraphBuilder
	interfaces InterfaceGraphBuilder
}

// NewDigraphBuilder creates a builder that draws associations with the given
// builder.
func NewDigraphBuilder(associations AssociationsBuilder) *DigraphBuilder {
	return &DigraphBuilder{classes: NewClassGraphBuilder(associations)}
}

// Build extracts the elements of every definition, in codebase order, into a
// new Digraph.
func (b *DigraphBuilder) Build(codebase *code.Codebase) *Digraph {
	digraph := NewDigraph()
	for _, definition := range codebase.All() {
		switch d := definition.(type) {
		case *code.ClassDefinition:
			digraph.Add(b.classes.Extract(d, codebase)...)
		case *code.InterfaceDefinition:
			digraph.Add(b.interfaces.Extract(d)...)
		}
	}
	return digraph
}
