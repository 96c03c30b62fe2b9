// Package graphviz builds the Graphviz digraph of a codebase and prints it
// in the DOT language.
//
// Builders turn every definition of a code.Codebase into graph elements:
// nodes for the definitions and edges for inheritance, interface
// implementation and associations. A Digraph collects the elements,
// assigning each definition a stable numeric identity, and a DigraphPrinter
// writes the result.
package graphviz

import (
	"github.com/Benny93/phuml-go/internal/code"
)

// Element is a Node or an Edge.
type Element interface {
	element()
}

// Node is the graph element of a single definition.
type Node struct {
	// Definition is the class or interface the node represents.
	Definition code.Definition

	// ID is the identity assigned by the Digraph. It is zero until the
	// node has been added to a Digraph.
	ID int
}

// NewNode creates the node of a definition.
func NewNode(d code.Definition) Node {
	return Node{Definition: d}
}

func (Node) element() {}

// EdgeKind is the relation an edge represents.
type EdgeKind int

const (
	Inheritance EdgeKind = iota + 1
	Implementation
	Association
)

// String returns the relation name.
func (k EdgeKind) String() string {
	switch k {
	case Inheritance:
		return "inheritance"
	case Implementation:
		return "implementation"
	case Association:
		return "association"
	default:
		return "unknown"
	}
}

// Arrowtail returns the Graphviz arrow shape drawn at the source end.
func (k EdgeKind) Arrowtail() string {
	switch k {
	case Inheritance:
		return "empty"
	case Implementation:
		return "normal"
	default:
		return "none"
	}
}

// Style returns the Graphviz line style.
func (k EdgeKind) Style() string {
	if k == Implementation {
		return "dashed"
	}
	return "solid"
}

// Edge is a directed relation between two definitions. The source is the
// definition pointed to: the parent, the implemented interface or the
// referenced type. Edges are comparable; two edges are equal when they have
// the same kind and endpoints.
type Edge struct {
	Kind   EdgeKind
	Source code.Definition
	Target code.Definition
}

// InheritanceEdge links a parent to the definition extending it.
func InheritanceEdge(parent, child code.Definition) Edge {
	return Edge{Kind: Inheritance, Source: parent, Target: child}
}

// ImplementationEdge links an interface to a class implementing it.
func ImplementationEdge(iface *code.InterfaceDefinition, class *code.ClassDefinition) Edge {
	return Edge{Kind: Implementation, Source: iface, Target: class}
}

// AssociationEdge links a referenced definition to the class referencing it.
func AssociationEdge(referenced code.Definition, class *code.ClassDefinition) Edge {
	return Edge{Kind: Association, Source: referenced, Target: class}
}

func (Edge) element() {}
