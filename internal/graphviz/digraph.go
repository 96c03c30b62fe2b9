package graphviz

import (
	"github.com/Benny93/phuml-go/internal/code"
)

// First identities of each kind of definition.
const (
	FirstInterfaceID = 1
	FirstClassID     = 101
)

// Digraph is the set of nodes and edges of one diagram.
//
// Every definition gets a numeric identity the first time it is seen, either
// as a node or as an edge endpoint. Interfaces are numbered from
// FirstInterfaceID and classes from FirstClassID. Identities never change and
// nothing is ever removed. A Digraph is not safe for concurrent use; build a
// new one for every diagram.
type Digraph struct {
	ids   map[code.Definition]int
	nodes []Node
	edges []Edge
	seen  map[Edge]struct{}

	nextInterfaceID int
	nextClassID     int
}

// NewDigraph creates an empty digraph.
func NewDigraph() *Digraph {
	return &Digraph{
		ids:             make(map[code.Definition]int),
		seen:            make(map[Edge]struct{}),
		nextInterfaceID: FirstInterfaceID,
		nextClassID:     FirstClassID,
	}
}

// Add inserts nodes and edges in order. A node for a definition already in the
// digraph and an edge equal to one already added are ignored. Adding an edge
// adds the nodes of its source and target first.
func (g *Digraph) Add(elements ...Element) {
	for _, e := range elements {
		switch e := e.(type) {
		case Node:
			g.addNode(e.Definition)
		case Edge:
			g.addEdge(e)
		}
	}
}

func (g *Digraph) addNode(d code.Definition) int {
	if d == nil {
		return 0
	}
	if id, ok := g.ids[d]; ok {
		return id
	}

	var id int
	if _, ok := d.(*code.InterfaceDefinition); ok {
		id = g.nextInterfaceID
		g.nextInterfaceID++
	} else {
		id = g.nextClassID
		g.nextClassID++
	}

	g.ids[d] = id
	g.nodes = append(g.nodes, Node{Definition: d, ID: id})
	return id
}

func (g *Digraph) addEdge(e Edge) {
	if e.Source == nil || e.Target == nil {
		return
	}
	if _, ok := g.seen[e]; ok {
		return
	}

	g.addNode(e.Source)
	g.addNode(e.Target)
	g.seen[e] = struct{}{}
	g.edges = append(g.edges, e)
}

// Nodes returns the nodes in the order they were added.
func (g *Digraph) Nodes() []Node {
	return g.nodes
}

// Edges returns the edges in the order they were added.
func (g *Digraph) Edges() []Edge {
	return g.edges
}

// ID returns the identity of a definition.
func (g *Digraph) ID(d code.Definition) (int, bool) {
	id, ok := g.ids[d]
	return id, ok
}

// Has reports whether the digraph holds a node for the definition.
func (g *Digraph) Has(d code.Definition) bool {
	_, ok := g.ids[d]
	return ok
}
