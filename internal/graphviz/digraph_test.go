package graphviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/phuml-go/internal/code"
)

func ids(t *testing.T, g *Digraph, definitions ...code.Definition) []int {
	t.Helper()
	var result []int
	for _, d := range definitions {
		id, ok := g.ID(d)
		require.True(t, ok, "no node for %s", d.Name())
		result = append(result, id)
	}
	return result
}

func TestDigraph_Add(t *testing.T) {
	t.Parallel()

	t.Run("SingleClass", func(t *testing.T) {
		t.Parallel()
		class := code.NewClass("TestClass")
		g := NewDigraph()

		g.Add(NewNode(class))

		require.Len(t, g.Nodes(), 1)
		assert.Equal(t, 101, g.Nodes()[0].ID)
		assert.Same(t, class, g.Nodes()[0].Definition)
		assert.Empty(t, g.Edges())
	})

	t.Run("PartitionsIdentitiesByKind", func(t *testing.T) {
		t.Parallel()
		i1, i2, i3 := code.NewInterface("I1"), code.NewInterface("I2"), code.NewInterface("I3")
		c1, c2 := code.NewClass("C1"), code.NewClass("C2")
		g := NewDigraph()

		g.Add(NewNode(c1), NewNode(i1), NewNode(i2), NewNode(c2), NewNode(i3))

		assert.Equal(t, []int{1, 2, 3}, ids(t, g, i1, i2, i3))
		assert.Equal(t, []int{101, 102}, ids(t, g, c1, c2))
	})

	t.Run("ReinsertingANodeKeepsItsIdentity", func(t *testing.T) {
		t.Parallel()
		class := code.NewClass("TestClass")
		other := code.NewClass("Other")
		g := NewDigraph()

		g.Add(NewNode(class), NewNode(other), NewNode(class))

		assert.Len(t, g.Nodes(), 2)
		assert.Equal(t, []int{101, 102}, ids(t, g, class, other))
	})

	t.Run("DuplicateEdgesAreIgnored", func(t *testing.T) {
		t.Parallel()
		parent := code.NewClass("Parent")
		child := code.NewClass("Child", code.ExtendingClass(parent))
		g := NewDigraph()

		g.Add(InheritanceEdge(parent, child), InheritanceEdge(parent, child))

		assert.Len(t, g.Edges(), 1)
	})

	t.Run("EdgesOfDifferentKindsAreDistinct", func(t *testing.T) {
		t.Parallel()
		a, b := code.NewClass("A"), code.NewClass("B")
		g := NewDigraph()

		g.Add(InheritanceEdge(a, b), AssociationEdge(a, b), AssociationEdge(b, a))

		assert.Len(t, g.Edges(), 3)
	})

	t.Run("EdgeEndpointsReceiveIdentitiesOnFirstTouch", func(t *testing.T) {
		t.Parallel()
		reference := code.NewClass("AReference")
		class := code.NewClass("TestClass")
		g := NewDigraph()

		g.Add(AssociationEdge(reference, class), NewNode(class), NewNode(reference))

		assert.Equal(t, []int{101, 102}, ids(t, g, reference, class))
		require.Len(t, g.Nodes(), 2)
		assert.Same(t, reference, g.Nodes()[0].Definition)
	})

	t.Run("IgnoresMissingDefinitions", func(t *testing.T) {
		t.Parallel()
		g := NewDigraph()

		g.Add(NewNode(nil), Edge{Kind: Association, Target: code.NewClass("A")})

		assert.Empty(t, g.Nodes())
		assert.Empty(t, g.Edges())
		assert.False(t, g.Has(code.NewClass("A")))
	})
}

func TestEdgeKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind      EdgeKind
		name      string
		arrowtail string
		style     string
	}{
		{Inheritance, "inheritance", "empty", "solid"},
		{Implementation, "implementation", "normal", "dashed"},
		{Association, "association", "none", "solid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.arrowtail, tt.kind.Arrowtail())
			assert.Equal(t, tt.style, tt.kind.Style())
		})
	}
}
