package graphviz

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/phuml-go/internal/code"
	"github.com/Benny93/phuml-go/internal/templates"
)

// nameRenderer renders a label holding only the definition name.
type nameRenderer struct{}

func (nameRenderer) Render(_ string, context any) (string, error) {
	return "<table><tr><td>" + context.(code.Definition).Name() + "</td></tr></table>", nil
}

// failingRenderer fails every render with err.
type failingRenderer struct {
	err error
}

func (r failingRenderer) Render(string, any) (string, error) {
	return "", r.err
}

var header = regexp.MustCompile(`^digraph "[0-9a-f]{40}" \{\n`)

const layoutLines = "splines = true;\noverlap = false;\nmindist = 0.6;\n"

func TestDigraphPrinter_ToDot(t *testing.T) {
	t.Parallel()

	printer := NewDigraphPrinter(nameRenderer{})

	t.Run("EmptyDigraph", func(t *testing.T) {
		t.Parallel()
		dot, err := printer.ToDot(NewDigraph())
		require.NoError(t, err)

		assert.Regexp(t, header, dot)
		assert.True(t, strings.HasSuffix(dot, " {\n"+layoutLines+"}"))
	})

	t.Run("SingleClass", func(t *testing.T) {
		t.Parallel()
		g := NewDigraph()
		g.Add(NewNode(code.NewClass("TestClass")))

		dot, err := printer.ToDot(g)
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(dot, " {\n"+layoutLines+
			"\"101\" [label=<<table><tr><td>TestClass</td></tr></table>> shape=plaintext]\n}"))
	})

	t.Run("SeveralDefinitions", func(t *testing.T) {
		t.Parallel()
		codebase, _ := scenario()

		dot, err := printer.ToDot(NewDigraphBuilder(EdgesBuilder{}).Build(codebase))
		require.NoError(t, err)

		assert.Regexp(t, header, dot)
		assert.True(t, strings.HasSuffix(dot, " {\n"+layoutLines+
			`"101" [label=<<table><tr><td>AReference</td></tr></table>> shape=plaintext]`+"\n"+
			`"1" [label=<<table><tr><td>ParentInterface</td></tr></table>> shape=plaintext]`+"\n"+
			`"2" [label=<<table><tr><td>ChildInterface</td></tr></table>> shape=plaintext]`+"\n"+
			`"3" [label=<<table><tr><td>AnotherInterface</td></tr></table>> shape=plaintext]`+"\n"+
			`"102" [label=<<table><tr><td>ParentClass</td></tr></table>> shape=plaintext]`+"\n"+
			`"103" [label=<<table><tr><td>TestClass</td></tr></table>> shape=plaintext]`+"\n"+
			`"1" -> "2" [dir=back arrowtail=empty style=solid]`+"\n"+
			`"101" -> "103" [dir=back arrowtail=none style=solid]`+"\n"+
			`"102" -> "103" [dir=back arrowtail=empty style=solid]`+"\n"+
			`"2" -> "103" [dir=back arrowtail=normal style=dashed]`+"\n"+
			`"3" -> "103" [dir=back arrowtail=normal style=dashed]`+"\n"+
			"}"), dot)
	})

	t.Run("DuplicateEdgesArePrintedOnce", func(t *testing.T) {
		t.Parallel()
		parent := code.NewClass("ParentClass")
		child := code.NewClass("Child", code.ExtendingClass(parent))
		g := NewDigraph()
		g.Add(NewNode(child), InheritanceEdge(parent, child), NewNode(child), InheritanceEdge(parent, child))

		dot, err := printer.ToDot(g)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(dot, `"102" -> "101"`))
		assert.Equal(t, 1, strings.Count(dot, `"101" [label=`))
	})

	t.Run("IsDeterministic", func(t *testing.T) {
		t.Parallel()
		first, _ := scenario()
		second, _ := scenario()

		a, err := printer.ToDot(NewDigraphBuilder(EdgesBuilder{}).Build(first))
		require.NoError(t, err)
		b, err := printer.ToDot(NewDigraphBuilder(EdgesBuilder{}).Build(second))
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("FingerprintDependsOnContent", func(t *testing.T) {
		t.Parallel()
		one := NewDigraph()
		one.Add(NewNode(code.NewClass("One")))
		two := NewDigraph()
		two.Add(NewNode(code.NewClass("Two")))

		a, err := printer.ToDot(one)
		require.NoError(t, err)
		b, err := printer.ToDot(two)
		require.NoError(t, err)

		assert.NotEqual(t, header.FindString(a), header.FindString(b))
	})
}

func TestDigraphPrinter_Labels(t *testing.T) {
	t.Parallel()

	printer := NewDigraphPrinter(templates.MustNewTemplateEngine())
	iface := code.NewInterface("AnInterface")
	class := code.NewClass("AClass", code.Implementing(iface))
	g := NewDigraphBuilder(EdgesBuilder{}).Build(codebaseOf(iface, class))

	dot, err := printer.ToDot(g)
	require.NoError(t, err)

	assert.Contains(t, dot, `"1" [label=<<TABLE CELLSPACING="0" BORDER="0" ALIGN="LEFT">`)
	assert.Contains(t, dot, `POINT-SIZE="12"><I>AnInterface</I></FONT>`)
	assert.Contains(t, dot, `POINT-SIZE="12">AClass</FONT>`)
	assert.Contains(t, dot, `</TABLE>> shape=plaintext]`)
	assert.Contains(t, dot, `"1" -> "101" [dir=back arrowtail=normal style=dashed]`)
}

func TestDigraphPrinter_TemplateFailure(t *testing.T) {
	t.Parallel()

	g := NewDigraph()
	g.Add(NewNode(code.NewClass("TestClass")))

	t.Run("FailureIsReturnedUnchanged", func(t *testing.T) {
		t.Parallel()
		failure := &templates.TemplateFailure{Template: "class", Cause: errors.New("runtime error")}

		dot, err := NewDigraphPrinter(failingRenderer{err: failure}).ToDot(g)

		assert.Empty(t, dot)
		assert.Same(t, failure, err)
	})

	t.Run("OtherErrorsAreWrapped", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("runtime error")

		dot, err := NewDigraphPrinter(failingRenderer{err: cause}).ToDot(g)

		assert.Empty(t, dot)
		var failure *templates.TemplateFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, templates.ClassTemplate, failure.Template)
		assert.ErrorIs(t, err, cause)
	})
}
