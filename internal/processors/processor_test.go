package processors

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/phuml-go/internal/code"
	"github.com/Benny93/phuml-go/internal/templates"
)

func sampleCodebase() *code.Codebase {
	repository := code.NewInterface("Repository",
		code.WithInterfaceMethods(code.Method{Name: "find", Modifier: code.Public, Parameters: []code.Parameter{{Name: "$id", Type: "int"}}}),
	)
	entity := code.NewClass("Entity",
		code.WithClassConstants(code.Constant{Name: "VERSION", Type: "int"}),
		code.WithAttributes(code.Attribute{Variable: code.Variable{Name: "$id", Type: "int"}, Modifier: code.Protected}),
	)
	service := code.NewClass("Service",
		code.WithAttributes(
			code.Attribute{Variable: code.Variable{Name: "$repository", Type: "Repository"}, Modifier: code.Private},
			code.Attribute{Variable: code.Variable{Name: "$cache"}, Modifier: code.Public},
		),
		code.WithClassMethods(
			code.Method{Name: code.ConstructorName, Modifier: code.Public, Parameters: []code.Parameter{{Name: "$repository", Type: "Repository"}}},
			code.Method{Name: "load", Modifier: code.Private, Parameters: []code.Parameter{{Name: "$key"}}},
		),
		code.ExtendingClass(entity),
	)

	codebase := code.NewCodebase()
	codebase.Add(repository)
	codebase.Add(entity)
	codebase.Add(service)
	return codebase
}

func TestNewChain(t *testing.T) {
	t.Parallel()

	graphviz := NewGraphvizProcessor(templates.MustNewTemplateEngine(), true)

	t.Run("Compatible", func(t *testing.T) {
		t.Parallel()
		chain, err := NewChain(graphviz, NewDotProcessor(""))
		require.NoError(t, err)

		assert.Len(t, chain.Processors(), 2)
		assert.Equal(t, PNG, chain.OutputType())
	})

	t.Run("SingleStage", func(t *testing.T) {
		t.Parallel()
		chain, err := NewChain(NewStatisticsProcessor())
		require.NoError(t, err)

		assert.Equal(t, Text, chain.OutputType())
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		chain, err := NewChain()
		require.NoError(t, err)

		assert.Empty(t, chain.OutputType())
	})

	t.Run("Incompatible", func(t *testing.T) {
		t.Parallel()
		chain, err := NewChain(NewStatisticsProcessor(), NewNeatoProcessor(""))

		assert.Nil(t, chain)
		var incompatible *IncompatibleProcessorsError
		require.ErrorAs(t, err, &incompatible)
		assert.Equal(t, "statistics", incompatible.Previous)
		assert.Equal(t, "neato", incompatible.Next)
		assert.Equal(t, Text, incompatible.Output)
		assert.Equal(t, "processor statistics produces text but neato accepts only [dot]", err.Error())
	})

	t.Run("ImageCannotBeRenderedAgain", func(t *testing.T) {
		t.Parallel()
		_, err := NewChain(graphviz, NewDotProcessor(""), NewNeatoProcessor(""))

		var incompatible *IncompatibleProcessorsError
		assert.ErrorAs(t, err, &incompatible)
	})
}

func TestGraphvizProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("WithAssociations", func(t *testing.T) {
		t.Parallel()
		p := NewGraphvizProcessor(templates.MustNewTemplateEngine(), true)

		dot, err := p.Process(sampleCodebase())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(dot, "digraph \""))
		assert.Contains(t, dot, `"101" -> "102" [dir=back arrowtail=empty style=solid]`)
		assert.Contains(t, dot, `"1" -> "102" [dir=back arrowtail=none style=solid]`)
		assert.Equal(t, 1, strings.Count(dot, `"1" -> "102"`), "attribute and constructor associations are merged")
	})

	t.Run("WithoutAssociations", func(t *testing.T) {
		t.Parallel()
		p := NewGraphvizProcessor(templates.MustNewTemplateEngine(), false)

		dot, err := p.Process(sampleCodebase())
		require.NoError(t, err)

		assert.NotContains(t, dot, "arrowtail=none")
		assert.Contains(t, dot, "arrowtail=empty")
	})

	t.Run("Metadata", func(t *testing.T) {
		t.Parallel()
		p := NewGraphvizProcessor(templates.MustNewTemplateEngine(), true)

		assert.Equal(t, "graphviz", p.Name())
		assert.Equal(t, []ContentType{Code}, p.AcceptedInputTypes())
		assert.Equal(t, Dot, p.OutputType())
	})
}

func TestCollectStatistics(t *testing.T) {
	t.Parallel()

	s := CollectStatistics(sampleCodebase())

	assert.Equal(t, 2, s.Classes)
	assert.Equal(t, 1, s.Interfaces)
	assert.Equal(t, 1, s.Constants)
	assert.Equal(t, VisibilityCount{Private: 1, Protected: 1, Public: 1}, s.Attributes)
	assert.Equal(t, 2, s.TypedAttributes)
	assert.Equal(t, VisibilityCount{Private: 1, Public: 2}, s.Methods)
	assert.Equal(t, 3, s.Parameters)
	assert.Equal(t, 2, s.TypedParameters)
	assert.InDelta(t, 1.5, s.AttributesPerClass, 0.001)
	assert.InDelta(t, 1.5, s.MethodsPerClass, 0.001)

	assert.Zero(t, CollectStatistics(code.NewCodebase()).AttributesPerClass)
}

func TestStatisticsProcessor_Process(t *testing.T) {
	t.Parallel()

	report, err := NewStatisticsProcessor().Process(sampleCodebase())
	require.NoError(t, err)

	assert.Contains(t, report, "Classes:    2\n")
	assert.Contains(t, report, "Interfaces: 1\n")
	assert.Contains(t, report, "Attributes: 3 (2 are typed)\n")
	assert.Contains(t, report, "Functions:  3\n")
	assert.Contains(t, report, "Attributes per class: 1.50\n")
}

// fakeBinary writes a shell script that records its arguments, or fails when
// exitCode is not zero.
func fakeBinary(t *testing.T, exitCode int) (binary, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	binary = filepath.Join(dir, "fake-dot")
	script := "#!/bin/sh\n" +
		"echo \"$@\" > " + argsFile + "\n" +
		"echo 'syntax error in line 1' >&2\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))
	return binary, argsFile
}

func TestExternalCommandProcessor_Execute(t *testing.T) {
	// Subtests run sequentially: executing a freshly written script while
	// another goroutine forks can fail with ETXTBSY.
	t.Run("Success", func(t *testing.T) {
		binary, argsFile := fakeBinary(t, 0)
		p := NewDotProcessor(binary)

		require.NoError(t, p.Execute(t.Context(), "in.dot", "out.png", PNG))

		args, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		assert.Equal(t, "-Tpng -o out.png in.dot\n", string(args))
	})

	t.Run("CommandFails", func(t *testing.T) {
		binary, _ := fakeBinary(t, 1)
		p := NewNeatoProcessor(binary)

		err := p.Execute(t.Context(), "in.dot", "out.png", PNG)

		var failure *ExecutionFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "syntax error in line 1", failure.Output)
		assert.Contains(t, failure.Command, "-Tpng -o out.png in.dot")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("MissingBinary", func(t *testing.T) {
		p := NewDotProcessor(filepath.Join(t.TempDir(), "missing"))

		err := p.Execute(t.Context(), "in.dot", "out.png", PNG)

		var failure *ExecutionFailure
		require.ErrorAs(t, err, &failure)
		assert.Error(t, failure.Unwrap())
	})

	t.Run("Defaults", func(t *testing.T) {
		dot, neato := NewDotProcessor(""), NewNeatoProcessor("")

		assert.Equal(t, DefaultDotBinary, dot.binary)
		assert.Equal(t, DefaultNeatoBinary, neato.binary)
		assert.Equal(t, []ContentType{Dot}, dot.AcceptedInputTypes())
		assert.Equal(t, PNG, neato.OutputType())
	})
}
