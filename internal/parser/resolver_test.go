package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/phuml-go/internal/code"
)

func resolve(raw ...RawDefinition) *code.Codebase {
	definitions := NewRawDefinitions()
	definitions.Add(raw...)
	return NewRelationsResolver().Resolve(definitions)
}

func classIn(t *testing.T, codebase *code.Codebase, name string) *code.ClassDefinition {
	t.Helper()
	d, ok := codebase.Get(name)
	require.True(t, ok, "missing %s", name)
	class, ok := d.(*code.ClassDefinition)
	require.True(t, ok, "%s is not a class", name)
	return class
}

func interfaceIn(t *testing.T, codebase *code.Codebase, name string) *code.InterfaceDefinition {
	t.Helper()
	d, ok := codebase.Get(name)
	require.True(t, ok, "missing %s", name)
	iface, ok := d.(*code.InterfaceDefinition)
	require.True(t, ok, "%s is not an interface", name)
	return iface
}

func TestRelationsResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("BuildsMembers", func(t *testing.T) {
		t.Parallel()
		codebase := resolve(RawDefinition{
			Kind:       KindClass,
			Name:       "AClass",
			Constants:  []RawConstant{{Name: "NUMERIC", Type: "int"}, {Name: "SECRET", Modifier: "private"}},
			Attributes: []RawAttribute{{Name: "$age", Modifier: "private", Type: "int"}},
			Methods: []RawMethod{{
				Name:       "setAge",
				Modifier:   "protected",
				Parameters: []RawParameter{{Name: "$age", Type: "int"}},
			}},
		})

		class := classIn(t, codebase, "AClass")
		assert.Equal(t, []code.Constant{
			{Name: "NUMERIC", Type: "int", Modifier: code.Public},
			{Name: "SECRET", Modifier: code.Private},
		}, class.Constants())
		assert.Equal(t, []code.Attribute{{
			Variable: code.Variable{Name: "$age", Type: "int"},
			Modifier: code.Private,
		}}, class.Attributes())
		assert.Equal(t, "#setAge($age: int)", class.Methods()[0].String())
	})

	t.Run("BindsParentsAndInterfaces", func(t *testing.T) {
		t.Parallel()
		codebase := resolve(
			RawDefinition{Kind: KindClass, Name: "TestClass", Extends: "ParentClass", Implements: []string{"ChildInterface", "AnotherInterface"}},
			RawDefinition{Kind: KindClass, Name: "ParentClass"},
			RawDefinition{Kind: KindInterface, Name: "ChildInterface", Extends: "ParentInterface"},
			RawDefinition{Kind: KindInterface, Name: "ParentInterface"},
			RawDefinition{Kind: KindInterface, Name: "AnotherInterface"},
		)

		class := classIn(t, codebase, "TestClass")
		assert.Same(t, classIn(t, codebase, "ParentClass"), class.Parent())
		require.Len(t, class.Implements(), 2)
		assert.Same(t, interfaceIn(t, codebase, "ChildInterface"), class.Implements()[0])
		assert.Same(t, interfaceIn(t, codebase, "AnotherInterface"), class.Implements()[1])
		assert.Same(t, interfaceIn(t, codebase, "ParentInterface"), interfaceIn(t, codebase, "ChildInterface").Parent())

		names := make([]string, 0, codebase.Len())
		for _, d := range codebase.All() {
			names = append(names, d.Name())
		}
		assert.Equal(t, []string{"TestClass", "ParentClass", "ChildInterface", "ParentInterface", "AnotherInterface"}, names)
	})

	t.Run("DropsUnknownReferences", func(t *testing.T) {
		t.Parallel()
		codebase := resolve(
			RawDefinition{Kind: KindClass, Name: "TestClass", Extends: "Unknown", Implements: []string{"Missing", "Known"}},
			RawDefinition{Kind: KindInterface, Name: "Known", Extends: "Vendor\\Interface"},
		)

		class := classIn(t, codebase, "TestClass")
		assert.False(t, class.HasParent())
		require.Len(t, class.Implements(), 1)
		assert.Equal(t, "Known", class.Implements()[0].Name())
		assert.False(t, interfaceIn(t, codebase, "Known").HasParent())
		assert.Equal(t, 2, codebase.Len())
	})

	t.Run("DropsReferencesOfTheWrongKind", func(t *testing.T) {
		t.Parallel()
		codebase := resolve(
			RawDefinition{Kind: KindClass, Name: "TestClass", Extends: "AnInterface", Implements: []string{"AClass"}},
			RawDefinition{Kind: KindClass, Name: "AClass"},
			RawDefinition{Kind: KindInterface, Name: "AnInterface", Extends: "AClass"},
		)

		class := classIn(t, codebase, "TestClass")
		assert.False(t, class.HasParent())
		assert.Empty(t, class.Implements())
		assert.False(t, interfaceIn(t, codebase, "AnInterface").HasParent())
	})

	t.Run("KeepsTypesAsNames", func(t *testing.T) {
		t.Parallel()
		codebase := resolve(
			RawDefinition{Kind: KindClass, Name: "TestClass", Attributes: []RawAttribute{{Name: "$ref", Type: "AReference"}}},
			RawDefinition{Kind: KindClass, Name: "AReference"},
		)

		class := classIn(t, codebase, "TestClass")
		assert.Equal(t, code.TypeDeclaration("AReference"), class.Attributes()[0].Type)
	})

	t.Run("CutsInheritanceCycles", func(t *testing.T) {
		t.Parallel()
		codebase := resolve(
			RawDefinition{Kind: KindClass, Name: "A", Extends: "B"},
			RawDefinition{Kind: KindClass, Name: "B", Extends: "A"},
			RawDefinition{Kind: KindClass, Name: "Self", Extends: "Self"},
		)

		a := classIn(t, codebase, "A")
		b := classIn(t, codebase, "B")
		assert.Same(t, b, a.Parent())
		assert.False(t, b.HasParent())
		assert.False(t, classIn(t, codebase, "Self").HasParent())
	})
}

func TestRawDefinitions(t *testing.T) {
	t.Parallel()

	definitions := NewRawDefinitions()
	definitions.Add(
		RawDefinition{Kind: KindClass, Name: "A"},
		RawDefinition{Kind: KindClass, Name: ""},
		RawDefinition{Kind: KindClass, Name: "B"},
		RawDefinition{Kind: KindInterface, Name: "A"},
	)

	assert.Equal(t, 2, definitions.Len())
	all := definitions.All()
	assert.Equal(t, "A", all[0].Name)
	assert.True(t, all[0].IsInterface())
	assert.Equal(t, "B", all[1].Name)

	_, ok := definitions.Get("C")
	assert.False(t, ok)
}
