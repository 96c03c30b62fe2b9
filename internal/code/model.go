// Package code provides the structural model of an object-oriented codebase.
//
// It defines classes and interfaces together with their members (constants,
// attributes, methods and parameters) and the Codebase that stores every
// definition discovered in one analysis run.
package code

import (
	"fmt"
	"strings"
)

// Modifier is the visibility of a member.
type Modifier string

const (
	Private   Modifier = "private"
	Protected Modifier = "protected"
	Public    Modifier = "public"
)

// ModifierFrom converts a raw visibility keyword into a Modifier.
// Anything that is not private or protected is public.
func ModifierFrom(keyword string) Modifier {
	switch Modifier(strings.ToLower(strings.TrimSpace(keyword))) {
	case Private:
		return Private
	case Protected:
		return Protected
	default:
		return Public
	}
}

// Symbol returns the UML glyph for the modifier.
func (m Modifier) Symbol() string {
	switch m {
	case Private:
		return "-"
	case Protected:
		return "#"
	default:
		return "+"
	}
}

// builtInTypes are the scalar and pseudo types that never name a definition.
var builtInTypes = map[string]bool{
	"int":      true,
	"integer":  true,
	"float":    true,
	"double":   true,
	"bool":     true,
	"boolean":  true,
	"string":   true,
	"array":    true,
	"callable": true,
	"iterable": true,
	"object":   true,
	"mixed":    true,
	"void":     true,
	"null":     true,
	"never":    true,
	"false":    true,
	"true":     true,
	"resource": true,
	"self":     true,
	"static":   true,
	"parent":   true,
}

// TypeDeclaration is the optional type of a variable. The zero value means
// the variable is untyped.
type TypeDeclaration string

// IsPresent reports whether a type was declared.
func (t TypeDeclaration) IsPresent() bool {
	return t != ""
}

// IsBuiltIn reports whether the type is a scalar or pseudo type.
func (t TypeDeclaration) IsBuiltIn() bool {
	return builtInTypes[strings.ToLower(string(t))]
}

// IsReference reports whether the type may name another definition.
func (t TypeDeclaration) IsReference() bool {
	return t.IsPresent() && !t.IsBuiltIn()
}

// Variable is a named value with an optional type.
type Variable struct {
	Name string
	Type TypeDeclaration
}

// Parameter is a method parameter.
type Parameter = Variable

// String renders the variable as "name: type", or just "name" when untyped.
func (v Variable) String() string {
	if !v.Type.IsPresent() {
		return v.Name
	}
	return v.Name + ": " + string(v.Type)
}

// Attribute is a class property.
type Attribute struct {
	Variable
	Modifier Modifier
}

// String renders the attribute with its visibility glyph.
func (a Attribute) String() string {
	return a.Modifier.Symbol() + a.Variable.String()
}

// Constant is a class or interface constant. A constant without a modifier
// is public.
type Constant struct {
	Name     string
	Type     TypeDeclaration
	Modifier Modifier
}

// String renders the constant with its visibility glyph.
func (c Constant) String() string {
	return c.Modifier.Symbol() + Variable{Name: c.Name, Type: c.Type}.String()
}

// ConstructorName is the reserved name of a constructor.
const ConstructorName = "__construct"

// Method is a class or interface method.
type Method struct {
	Name       string
	Modifier   Modifier
	Parameters []Parameter
}

// IsConstructor reports whether the method is the constructor.
func (m Method) IsConstructor() bool {
	return m.Name == ConstructorName
}

// String renders the method signature, e.g. "#setCategory(category: string)".
func (m Method) String() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s%s(%s)", m.Modifier.Symbol(), m.Name, strings.Join(params, ", "))
}
