package parser

import (
	"github.com/Benny93/phuml-go/internal/code"
)

// RelationsResolver links raw definitions into code definitions.
//
// Parent and interface names are bound to the definitions they name when
// those exist in the same run and have the expected kind. Unknown names are
// dropped: analysing a subset of a larger project is expected. Attribute and
// parameter types stay plain names; associations are inferred later.
type RelationsResolver struct{}

// NewRelationsResolver creates a resolver.
func NewRelationsResolver() *RelationsResolver {
	return &RelationsResolver{}
}

// Resolve builds one definition per raw definition and returns them in a
// codebase, in raw-definition order.
func (r *RelationsResolver) Resolve(definitions *RawDefinitions) *code.Codebase {
	run := &resolution{
		raw:        definitions,
		classes:    make(map[string]*code.ClassDefinition),
		interfaces: make(map[string]*code.InterfaceDefinition),
		inProgress: make(map[string]bool),
	}

	codebase := code.NewCodebase()
	for _, raw := range definitions.All() {
		if raw.IsInterface() {
			codebase.Add(run.interfaceNamed(raw.Name))
		} else {
			codebase.Add(run.classNamed(raw.Name))
		}
	}
	return codebase
}

// resolution holds the state of a single Resolve call. Definitions are built
// on first use so that a parent always exists before its children point to it.
// PHP rejects cyclic inheritance, but the sources read here are never
// validated, so malformed input such as class A extends B and class B
// extends A can still arrive. To guarantee termination, a name that is still
// being built is treated as unknown. The cycle is cut at the reference that
// closes it, and that definition ends up with no parent.
type resolution struct {
	raw        *RawDefinitions
	classes    map[string]*code.ClassDefinition
	interfaces map[string]*code.InterfaceDefinition
	inProgress map[string]bool
}

func (r *resolution) classNamed(name string) *code.ClassDefinition {
	if class, ok := r.classes[name]; ok {
		return class
	}
	raw, ok := r.raw.Get(name)
	if !ok || raw.IsInterface() || r.inProgress[name] {
		return nil
	}

	r.inProgress[name] = true
	defer delete(r.inProgress, name)

	var parent *code.ClassDefinition
	if raw.Extends != "" {
		parent = r.classNamed(raw.Extends)
	}

	interfaces := make([]*code.InterfaceDefinition, 0, len(raw.Implements))
	for _, interfaceName := range raw.Implements {
		if iface := r.interfaceNamed(interfaceName); iface != nil {
			interfaces = append(interfaces, iface)
		}
	}

	class := code.NewClass(raw.Name,
		code.WithClassConstants(buildConstants(raw.Constants)...),
		code.WithAttributes(buildAttributes(raw.Attributes)...),
		code.WithClassMethods(buildMethods(raw.Methods)...),
		code.Implementing(interfaces...),
		code.ExtendingClass(parent),
	)
	r.classes[name] = class
	return class
}

func (r *resolution) interfaceNamed(name string) *code.InterfaceDefinition {
	if iface, ok := r.interfaces[name]; ok {
		return iface
	}
	raw, ok := r.raw.Get(name)
	if !ok || !raw.IsInterface() || r.inProgress[name] {
		return nil
	}

	r.inProgress[name] = true
	defer delete(r.inProgress, name)

	var parent *code.InterfaceDefinition
	if raw.Extends != "" {
		parent = r.interfaceNamed(raw.Extends)
	}

	iface := code.NewInterface(raw.Name,
		code.WithInterfaceConstants(buildConstants(raw.Constants)...),
		code.WithInterfaceMethods(buildMethods(raw.Methods)...),
		code.ExtendingInterface(parent),
	)
	r.interfaces[name] = iface
	return iface
}

func buildConstants(raw []RawConstant) []code.Constant {
	constants := make([]code.Constant, 0, len(raw))
	for _, c := range raw {
		constants = append(constants, code.Constant{
			Name:     c.Name,
			Type:     code.TypeDeclaration(c.Type),
			Modifier: code.ModifierFrom(c.Modifier),
		})
	}
	return constants
}

func buildAttributes(raw []RawAttribute) []code.Attribute {
	attributes := make([]code.Attribute, 0, len(raw))
	for _, a := range raw {
		attributes = append(attributes, code.Attribute{
			Variable: code.Variable{Name: a.Name, Type: code.TypeDeclaration(a.Type)},
			Modifier: code.ModifierFrom(a.Modifier),
		})
	}
	return attributes
}

func buildMethods(raw []RawMethod) []code.Method {
	methods := make([]code.Method, 0, len(raw))
	for _, m := range raw {
		params := make([]code.Parameter, 0, len(m.Parameters))
		for _, p := range m.Parameters {
			params = append(params, code.Parameter{Name: p.Name, Type: code.TypeDeclaration(p.Type)})
		}
		methods = append(methods, code.Method{
			Name:       m.Name,
			Modifier:   code.ModifierFrom(m.Modifier),
			Parameters: params,
		})
	}
	return methods
}
