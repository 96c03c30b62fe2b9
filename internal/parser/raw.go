// Package parser turns source files into a resolved code.Codebase.
//
// Front-ends (Traverser implementations) produce name-only raw facts for
// every class and interface they find. The RelationsResolver then links
// those facts into code definitions.
package parser

// Kind is the kind of a raw definition.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
)

// RawDefinition is a pre-resolution, name-only description of a class or
// interface as delivered by a front-end.
type RawDefinition struct {
	Kind       Kind           `json:"kind"`
	Name       string         `json:"name"`
	Constants  []RawConstant  `json:"constants,omitempty"`
	Attributes []RawAttribute `json:"attributes,omitempty"`
	Methods    []RawMethod    `json:"methods,omitempty"`
	Extends    string         `json:"extends,omitempty"`
	Implements []string       `json:"implements,omitempty"`
}

// RawConstant is a constant declaration.
type RawConstant struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Modifier string `json:"modifier,omitempty"`
}

// RawAttribute is a property declaration.
type RawAttribute struct {
	Name     string `json:"name"`
	Modifier string `json:"modifier,omitempty"`
	Type     string `json:"type,omitempty"`
}

// RawMethod is a method declaration.
type RawMethod struct {
	Name       string         `json:"name"`
	Modifier   string         `json:"modifier,omitempty"`
	Parameters []RawParameter `json:"parameters,omitempty"`
}

// RawParameter is a method parameter.
type RawParameter struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// IsInterface reports whether the raw definition describes an interface.
func (d RawDefinition) IsInterface() bool {
	return d.Kind == KindInterface
}

// RawDefinitions is an ordered, name-keyed store of raw definitions.
// A later definition with an existing name replaces the earlier one but
// keeps its position.
type RawDefinitions struct {
	byName map[string]RawDefinition
	order  []string
}

// NewRawDefinitions creates an empty store.
func NewRawDefinitions() *RawDefinitions {
	return &RawDefinitions{
		byName: make(map[string]RawDefinition),
	}
}

// Add stores the given definitions. Definitions without a name are ignored.
func (r *RawDefinitions) Add(definitions ...RawDefinition) {
	for _, d := range definitions {
		if d.Name == "" {
			continue
		}
		if _, ok := r.byName[d.Name]; !ok {
			r.order = append(r.order, d.Name)
		}
		r.byName[d.Name] = d
	}
}

// Get returns the raw definition with the given name.
func (r *RawDefinitions) Get(name string) (RawDefinition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// All returns the raw definitions in insertion order.
func (r *RawDefinitions) All() []RawDefinition {
	result := make([]RawDefinition, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.byName[name])
	}
	return result
}

// Len returns the number of raw definitions.
func (r *RawDefinitions) Len() int {
	return len(r.order)
}
