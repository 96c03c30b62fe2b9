package code

// Definition is either a class or an interface.
type Definition interface {
	// Name is the unique key of the definition within a Codebase.
	Name() string

	// Methods returns the methods in declaration order.
	Methods() []Method

	// Constants returns the constants in declaration order.
	Constants() []Constant

	// HasParent reports whether the definition extends a resolved parent.
	HasParent() bool

	definition()
}

// ClassOption configures a ClassDefinition at construction time.
type ClassOption func(*ClassDefinition)

// InterfaceOption configures an InterfaceDefinition at construction time.
type InterfaceOption func(*InterfaceDefinition)

// ClassDefinition is a class. It is immutable once built.
type ClassDefinition struct {
	name       string
	constants  []Constant
	attributes []Attribute
	methods    []Method
	implements []*InterfaceDefinition
	parent     *ClassDefinition
}

// NewClass builds a class with the given name and options.
func NewClass(name string, opts ...ClassOption) *ClassDefinition {
	c := &ClassDefinition{name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithClassConstants sets the constants of a class.
func WithClassConstants(constants ...Constant) ClassOption {
	return func(c *ClassDefinition) {
		c.constants = append(c.constants, constants...)
	}
}

// WithAttributes sets the attributes of a class.
func WithAttributes(attributes ...Attribute) ClassOption {
	return func(c *ClassDefinition) {
		c.attributes = append(c.attributes, attributes...)
	}
}

// WithClassMethods sets the methods of a class.
func WithClassMethods(methods ...Method) ClassOption {
	return func(c *ClassDefinition) {
		c.methods = append(c.methods, methods...)
	}
}

// Implementing sets the interfaces a class implements, in declaration order.
// Nil entries are ignored.
func Implementing(interfaces ...*InterfaceDefinition) ClassOption {
	return func(c *ClassDefinition) {
		for _, i := range interfaces {
			if i != nil {
				c.implements = append(c.implements, i)
			}
		}
	}
}

// ExtendingClass sets the parent of a class.
func ExtendingClass(parent *ClassDefinition) ClassOption {
	return func(c *ClassDefinition) {
		c.parent = parent
	}
}

func (c *ClassDefinition) definition() {}

// Name returns the class name.
func (c *ClassDefinition) Name() string { return c.name }

// Constants returns the class constants.
func (c *ClassDefinition) Constants() []Constant { return c.constants }

// Attributes returns the class attributes.
func (c *ClassDefinition) Attributes() []Attribute { return c.attributes }

// Methods returns the class methods.
func (c *ClassDefinition) Methods() []Method { return c.methods }

// Implements returns the resolved interfaces of the class.
func (c *ClassDefinition) Implements() []*InterfaceDefinition { return c.implements }

// Parent returns the resolved parent class, or nil.
func (c *ClassDefinition) Parent() *ClassDefinition { return c.parent }

// HasParent reports whether the class extends a resolved class.
func (c *ClassDefinition) HasParent() bool { return c.parent != nil }

// Constructor returns the class constructor if it declares one.
func (c *ClassDefinition) Constructor() (Method, bool) {
	for _, m := range c.methods {
		if m.IsConstructor() {
			return m, true
		}
	}
	return Method{}, false
}

// InterfaceDefinition is an interface. It is immutable once built.
type InterfaceDefinition struct {
	name      string
	constants []Constant
	methods   []Method
	parent    *InterfaceDefinition
}

// NewInterface builds an interface with the given name and options.
func NewInterface(name string, opts ...InterfaceOption) *InterfaceDefinition {
	i := &InterfaceDefinition{name: name}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// WithInterfaceConstants sets the constants of an interface.
func WithInterfaceConstants(constants ...Constant) InterfaceOption {
	return func(i *InterfaceDefinition) {
		i.constants = append(i.constants, constants...)
	}
}

// WithInterfaceMethods sets the methods of an interface.
func WithInterfaceMethods(methods ...Method) InterfaceOption {
	return func(i *InterfaceDefinition) {
		i.methods = append(i.methods, methods...)
	}
}

// ExtendingInterface sets the parent of an interface.
func ExtendingInterface(parent *InterfaceDefinition) InterfaceOption {
	return func(i *InterfaceDefinition) {
		i.parent = parent
	}
}

func (i *InterfaceDefinition) definition() {}

// Name returns the interface name.
func (i *InterfaceDefinition) Name() string { return i.name }

// Constants returns the interface constants.
func (i *InterfaceDefinition) Constants() []Constant { return i.constants }

// Methods returns the interface methods.
func (i *InterfaceDefinition) Methods() []Method { return i.methods }

// Parent returns the resolved parent interface, or nil.
func (i *InterfaceDefinition) Parent() *InterfaceDefinition { return i.parent }

// HasParent reports whether the interface extends a resolved interface.
func (i *InterfaceDefinition) HasParent() bool { return i.parent != nil }
