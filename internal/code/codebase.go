package code

// Codebase is the name-keyed store of every definition of an analysis run.
//
// Definitions keep their insertion order. Adding a definition whose name is
// already present replaces it in place. A Codebase is populated once by the
// relations resolver and is read-only afterwards.
type Codebase struct {
	byName map[string]Definition
	order  []string
}

// NewCodebase creates an empty codebase.
func NewCodebase() *Codebase {
	return &Codebase{
		byName: make(map[string]Definition),
	}
}

// Add stores a definition under its name.
func (c *Codebase) Add(d Definition) {
	if _, ok := c.byName[d.Name()]; !ok {
		c.order = append(c.order, d.Name())
	}
	c.byName[d.Name()] = d
}

// Get returns the definition with the given name.
func (c *Codebase) Get(name string) (Definition, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Has reports whether a definition with the given name exists.
func (c *Codebase) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Len returns the number of definitions.
func (c *Codebase) Len() int {
	return len(c.order)
}

// All returns every definition in insertion order.
func (c *Codebase) All() []Definition {
	result := make([]Definition, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, c.byName[name])
	}
	return result
}

// Classes returns the classes in insertion order.
func (c *Codebase) Classes() []*ClassDefinition {
	var result []*ClassDefinition
	for _, name := range c.order {
		if class, ok := c.byName[name].(*ClassDefinition); ok {
			result = append(result, class)
		}
	}
	return result
}

// Interfaces returns the interfaces in insertion order.
func (c *Codebase) Interfaces() []*InterfaceDefinition {
	var result []*InterfaceDefinition
	for _, name := range c.order {
		if iface, ok := c.byName[name].(*InterfaceDefinition); ok {
			result = append(result, iface)
		}
	}
	return result
}
