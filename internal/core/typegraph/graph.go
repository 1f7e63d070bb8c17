package typegraph

import "fmt"

// Class describes one actor type in the registration-time type graph.
// Classes are created once by Graph.Register and compared by pointer.
type Class struct {
	name     string
	parent   *Class
	abstract bool
	traits   Traits
}

func (c *Class) Name() string   { return c.name }
func (c *Class) Parent() *Class { return c.parent }
func (c *Class) Abstract() bool { return c.abstract }

// IsA reports whether c is other or a descendant of other.
func (c *Class) IsA(other *Class) bool {
	for it := c; it != nil; it = it.parent {
		if it == other {
			return true
		}
	}
	return false
}

// Ancestry returns the class chain from c up to (but excluding) the graph
// root, most-derived first. The root itself has an empty ancestry.
func (c *Class) Ancestry() []*Class {
	var chain []*Class
	for it := c; it != nil && it.parent != nil; it = it.parent {
		chain = append(chain, it)
	}
	return chain
}

// Graph is the actor type graph. All classes descend from a single abstract
// root. Registration happens once at startup; the graph is read-only after
// worlds start populating.
type Graph struct {
	root    *Class
	classes map[string]*Class
}

// NewGraph creates a graph with a single abstract root class.
func NewGraph(rootName string) *Graph {
	root := &Class{name: rootName, abstract: true}
	return &Graph{
		root:    root,
		classes: map[string]*Class{rootName: root},
	}
}

func (g *Graph) Root() *Class { return g.root }

// Lookup returns the class registered under name, or nil.
func (g *Graph) Lookup(name string) *Class {
	return g.classes[name]
}

// Register adds a new class under parent. A nil parent registers directly
// under the root.
func (g *Graph) Register(name string, parent *Class, opts ...ClassOption) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("register class: empty name")
	}
	if _, exists := g.classes[name]; exists {
		return nil, fmt.Errorf("register class %s: already registered", name)
	}
	if parent == nil {
		parent = g.root
	}
	if g.classes[parent.name] != parent {
		return nil, fmt.Errorf("register class %s: parent %s not in graph", name, parent.name)
	}
	c := &Class{name: name, parent: parent}
	for _, opt := range opts {
		opt(c)
	}
	g.classes[name] = c
	return c, nil
}

// ClassOption configures a class at registration time.
type ClassOption func(*Class)

// Abstract marks the class abstract. Abstract classes never become final
// parents unless they override the predicate explicitly.
func Abstract() ClassOption {
	return func(c *Class) { c.abstract = true }
}

// WithTraits installs trait overrides at registration time.
func WithTraits(t Traits) ClassOption {
	return func(c *Class) { c.traits = t }
}
