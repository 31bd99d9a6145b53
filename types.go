package autowire

import (
	"slices"
	"strings"
)

// TypeCatalog answers type-hierarchy questions for the classname index and the injectors.
type TypeCatalog interface {
	// Exists reports whether the class or interface is known.
	Exists(name string) bool
	// IsInterface reports whether name is a known interface.
	IsInterface(name string) bool
	// Implements reports whether class implements iface, directly,
	// through an inherited base class or through interface inheritance.
	Implements(class, iface string) bool
}

// TypeDeclaration declares a class or interface that is not part of the resolved batch.
type TypeDeclaration struct {
	Name string
	// Interface marks an interface declaration.
	Interface bool
	// Base is the parent class. Unused for interfaces.
	Base string
	// Interfaces are the implemented interfaces, or the extended ones for an interface.
	Interfaces []string
}

// Types is an in-memory [TypeCatalog].
type Types struct {
	decls map[string]TypeDeclaration
}

var _ TypeCatalog = (*Types)(nil)

// NewTypes returns a catalog holding the given declarations.
func NewTypes(decls ...TypeDeclaration) *Types {
	t := &Types{decls: make(map[string]TypeDeclaration, len(decls))}
	for _, d := range decls {
		t.Declare(d)
	}
	return t
}

// Declare adds or replaces a declaration.
func (t *Types) Declare(d TypeDeclaration) {
	d.Name = normalizeClass(d.Name)
	d.Base = normalizeClass(d.Base)
	if len(d.Interfaces) > 0 {
		ifaces := make([]string, len(d.Interfaces))
		for i, name := range d.Interfaces {
			ifaces[i] = normalizeClass(name)
		}
		d.Interfaces = ifaces
	}
	t.decls[d.Name] = d
}

// DeclareClass adds a declaration for a class descriptor.
func (t *Types) DeclareClass(c *ClassDescriptor) {
	t.Declare(TypeDeclaration{
		Name:       c.Name,
		Base:       c.Base,
		Interfaces: c.Interfaces,
	})
}

// declareIfMissing adds a bare class declaration unless name is already known.
func (t *Types) declareIfMissing(name string) {
	name = normalizeClass(name)
	if _, ok := t.decls[name]; !ok && name != "" {
		t.decls[name] = TypeDeclaration{Name: name}
	}
}

// Names returns every declared name in sorted order.
func (t *Types) Names() []string {
	names := make([]string, 0, len(t.decls))
	for name := range t.decls {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Exists implements [TypeCatalog].
func (t *Types) Exists(name string) bool {
	_, ok := t.decls[normalizeClass(name)]
	return ok
}

// IsInterface implements [TypeCatalog].
func (t *Types) IsInterface(name string) bool {
	d, ok := t.decls[normalizeClass(name)]
	return ok && d.Interface
}

// Implements implements [TypeCatalog].
func (t *Types) Implements(class, iface string) bool {
	class = normalizeClass(class)
	iface = normalizeClass(iface)
	if class == iface {
		return false
	}

	visited := make(map[string]struct{})
	queue := []string{class}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if _, seen := visited[name]; seen {
			continue
		}
		visited[name] = struct{}{}

		d, ok := t.decls[name]
		if !ok {
			continue
		}
		if slices.Contains(d.Interfaces, iface) {
			return true
		}

		queue = append(queue, d.Interfaces...)
		if d.Base != "" {
			queue = append(queue, d.Base)
		}
	}

	return false
}

// clone returns a copy the pass can extend without touching t.
func (t *Types) clone() *Types {
	c := &Types{decls: make(map[string]TypeDeclaration, len(t.decls))}
	for k, v := range t.decls {
		c.decls[k] = v
	}
	return c
}

// normalizeClass strips the leading namespace separator of a fully-qualified name.
func normalizeClass(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), `\`)
}
