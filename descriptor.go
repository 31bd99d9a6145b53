package autowire

import (
	"strings"

	"github.com/sectrean/autowire/internal/errors"
)

// ClassDescriptor describes one discovered class and the directives attached to it.
//
// Descriptors are produced outside of this package (see the manifest package)
// and are treated as immutable by the [Resolver].
type ClassDescriptor struct {
	// Name is the fully-qualified class name.
	Name string
	// Base is the fully-qualified name of the parent class, if any.
	Base string
	// Interfaces lists the interfaces the class declares.
	Interfaces []string
	// Abstract marks a class that cannot be instantiated.
	Abstract bool

	// Service is the service-identity directive. Classes without one are not wired.
	Service *ServiceDirective

	// Constructor is nil when the class has no declared constructor.
	Constructor *MethodDescriptor
	Methods     []MethodDescriptor
	Properties  []PropertyDescriptor
}

// MethodDescriptor describes a method signature.
type MethodDescriptor struct {
	Name       string
	Parameters []ParameterDescriptor
	Static     bool
	Abstract   bool
	Destructor bool
	Directives Directives
}

// PropertyDescriptor describes an instance property.
type PropertyDescriptor struct {
	Name string
	// Type is optional. When set, literal hints are coerced to it.
	Type       TypeRef
	Static     bool
	Directives Directives
}

// ParameterDescriptor describes a single method parameter.
type ParameterDescriptor struct {
	Name     string
	Type     TypeRef
	Nullable bool
	Variadic bool
	// HasDefault reports whether the parameter declares a default value.
	HasDefault bool
	Default    any
}

// Optional reports whether the parameter can be omitted by the caller.
func (p ParameterDescriptor) Optional() bool {
	return p.HasDefault || p.Variadic
}

// TypeRef is a declared type. The zero value is an untyped declaration.
type TypeRef struct {
	Name   string
	Scalar bool
}

// ClassType returns a reference to a class or interface type.
func ClassType(name string) TypeRef {
	return TypeRef{Name: name}
}

// ScalarType returns a reference to a builtin scalar type.
func ScalarType(name string) TypeRef {
	return TypeRef{Name: name, Scalar: true}
}

// IsObject reports whether the type names a class or interface.
func (t TypeRef) IsObject() bool {
	return t.Name != "" && !t.Scalar
}

func (t TypeRef) String() string {
	if t.Name == "" {
		return "untyped"
	}
	return t.Name
}

var scalarTypes = map[string]bool{
	"string":   true,
	"int":      true,
	"integer":  true,
	"int64":    true,
	"float":    true,
	"float64":  true,
	"double":   true,
	"bool":     true,
	"boolean":  true,
	"array":    true,
	"mixed":    true,
	"any":      true,
	"callable": true,
	"iterable": true,
}

// ParseTypeRef builds a TypeRef from a declared type name.
// Builtin scalar names are recognised case-insensitively, a leading "?" is ignored.
func ParseTypeRef(name string) TypeRef {
	name = strings.TrimPrefix(strings.TrimSpace(name), "?")
	if name == "" {
		return TypeRef{}
	}
	if scalarTypes[strings.ToLower(name)] {
		return ScalarType(strings.ToLower(name))
	}
	return ClassType(name)
}

func (c *ClassDescriptor) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.Wrap(ErrInvalidDescriptor, "class name is empty")
	}
	if c.Base == c.Name {
		return errors.Wrapf(ErrInvalidDescriptor, "class %s extends itself", c.Name)
	}

	seen := make(map[string]struct{}, len(c.Methods))
	for _, m := range c.Methods {
		if m.Name == "" {
			return errors.Wrapf(ErrInvalidDescriptor, "class %s: method name is empty", c.Name)
		}
		if _, dup := seen[m.Name]; dup {
			return errors.Wrapf(ErrInvalidDescriptor, "class %s: method %s declared twice", c.Name, m.Name)
		}
		seen[m.Name] = struct{}{}
	}

	return nil
}
