package autowire

import "strings"

// Directives are the already-decoded injection annotations of a method or property.
type Directives struct {
	// Inject marks the member for injection and carries its raw hints.
	Inject *InjectDirective
	// Optional is unset (nil), explicitly true, or explicitly false.
	Optional *bool
	// Strict controls the strictness of emitted references. Defaults to true.
	Strict *bool
}

func (d Directives) strict() bool {
	return d.Strict == nil || *d.Strict
}

func (d Directives) optional() bool {
	return d.Optional != nil && *d.Optional
}

// InjectDirective holds raw hints keyed by position or by parameter name.
//
// Each value is either a string using the sigil convention
// ("@service.id", "%parameter.name%", anything else is a literal) or a non-string literal.
type InjectDirective struct {
	Values []any
	Named  map[string]any
}

// Inject returns an inject directive with positional hints.
func Inject(values ...any) *InjectDirective {
	return &InjectDirective{Values: values}
}

// InjectNamed returns an inject directive with hints keyed by parameter name.
func InjectNamed(named map[string]any) *InjectDirective {
	return &InjectDirective{Named: named}
}

// Bool returns a pointer to b. Use it to set tri-state directive flags.
func Bool(b bool) *bool {
	return &b
}

// ServiceDirective declares a class as a service.
type ServiceDirective struct {
	// ID is the explicit service id. When empty an id is derived from the class name.
	ID string
	// Public defaults to true.
	Public   *bool
	Tags     []Tag
	Lifetime Lifetime
	// File is included before the service is instantiated.
	File string
	// Factory is "method" (static factory on the class), "Class::method" or "@service::method".
	Factory string
	// Configurator uses the same syntax as Factory.
	Configurator string
}

func (d *ServiceDirective) public() bool {
	return d.Public == nil || *d.Public
}

// Callable references a factory or configurator.
type Callable struct {
	// Service is set when the callable is a method on another service.
	Service string
	// Class is set when the callable is a static method.
	Class  string
	Method string
}

func (c *Callable) String() string {
	if c == nil {
		return ""
	}
	if c.Service != "" {
		return "@" + c.Service + "::" + c.Method
	}
	if c.Class != "" {
		return c.Class + "::" + c.Method
	}
	return c.Method
}

// ParseCallable parses the factory/configurator syntax.
// A bare method name is bound to defaultClass.
func ParseCallable(s, defaultClass string) *Callable {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	target, method, found := strings.Cut(s, "::")
	if !found {
		return &Callable{Class: defaultClass, Method: s}
	}
	if strings.HasPrefix(target, ReferenceSigil) {
		return &Callable{Service: strings.TrimPrefix(target, ReferenceSigil), Method: method}
	}
	return &Callable{Class: target, Method: method}
}
