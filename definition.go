package autowire

import (
	"fmt"
	"slices"
)

// Definition is the registry's record of how to construct and configure one service.
type Definition struct {
	// Class is the concrete type, or a "%parameter%" placeholder resolving to one.
	Class string
	// Parent is the id of the definition this one decorates.
	Parent       string
	Factory      *Callable
	Configurator *Callable

	Arguments   []Argument
	MethodCalls []MethodCall
	Properties  map[string]Argument

	Tags      []Tag
	Public    bool
	Abstract  bool
	Synthetic bool
	Lifetime  Lifetime
	File      string
}

// NewDefinition returns a public definition for the given class.
func NewDefinition(class string) *Definition {
	return &Definition{
		Class:  class,
		Public: true,
	}
}

// HasMethodCall reports whether a call to the named method is configured.
func (d *Definition) HasMethodCall(method string) bool {
	return slices.ContainsFunc(d.MethodCalls, func(c MethodCall) bool {
		return c.Method == method
	})
}

// HasProperty reports whether a value is configured for the named property.
func (d *Definition) HasProperty(name string) bool {
	_, ok := d.Properties[name]
	return ok
}

// Clone returns a deep copy of the slices and maps of the definition.
// Argument values are shared.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Arguments = slices.Clone(d.Arguments)
	c.Tags = slices.Clone(d.Tags)

	if d.MethodCalls != nil {
		c.MethodCalls = make([]MethodCall, len(d.MethodCalls))
		for i, mc := range d.MethodCalls {
			c.MethodCalls[i] = MethodCall{Method: mc.Method, Arguments: slices.Clone(mc.Arguments)}
		}
	}
	if d.Properties != nil {
		c.Properties = make(map[string]Argument, len(d.Properties))
		for k, v := range d.Properties {
			c.Properties[k] = v
		}
	}
	if d.Factory != nil {
		f := *d.Factory
		c.Factory = &f
	}
	if d.Configurator != nil {
		cfg := *d.Configurator
		c.Configurator = &cfg
	}

	return &c
}

// MethodCall is a method invoked on the service after construction.
type MethodCall struct {
	Method    string
	Arguments []Argument
}

// Alias is an alternative id for a definition.
type Alias struct {
	ID     string
	Target string
	Public bool
}

// InvalidBehavior governs what the container does when a referenced service is missing.
type InvalidBehavior uint8

const (
	// ExceptionOnInvalidReference fails container validation when the target is missing.
	ExceptionOnInvalidReference InvalidBehavior = iota
	// NullOnInvalidReference injects null when the target is missing.
	NullOnInvalidReference
	// IgnoreOnInvalidReference drops the argument or call when the target is missing.
	IgnoreOnInvalidReference
)

func (b InvalidBehavior) String() string {
	switch b {
	case ExceptionOnInvalidReference:
		return "exception"
	case NullOnInvalidReference:
		return "null"
	case IgnoreOnInvalidReference:
		return "ignore"
	default:
		return fmt.Sprintf("Unknown InvalidBehavior %d", b)
	}
}

// ArgumentKind is the tag of the [Argument] union.
type ArgumentKind uint8

const (
	// ReferenceArgument points at a service id.
	ReferenceArgument ArgumentKind = iota + 1
	// ParameterArgument points at a configuration parameter.
	ParameterArgument
	// ValueArgument carries an inline value.
	ValueArgument
)

// Argument is one injected value: a service reference, a parameter or an inline value.
type Argument struct {
	Kind ArgumentKind
	// ID is the service id or parameter name.
	ID       string
	Behavior InvalidBehavior
	Strict   bool
	Value    any
}

// Reference returns a strict reference that fails when the target is missing.
func Reference(id string) Argument {
	return Argument{Kind: ReferenceArgument, ID: id, Strict: true}
}

// ReferenceWith returns a reference with the given behavior and strictness.
func ReferenceWith(id string, behavior InvalidBehavior, strict bool) Argument {
	return Argument{Kind: ReferenceArgument, ID: id, Behavior: behavior, Strict: strict}
}

// Parameter returns an argument pointing at a configuration parameter.
func Parameter(name string) Argument {
	return Argument{Kind: ParameterArgument, ID: name}
}

// Value returns an inline argument.
func Value(v any) Argument {
	return Argument{Kind: ValueArgument, Value: v}
}

// IsReference reports whether the argument points at a service.
func (a Argument) IsReference() bool { return a.Kind == ReferenceArgument }

// IsParameter reports whether the argument points at a parameter.
func (a Argument) IsParameter() bool { return a.Kind == ParameterArgument }

// String renders the argument in sigil notation: "@id", "@?id" (null if missing),
// "@!id" (ignored if missing), "%name%" or the value.
func (a Argument) String() string {
	switch a.Kind {
	case ReferenceArgument:
		switch a.Behavior {
		case NullOnInvalidReference:
			return ReferenceSigil + "?" + a.ID
		case IgnoreOnInvalidReference:
			return ReferenceSigil + "!" + a.ID
		}
		return ReferenceSigil + a.ID
	case ParameterArgument:
		return ParameterSigil + a.ID + ParameterSigil
	default:
		return fmt.Sprint(a.Value)
	}
}
