package autowire

import (
	"fmt"
	"strings"
)

const (
	// ReferenceSigil prefixes a service id in a hint: "@service.id".
	ReferenceSigil = "@"
	// ParameterSigil wraps a parameter name in a hint: "%parameter.name%".
	ParameterSigil = "%"
)

// ResourceKind classifies a hint.
type ResourceKind uint8

const (
	// LiteralResource is an inline value.
	LiteralResource ResourceKind = iota
	// ServiceResource targets a service id.
	ServiceResource
	// ParameterResource targets a configuration parameter.
	ParameterResource
)

func (k ResourceKind) String() string {
	switch k {
	case LiteralResource:
		return "literal"
	case ServiceResource:
		return "service"
	case ParameterResource:
		return "parameter"
	default:
		return fmt.Sprintf("Unknown ResourceKind %d", k)
	}
}

// Resource is a classified hint value.
type Resource struct {
	Kind ResourceKind
	// Name is the service id or parameter name with sigils stripped.
	// For literals it is the literal rendered as a string.
	Name string
	// Value is the raw literal. It is only set for literals.
	Value any
}

// ParseResource classifies a raw hint value by the sigil convention.
//
// Strings starting with "@" are service references, strings wrapped in "%"
// are parameters, everything else (including non-string values) is a literal.
func ParseResource(raw any) Resource {
	s, ok := raw.(string)
	if !ok {
		return Resource{Kind: LiteralResource, Name: literalName(raw), Value: raw}
	}

	switch {
	case strings.HasPrefix(s, ReferenceSigil):
		return Resource{Kind: ServiceResource, Name: strings.TrimPrefix(s, ReferenceSigil)}
	case len(s) >= 2 && strings.HasPrefix(s, ParameterSigil) && strings.HasSuffix(s, ParameterSigil):
		return Resource{Kind: ParameterResource, Name: s[1 : len(s)-1]}
	default:
		return Resource{Kind: LiteralResource, Name: s, Value: s}
	}
}

func (r Resource) String() string {
	switch r.Kind {
	case ServiceResource:
		return ReferenceSigil + r.Name
	case ParameterResource:
		return ParameterSigil + r.Name + ParameterSigil
	default:
		return r.Name
	}
}

func literalName(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
