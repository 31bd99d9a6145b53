package autowire

import (
	"reflect"
	"strings"

	"github.com/golobby/cast"
	"go.uber.org/zap"
)

// pass is the transient state of one resolution pass.
type pass struct {
	reg      Registry
	settings Settings
	logger   *zap.Logger
	types    *Types
	index    *ClassnameIndex
	namer    ParameterNamer
	maxDepth int

	// identities caches class name -> service id for the current batch.
	identities map[string]string
	generated  []string
}

// behavior computes how a reference tolerates a missing target.
//
//	optional  default/variadic  nullable  behavior
//	unset     yes               -         ignore
//	true      yes               -         ignore
//	unset     no                yes       null
//	true      no                yes       null
//	true      no                no        ErrNonOptionalArgument
//	false     -                 -         exception
//	unset     no                no        exception
func behavior(d Directives, p ParameterDescriptor) (InvalidBehavior, error) {
	explicit := d.Optional != nil
	switch {
	case explicit && !*d.Optional:
		return ExceptionOnInvalidReference, nil
	case p.Optional():
		return IgnoreOnInvalidReference, nil
	case p.Nullable:
		return NullOnInvalidReference, nil
	case explicit:
		return 0, ErrNonOptionalArgument
	default:
		return ExceptionOnInvalidReference, nil
	}
}

// fallback is the argument used when a tolerated resource is missing.
// It reports false when the parameter is dropped.
func fallback(p ParameterDescriptor, b InvalidBehavior) (Argument, bool) {
	switch {
	case b == NullOnInvalidReference:
		return Value(nil), true
	case p.HasDefault:
		return Value(p.Default), true
	case p.Variadic:
		return Argument{}, false
	default:
		return Value(nil), true
	}
}

// resolveArguments runs the per-argument algorithm over every parameter of m.
// Arguments are returned in declaration order.
func (p *pass) resolveArguments(ref memberRef, m *MethodDescriptor, wireByType bool) ([]Argument, error) {
	hints := NewHintMap(m.Directives.Inject, m.Parameters)
	args := make([]Argument, 0, len(m.Parameters))

	for i, param := range m.Parameters {
		arg, ok, err := p.resolveArgument(ref, hints, i, param, m.Directives, wireByType)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		args = append(args, arg)
	}

	return args, nil
}

func (p *pass) resolveArgument(
	ref memberRef,
	hints HintMap,
	i int,
	param ParameterDescriptor,
	d Directives,
	wireByType bool,
) (Argument, bool, error) {
	target := "$" + param.Name

	if r, ok := hints.Resource(i); ok {
		return p.resolveHintedArgument(ref, target, r, param, d)
	}

	if !param.Type.IsObject() {
		if param.HasDefault {
			return Value(nil), true, nil
		}
		return Argument{}, false, ref.fail(target, param.Type.String(), ErrMissingIdentifier)
	}
	if !wireByType {
		if param.HasDefault {
			return Value(nil), true, nil
		}
		return Argument{}, false, ref.fail(target, param.Type.Name, ErrMissingIdentifier)
	}

	b, err := behavior(d, param)
	if err != nil {
		return Argument{}, false, ref.fail(target, param.Type.Name, err)
	}

	id, status := p.index.Lookup(param.Type.Name)
	switch status {
	case Found:
		return ReferenceWith(id, b, d.strict()), true, nil
	case Ambiguous:
		return Argument{}, false, ref.fail(target, param.Type.Name, ErrAmbiguousServiceReference)
	}

	if !p.types.Exists(param.Type.Name) {
		return Argument{}, false, ref.fail(target, param.Type.Name, ErrTypenameMismatch)
	}

	// A type lookup with no match fails whatever the behavior.
	return Argument{}, false, ref.fail(target, param.Type.Name, ErrUnresolvedReference)
}

func (p *pass) resolveHintedArgument(
	ref memberRef,
	target string,
	r Resource,
	param ParameterDescriptor,
	d Directives,
) (Argument, bool, error) {
	switch r.Kind {
	case ServiceResource:
		if r.Name == "" {
			return Argument{}, false, ref.fail(target, r.String(), ErrMissingIdentifier)
		}

		b, err := behavior(d, param)
		if err != nil {
			return Argument{}, false, ref.fail(target, r.Name, err)
		}
		if !p.reg.Has(r.Name) && b == ExceptionOnInvalidReference {
			return Argument{}, false, ref.fail(target, r.Name, ErrUnresolvedReference)
		}
		return ReferenceWith(r.Name, b, d.strict()), true, nil

	case ParameterResource:
		if r.Name == "" {
			return Argument{}, false, ref.fail(target, r.String(), ErrMissingIdentifier)
		}

		b, err := behavior(d, param)
		if err != nil {
			return Argument{}, false, ref.fail(target, r.Name, err)
		}
		if p.reg.HasParameter(r.Name) {
			return Parameter(r.Name), true, nil
		}
		if b == ExceptionOnInvalidReference {
			return Argument{}, false, ref.fail(target, r.Name, ErrUnresolvedParameter)
		}
		arg, ok := fallback(param, b)
		return arg, ok, nil

	default:
		value, err := coerce(r.Value, param.Type)
		if err != nil {
			return Argument{}, false, ref.fail(target, r.Name, err)
		}
		return Parameter(p.promote(value)), true, nil
	}
}

// promote stores a literal in a freshly named parameter and returns the name.
// Names already present in the registry are skipped.
func (p *pass) promote(value any) string {
	name := p.namer.Next(value)
	for p.reg.HasParameter(name) {
		name = p.namer.Next(value)
	}

	p.reg.SetParameter(name, value)
	p.generated = append(p.generated, name)
	return name
}

var scalarKinds = map[string]reflect.Type{
	"int":     reflect.TypeFor[int](),
	"integer": reflect.TypeFor[int](),
	"int64":   reflect.TypeFor[int64](),
	"float":   reflect.TypeFor[float64](),
	"float64": reflect.TypeFor[float64](),
	"double":  reflect.TypeFor[float64](),
	"bool":    reflect.TypeFor[bool](),
	"boolean": reflect.TypeFor[bool](),
}

// coerce converts a string literal to the declared numeric or boolean scalar type.
// Other values are returned unchanged.
func coerce(v any, t TypeRef) (any, error) {
	s, ok := v.(string)
	if !ok || !t.Scalar {
		return v, nil
	}

	typ, ok := scalarKinds[t.Name]
	if !ok {
		return v, nil
	}

	out, err := cast.FromType(strings.TrimSpace(s), typ)
	if err != nil {
		return nil, ErrTypenameMismatch
	}
	return out, nil
}
