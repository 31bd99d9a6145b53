package autowire

import (
	"fmt"
	"strings"

	"github.com/sectrean/autowire/internal/errors"
)

var (
	// ErrMissingIdentifier is returned when a member has no usable hint and no type to fall back on.
	ErrMissingIdentifier = errors.New("missing identifier")
	// ErrUnresolvedReference is returned when a hint or type lookup names a service that does not exist.
	ErrUnresolvedReference = errors.New("unresolved service reference")
	// ErrUnresolvedParameter is returned when a hint names a configuration parameter that does not exist.
	ErrUnresolvedParameter = errors.New("unresolved parameter")
	// ErrAmbiguousServiceReference is returned when a type lookup matches more than one service.
	ErrAmbiguousServiceReference = errors.New("ambiguous service reference")
	// ErrNonOptionalArgument is returned when an optional directive is applied to a parameter
	// that cannot represent absence.
	ErrNonOptionalArgument = errors.New("argument cannot be optional")
	// ErrDuplicateServiceID is returned when two classes resolve to the same service id.
	ErrDuplicateServiceID = errors.New("duplicate service id")
	// ErrArgumentsAlreadyDefined is returned when autowiring would replace manually configured
	// constructor arguments.
	ErrArgumentsAlreadyDefined = errors.New("arguments already defined")
	// ErrMethodCallAlreadyDefined is returned when a method call is registered twice for a definition.
	ErrMethodCallAlreadyDefined = errors.New("method call already defined")
	// ErrPropertyAlreadyDefined is returned when an injected property already has a configured value.
	ErrPropertyAlreadyDefined = errors.New("property already defined")
	// ErrTypenameMismatch is returned when a declared type cannot be resolved,
	// or a literal does not fit the declared scalar type.
	ErrTypenameMismatch = errors.New("typename mismatch")

	// ErrDefinitionNotFound is returned when an alias or parent points to a missing definition.
	ErrDefinitionNotFound = errors.New("definition not found")
	// ErrDefinitionCycle is returned when a parent, factory or base class chain loops.
	ErrDefinitionCycle = errors.New("definition cycle detected")
	// ErrChainTooDeep is returned when a parent, factory or base class chain exceeds the depth bound.
	ErrChainTooDeep = errors.New("definition chain too deep")
	// ErrInvalidDescriptor is returned when a class descriptor is malformed.
	ErrInvalidDescriptor = errors.New("invalid class descriptor")
)

// InjectionError describes where a resolution pass failed.
// It wraps one of the package's sentinel errors.
type InjectionError struct {
	// Class is the fully-qualified class name.
	Class string
	// Member is the method or property name, if any.
	Member string
	// Target is the parameter or property being wired, if any.
	Target string
	// Resource is the offending service id, parameter name or type name, if any.
	Resource string
	// Err is the underlying error.
	Err error
}

func (e *InjectionError) Error() string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(e.Class)

	if e.Member != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Member)
	}
	if e.Target != "" {
		fmt.Fprintf(&sb, ": %s", e.Target)
	}
	if e.Resource != "" {
		fmt.Fprintf(&sb, ": %q", e.Resource)
	}

	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}

// memberRef names a class member for error reporting.
type memberRef struct {
	class  string
	member string
}

func (m memberRef) fail(target, resource string, err error) error {
	return &InjectionError{
		Class:    m.class,
		Member:   m.member,
		Target:   target,
		Resource: resource,
		Err:      err,
	}
}
