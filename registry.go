package autowire

// Registry is the service container the resolver reads from and writes to.
//
// All calls happen from the resolving goroutine. Implementations must not be
// mutated by other writers while a pass is running.
type Registry interface {
	// Has reports whether a definition or alias exists for the id.
	Has(id string) bool
	// Definition returns the definition registered under the id. Aliases are not followed.
	Definition(id string) (*Definition, bool)
	// FindDefinition returns the definition for the id, following aliases.
	FindDefinition(id string) (*Definition, bool)
	// SetDefinition registers or replaces a definition.
	SetDefinition(id string, def *Definition)
	// DefinitionIDs returns all definition ids in registration order.
	DefinitionIDs() []string
	// Aliases returns all aliases in registration order.
	Aliases() []Alias

	// HasParameter reports whether a configuration parameter exists.
	HasParameter(name string) bool
	// Parameter returns the value of a configuration parameter.
	Parameter(name string) (any, bool)
	// SetParameter sets a configuration parameter.
	SetParameter(name string, value any)
	// ResolveValue replaces "%name%" placeholders in s with parameter values.
	ResolveValue(s string) (any, error)

	// SetArguments sets the constructor arguments of a definition.
	// It fails with [ErrArgumentsAlreadyDefined] if arguments are already configured.
	SetArguments(id string, args []Argument) error
	// AddMethodCall appends a method call to a definition.
	// It fails with [ErrMethodCallAlreadyDefined] if the method is already called.
	AddMethodCall(id string, call MethodCall) error
	// SetProperty sets a named property of a definition.
	SetProperty(id, name string, arg Argument) error
}
