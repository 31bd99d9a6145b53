// Package container is an in-memory service registry for the autowire resolver.
//
// It stores definitions, aliases and a parameter bag, resolves "%parameter%"
// placeholders, validates the wiring and reads and writes YAML services files.
// It does not instantiate services.
package container

import (
	"fmt"
	"slices"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/internal/errors"
)

// maxAliasDepth bounds alias-to-alias chains.
const maxAliasDepth = 32

// Container is a service registry. It is safe for concurrent use.
type Container struct {
	definitions *xsync.MapOf[string, *autowire.Definition]
	aliases     *xsync.MapOf[string, autowire.Alias]
	parameters  *xsync.MapOf[string, any]

	// orderMu guards the registration order of ids and aliases.
	orderMu    sync.Mutex
	ids        []string
	aliasOrder []string
}

var _ autowire.Registry = (*Container)(nil)

// Option is used to configure a new [Container].
type Option interface {
	applyContainer(*Container) error
}

type containerOption func(*Container) error

func (f containerOption) applyContainer(c *Container) error {
	return f(c)
}

// WithDefinition registers a definition.
func WithDefinition(id string, def *autowire.Definition) Option {
	return containerOption(func(c *Container) error {
		return errors.Wrapf(c.Register(id, def), "with definition %q", id)
	})
}

// WithAlias registers an alias.
func WithAlias(id, target string, public bool) Option {
	return containerOption(func(c *Container) error {
		return errors.Wrapf(c.SetAlias(id, target, public), "with alias %q", id)
	})
}

// WithParameters seeds the parameter bag.
func WithParameters(params map[string]any) Option {
	return containerOption(func(c *Container) error {
		for name, v := range params {
			c.SetParameter(name, v)
		}
		return nil
	})
}

// New creates an empty [Container] and applies the options.
//
// Available options:
//   - [WithDefinition] registers a definition.
//   - [WithAlias] registers an alias.
//   - [WithParameters] seeds the parameter bag.
func New(opts ...Option) (*Container, error) {
	c := &Container{
		definitions: xsync.NewMapOf[string, *autowire.Definition](),
		aliases:     xsync.NewMapOf[string, autowire.Alias](),
		parameters:  xsync.NewMapOf[string, any](),
	}

	var errs errors.MultiError
	for _, opt := range opts {
		errs = errs.Append(opt.applyContainer(c))
	}
	if err := errs.Wrap("container.New"); err != nil {
		return nil, err
	}

	return c, nil
}

// Register adds a definition. It fails if the id is already taken.
func (c *Container) Register(id string, def *autowire.Definition) error {
	if id == "" {
		return errors.New("service id is empty")
	}
	if def == nil {
		return errors.Errorf("service %q: definition is nil", id)
	}
	if c.Has(id) {
		return errors.Wrapf(ErrServiceExists, "service %q", id)
	}

	c.SetDefinition(id, def)
	return nil
}

// SetAlias makes id an alias of target. The target does not need to exist yet.
func (c *Container) SetAlias(id, target string, public bool) error {
	if id == "" || target == "" {
		return errors.New("alias id and target must not be empty")
	}
	if id == target {
		return errors.Errorf("alias %q points to itself", id)
	}
	if _, ok := c.definitions.Load(id); ok {
		return errors.Wrapf(ErrServiceExists, "alias %q", id)
	}

	_, loaded := c.aliases.LoadAndStore(id, autowire.Alias{ID: id, Target: target, Public: public})
	if !loaded {
		c.orderMu.Lock()
		c.aliasOrder = append(c.aliasOrder, id)
		c.orderMu.Unlock()
	}
	return nil
}

// Has implements [autowire.Registry].
func (c *Container) Has(id string) bool {
	if _, ok := c.definitions.Load(id); ok {
		return true
	}
	_, ok := c.aliases.Load(id)
	return ok
}

// Definition implements [autowire.Registry].
func (c *Container) Definition(id string) (*autowire.Definition, bool) {
	return c.definitions.Load(id)
}

// FindDefinition implements [autowire.Registry].
func (c *Container) FindDefinition(id string) (*autowire.Definition, bool) {
	for range maxAliasDepth {
		if def, ok := c.definitions.Load(id); ok {
			return def, true
		}

		alias, ok := c.aliases.Load(id)
		if !ok {
			return nil, false
		}
		id = alias.Target
	}
	return nil, false
}

// SetDefinition implements [autowire.Registry].
func (c *Container) SetDefinition(id string, def *autowire.Definition) {
	_, loaded := c.definitions.LoadAndStore(id, def)
	if loaded {
		return
	}

	c.orderMu.Lock()
	defer c.orderMu.Unlock()

	c.ids = append(c.ids, id)
	if _, ok := c.aliases.LoadAndDelete(id); ok {
		c.aliasOrder = slices.DeleteFunc(c.aliasOrder, func(a string) bool { return a == id })
	}
}

// DefinitionIDs implements [autowire.Registry].
func (c *Container) DefinitionIDs() []string {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()

	return slices.Clone(c.ids)
}

// Aliases implements [autowire.Registry].
func (c *Container) Aliases() []autowire.Alias {
	c.orderMu.Lock()
	ids := slices.Clone(c.aliasOrder)
	c.orderMu.Unlock()

	aliases := make([]autowire.Alias, 0, len(ids))
	for _, id := range ids {
		if a, ok := c.aliases.Load(id); ok {
			aliases = append(aliases, a)
		}
	}
	return aliases
}

// HasParameter implements [autowire.Registry].
func (c *Container) HasParameter(name string) bool {
	_, ok := c.parameters.Load(name)
	return ok
}

// Parameter implements [autowire.Registry].
func (c *Container) Parameter(name string) (any, bool) {
	return c.parameters.Load(name)
}

// SetParameter implements [autowire.Registry].
func (c *Container) SetParameter(name string, value any) {
	c.parameters.Store(name, value)
}

// ParameterNames returns every parameter name in sorted order.
func (c *Container) ParameterNames() []string {
	names := make([]string, 0, c.parameters.Size())
	c.parameters.Range(func(name string, _ any) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// SetArguments implements [autowire.Registry].
func (c *Container) SetArguments(id string, args []autowire.Argument) error {
	return c.update(id, func(def *autowire.Definition) error {
		if len(def.Arguments) > 0 {
			return autowire.ErrArgumentsAlreadyDefined
		}
		def.Arguments = slices.Clone(args)
		return nil
	})
}

// AddMethodCall implements [autowire.Registry].
func (c *Container) AddMethodCall(id string, call autowire.MethodCall) error {
	return c.update(id, func(def *autowire.Definition) error {
		if def.HasMethodCall(call.Method) {
			return autowire.ErrMethodCallAlreadyDefined
		}
		call.Arguments = slices.Clone(call.Arguments)
		def.MethodCalls = append(def.MethodCalls, call)
		return nil
	})
}

// SetProperty implements [autowire.Registry].
func (c *Container) SetProperty(id, name string, arg autowire.Argument) error {
	return c.update(id, func(def *autowire.Definition) error {
		if def.HasProperty(name) {
			return autowire.ErrPropertyAlreadyDefined
		}
		if def.Properties == nil {
			def.Properties = make(map[string]autowire.Argument)
		}
		def.Properties[name] = arg
		return nil
	})
}

// update applies fn to a copy of the definition and stores the copy on success.
func (c *Container) update(id string, fn func(*autowire.Definition) error) error {
	var err error
	_, ok := c.definitions.Compute(id, func(old *autowire.Definition, loaded bool) (*autowire.Definition, bool) {
		if !loaded {
			err = errors.Wrapf(ErrServiceNotFound, "service %q", id)
			return nil, true
		}

		def := old.Clone()
		if err = fn(def); err != nil {
			return old, false
		}
		return def, false
	})
	if err == nil && !ok {
		err = errors.Wrapf(ErrServiceNotFound, "service %q", id)
	}
	return err
}

// Tagged returns the ids of definitions carrying the tag, in registration order.
func (c *Container) Tagged(tag string) []string {
	var ids []string
	for _, id := range c.DefinitionIDs() {
		if def, ok := c.definitions.Load(id); ok && def.HasTag(tag) {
			ids = append(ids, id)
		}
	}
	return ids
}

// String returns a short summary for logging.
func (c *Container) String() string {
	return fmt.Sprintf("container{definitions: %d, aliases: %d, parameters: %d}",
		c.definitions.Size(), c.aliases.Size(), c.parameters.Size())
}
