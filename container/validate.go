package container

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/internal/errors"
)

// Validate checks the wiring of every definition:
//   - references that must not be missing point to existing services,
//   - parameter arguments name existing parameters,
//   - parents, factory services and configurator services exist,
//   - parent chains are acyclic,
//   - aliases point to existing definitions.
//
// All problems are reported together.
func (c *Container) Validate() error {
	var errs errors.MultiError

	for _, id := range c.DefinitionIDs() {
		def, ok := c.definitions.Load(id)
		if !ok {
			continue
		}

		errs = errs.Append(c.validateDefinition(id, def))
		errs = errs.Append(newParentVisitor(c).Visit(id))
	}

	for _, a := range c.Aliases() {
		if _, ok := c.FindDefinition(a.Target); !ok {
			errs = errs.Append(errors.Wrapf(ErrServiceNotFound, "alias %q: target %q", a.ID, a.Target))
		}
	}

	return errs.Wrap("container.Validate")
}

func (c *Container) validateDefinition(id string, def *autowire.Definition) error {
	var errs errors.MultiError

	check := func(where string, arg autowire.Argument) {
		switch arg.Kind {
		case autowire.ReferenceArgument:
			if arg.Behavior == autowire.ExceptionOnInvalidReference && !c.Has(arg.ID) {
				errs = errs.Append(errors.Wrapf(ErrServiceNotFound, "service %q: %s: reference %q", id, where, arg.ID))
			}
		case autowire.ParameterArgument:
			if !c.HasParameter(arg.ID) {
				errs = errs.Append(errors.Wrapf(ErrParameterNotFound, "service %q: %s: parameter %q", id, where, arg.ID))
			}
		}
	}

	for i, arg := range def.Arguments {
		check("argument "+strconv.Itoa(i), arg)
	}
	for _, call := range def.MethodCalls {
		for i, arg := range call.Arguments {
			check("call "+call.Method+" argument "+strconv.Itoa(i), arg)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(def.Properties)) {
		check("property "+name, def.Properties[name])
	}

	if def.Factory != nil && def.Factory.Service != "" && !c.Has(def.Factory.Service) {
		errs = errs.Append(errors.Wrapf(ErrServiceNotFound, "service %q: factory service %q", id, def.Factory.Service))
	}
	if def.Configurator != nil && def.Configurator.Service != "" && !c.Has(def.Configurator.Service) {
		errs = errs.Append(errors.Wrapf(ErrServiceNotFound, "service %q: configurator service %q", id, def.Configurator.Service))
	}

	return errs.Join()
}

// parentVisitor walks a parent chain and detects cycles.
type parentVisitor struct {
	c       *Container
	visited map[string]struct{}
	trail   []string
}

func newParentVisitor(c *Container) *parentVisitor {
	return &parentVisitor{
		c:       c,
		visited: make(map[string]struct{}),
	}
}

// Enter returns true if the definition has already been visited.
func (v *parentVisitor) Enter(id string) bool {
	v.trail = append(v.trail, id)
	if _, ok := v.visited[id]; ok {
		return true
	}
	v.visited[id] = struct{}{}
	return false
}

// Trail returns a string representation of the parent chain.
func (v *parentVisitor) Trail() string {
	return strings.Join(v.trail, " -> ")
}

func (v *parentVisitor) Visit(id string) error {
	for {
		if v.Enter(id) {
			return errors.Wrapf(autowire.ErrDefinitionCycle, "parent chain %s", v.Trail())
		}

		def, ok := v.c.FindDefinition(id)
		if !ok {
			return errors.Wrapf(ErrServiceNotFound, "parent chain %s", v.Trail())
		}
		if def.Parent == "" {
			return nil
		}
		id = def.Parent
	}
}
