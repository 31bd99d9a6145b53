package autowire

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sectrean/autowire/internal/errors"
)

// identityResolver assigns service ids to the classes of one batch.
type identityResolver struct {
	*pass
	classes   map[string]*ClassDescriptor
	resolving map[string]struct{}
	trail     []string
}

func newIdentityResolver(p *pass, batch []ClassDescriptor) *identityResolver {
	classes := make(map[string]*ClassDescriptor, len(batch))
	for i := range batch {
		classes[normalizeClass(batch[i].Name)] = &batch[i]
	}

	return &identityResolver{
		pass:      p,
		classes:   classes,
		resolving: make(map[string]struct{}),
	}
}

// Resolve returns the service id for c and registers a definition for it if needed.
// It returns "" for classes without a service directive.
func (r *identityResolver) Resolve(c *ClassDescriptor) (string, error) {
	if c.Service == nil {
		return "", nil
	}

	name := normalizeClass(c.Name)
	if id, ok := r.identities[name]; ok {
		return id, nil
	}

	if _, ok := r.resolving[name]; ok {
		return "", errors.Wrapf(ErrDefinitionCycle, "class %s: %s", c.Name, r.Trail(name))
	}
	if len(r.trail) >= r.maxDepth {
		return "", errors.Wrapf(ErrChainTooDeep, "class %s: %s", c.Name, r.Trail(name))
	}

	r.resolving[name] = struct{}{}
	r.trail = append(r.trail, name)
	defer func() {
		delete(r.resolving, name)
		r.trail = r.trail[:len(r.trail)-1]
	}()

	id := c.Service.ID
	if id == "" {
		id = ClassToServiceID(name)
	}

	if r.reg.Has(id) {
		if err := r.checkExisting(c, id); err != nil {
			return "", err
		}
		r.identities[name] = id
		return id, nil
	}

	if !r.settings.BuildDefinitions {
		return "", nil
	}

	def := NewDefinition(name)
	def.Public = c.Service.public()
	def.Abstract = c.Abstract
	def.Tags = c.Service.Tags
	def.Lifetime = c.Service.Lifetime
	def.File = c.Service.File
	def.Factory = ParseCallable(c.Service.Factory, name)
	def.Configurator = ParseCallable(c.Service.Configurator, name)

	if base, ok := r.classes[normalizeClass(c.Base)]; ok && base.Service != nil {
		parentID, err := r.Resolve(base)
		if err != nil {
			return "", err
		}
		def.Parent = parentID
	}

	r.reg.SetDefinition(id, def)
	r.identities[name] = id

	r.logger.Debug("service registered",
		zap.String("service", id),
		zap.String("class", name),
		zap.String("parent", def.Parent),
	)
	return id, nil
}

// checkExisting accepts an existing definition backing the same class and rejects anything else.
// The class may come from a parent or factory chain.
func (r *identityResolver) checkExisting(c *ClassDescriptor, id string) error {
	ref := memberRef{class: c.Name}

	def, ok := r.reg.Definition(id)
	if !ok {
		// id is taken by an alias
		return ref.fail("", id, ErrDuplicateServiceID)
	}

	class, err := backingClass(r.reg, id, def, r.maxDepth)
	if err != nil {
		return ref.fail("", id, err)
	}
	if class != normalizeClass(c.Name) {
		return ref.fail("", id, ErrDuplicateServiceID)
	}
	return nil
}

// Trail returns a string representation of the base class chain.
func (r *identityResolver) Trail(name string) string {
	return strings.Join(append(r.trail, name), " -> ")
}
