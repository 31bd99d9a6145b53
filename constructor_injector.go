package autowire

import "go.uber.org/zap"

// injectConstructor wires the constructor of c into the definition id.
// Only constructors carrying an inject directive are wired.
func (p *pass) injectConstructor(id string, c *ClassDescriptor) error {
	s := p.settings.ConstructorInjection
	ctor := c.Constructor
	if !s.Enabled || ctor == nil || ctor.Directives.Inject == nil {
		return nil
	}

	ref := memberRef{class: c.Name, member: ctor.Name}
	if ref.member == "" {
		ref.member = "constructor"
	}

	def, ok := p.reg.Definition(id)
	if !ok {
		return ref.fail("", id, ErrDefinitionNotFound)
	}
	if len(def.Arguments) > 0 {
		return ref.fail("", id, ErrArgumentsAlreadyDefined)
	}

	args, err := p.resolveArguments(ref, ctor, s.WireByType)
	if err != nil {
		return err
	}

	if err := p.reg.SetArguments(id, args); err != nil {
		return ref.fail("", id, err)
	}

	p.logger.Debug("constructor injected",
		zap.String("service", id),
		zap.Stringers("arguments", args),
	)
	return nil
}
