package autowire

import "go.uber.org/zap"

// injectMethods appends a method call for every injectable method of c carrying
// an inject directive, in declaration order.
func (p *pass) injectMethods(id string, c *ClassDescriptor) error {
	s := p.settings.SetterInjection
	if !s.Enabled {
		return nil
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		if !injectable(m) {
			continue
		}

		ref := memberRef{class: c.Name, member: m.Name}

		def, ok := p.reg.Definition(id)
		if !ok {
			return ref.fail("", id, ErrDefinitionNotFound)
		}
		if def.HasMethodCall(m.Name) {
			return ref.fail("", id, ErrMethodCallAlreadyDefined)
		}

		args, err := p.resolveArguments(ref, m, s.WireByType)
		if err != nil {
			return err
		}

		err = p.reg.AddMethodCall(id, MethodCall{Method: m.Name, Arguments: args})
		if err != nil {
			return ref.fail("", id, err)
		}

		p.logger.Debug("method injected",
			zap.String("service", id),
			zap.String("method", m.Name),
			zap.Stringers("arguments", args),
		)
	}

	return nil
}

func injectable(m *MethodDescriptor) bool {
	return m.Directives.Inject != nil && !m.Static && !m.Abstract && !m.Destructor
}
