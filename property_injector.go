package autowire

import "go.uber.org/zap"

// injectProperties wires the instance properties of c, either from an explicit
// inject directive or by naming convention.
func (p *pass) injectProperties(id string, c *ClassDescriptor) error {
	s := p.settings.PropertyInjection
	if !s.Enabled {
		return nil
	}

	for i := range c.Properties {
		prop := &c.Properties[i]
		if prop.Static {
			continue
		}

		ref := memberRef{class: c.Name, member: "$" + prop.Name}

		var (
			arg Argument
			ok  bool
			err error
		)
		if prop.Directives.Inject != nil {
			arg, ok, err = p.resolveHintedProperty(ref, id, prop)
		} else if s.WireByName {
			arg, ok, err = p.resolvePropertyByName(ref, id, prop)
		}
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if err := p.reg.SetProperty(id, prop.Name, arg); err != nil {
			return ref.fail("", id, err)
		}

		p.logger.Debug("property injected",
			zap.String("service", id),
			zap.String("property", prop.Name),
			zap.Stringer("value", arg),
		)
	}

	return nil
}

func (p *pass) resolveHintedProperty(ref memberRef, id string, prop *PropertyDescriptor) (Argument, bool, error) {
	def, ok := p.reg.Definition(id)
	if !ok {
		return Argument{}, false, ref.fail("", id, ErrDefinitionNotFound)
	}
	if def.HasProperty(prop.Name) {
		return Argument{}, false, ref.fail("", id, ErrPropertyAlreadyDefined)
	}

	hints := newPropertyHints(prop.Directives.Inject, prop.Name)
	r, ok := hints.Resource(0)
	if !ok || r.Name == "" {
		return Argument{}, false, ref.fail("", r.String(), ErrMissingIdentifier)
	}

	d := prop.Directives
	switch r.Kind {
	case ServiceResource:
		if p.reg.Has(r.Name) {
			return ReferenceWith(r.Name, ExceptionOnInvalidReference, d.strict()), true, nil
		}
		if d.optional() {
			return Argument{}, false, nil
		}
		return Argument{}, false, ref.fail("", r.Name, ErrUnresolvedReference)

	case ParameterResource:
		if p.reg.HasParameter(r.Name) {
			return Parameter(r.Name), true, nil
		}
		if d.optional() {
			return Argument{}, false, nil
		}
		return Argument{}, false, ref.fail("", r.Name, ErrUnresolvedParameter)

	default:
		value, err := coerce(r.Value, prop.Type)
		if err != nil {
			return Argument{}, false, ref.fail("", r.Name, err)
		}
		return Parameter(p.promote(value)), true, nil
	}
}

func (p *pass) resolvePropertyByName(ref memberRef, id string, prop *PropertyDescriptor) (Argument, bool, error) {
	s := p.settings.PropertyInjection

	def, ok := p.reg.Definition(id)
	if !ok {
		return Argument{}, false, ref.fail("", id, ErrDefinitionNotFound)
	}
	if def.HasProperty(prop.Name) {
		return Argument{}, false, nil
	}

	optional := prop.Directives.optional()

	if name, ok := StripSuffix(prop.Name, s.ServiceSuffix); ok {
		sid := PropertyToServiceID(name)
		if p.reg.Has(sid) {
			return ReferenceWith(sid, ExceptionOnInvalidReference, prop.Directives.strict()), true, nil
		}
		if optional {
			return Argument{}, false, nil
		}
		return Argument{}, false, ref.fail("", sid, ErrUnresolvedReference)
	}

	if name, ok := StripSuffix(prop.Name, s.ParameterSuffix); ok {
		param := PropertyToParameterName(name)
		if p.reg.HasParameter(param) {
			return Parameter(param), true, nil
		}
		if optional {
			return Argument{}, false, nil
		}
		return Argument{}, false, ref.fail("", param, ErrUnresolvedParameter)
	}

	return Argument{}, false, nil
}
