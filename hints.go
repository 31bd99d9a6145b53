package autowire

// HintMap holds the raw hints of one member keyed by parameter position.
//
// Values are classified on every query. A HintMap is only valid for the
// member it was built for.
type HintMap struct {
	raw map[int]any
}

// NewHintMap matches the hints of d against the parameter list.
//
// For each parameter an explicit name match wins, then a positional match,
// then the parameter's own non-nil default value as an implicit literal.
func NewHintMap(d *InjectDirective, params []ParameterDescriptor) HintMap {
	m := HintMap{raw: make(map[int]any, len(params))}

	for i, p := range params {
		if d != nil {
			if v, ok := d.Named[p.Name]; ok && v != nil {
				m.raw[i] = v
				continue
			}
			if i < len(d.Values) && d.Values[i] != nil {
				m.raw[i] = d.Values[i]
				continue
			}
		}
		if p.HasDefault && p.Default != nil {
			m.raw[i] = p.Default
		}
	}

	return m
}

// newPropertyHints builds a single-slot hint map for a property.
// A hint keyed by the property name wins over the first positional hint.
func newPropertyHints(d *InjectDirective, name string) HintMap {
	m := HintMap{raw: make(map[int]any, 1)}
	if d == nil {
		return m
	}

	if v, ok := d.Named[name]; ok && v != nil {
		m.raw[0] = v
	} else if v, ok := d.Named["value"]; ok && v != nil {
		m.raw[0] = v
	} else if len(d.Values) > 0 && d.Values[0] != nil {
		m.raw[0] = d.Values[0]
	}

	return m
}

// Len returns the number of hinted positions.
func (m HintMap) Len() int {
	return len(m.raw)
}

// HasHint reports whether position i has a hint.
func (m HintMap) HasHint(i int) bool {
	_, ok := m.raw[i]
	return ok
}

// Raw returns the unclassified hint at position i.
func (m HintMap) Raw(i int) (any, bool) {
	v, ok := m.raw[i]
	return v, ok
}

// Resource returns the classified hint at position i.
func (m HintMap) Resource(i int) (Resource, bool) {
	v, ok := m.raw[i]
	if !ok {
		return Resource{}, false
	}
	return ParseResource(v), true
}

// ResourceName returns the service id, parameter name or literal text at position i.
func (m HintMap) ResourceName(i int) string {
	r, _ := m.Resource(i)
	return r.Name
}

// IsReference reports whether position i hints a service.
func (m HintMap) IsReference(i int) bool {
	return m.is(i, ServiceResource)
}

// IsParameter reports whether position i hints a configuration parameter.
func (m HintMap) IsParameter(i int) bool {
	return m.is(i, ParameterResource)
}

// IsPlainValue reports whether position i hints a literal.
func (m HintMap) IsPlainValue(i int) bool {
	return m.is(i, LiteralResource)
}

func (m HintMap) is(i int, k ResourceKind) bool {
	r, ok := m.Resource(i)
	return ok && r.Kind == k
}
