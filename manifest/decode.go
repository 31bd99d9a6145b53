package manifest

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sectrean/autowire/internal/errors"
)

func (s *Service) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.ShortTag() == "!!bool" {
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			s.disabled = !b
			return nil
		}
		if node.ShortTag() == "!!null" {
			return nil
		}
		s.ID = node.Value
		return nil
	}

	type plain Service
	return node.Decode((*plain)(s))
}

func (s *Service) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case bool:
		s.disabled = !d
		return nil
	case string:
		s.ID = d
		return nil
	case map[string]any:
		type plain Service
		return redecodeTOML(d, (*plain)(s))
	default:
		return errors.Errorf("service must be a boolean, an id or a table, got %T", data)
	}
}

func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = node.Value
		return nil
	}

	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	return t.fromMap(m)
}

func (t *Tag) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case string:
		t.Name = d
		return nil
	case map[string]any:
		m := make(map[string]string, len(d))
		for k, v := range d {
			m[k] = fmt.Sprint(v)
		}
		return t.fromMap(m)
	default:
		return errors.Errorf("tag must be a name or a table, got %T", data)
	}
}

func (t *Tag) fromMap(m map[string]string) error {
	t.Name = m["name"]
	if t.Name == "" {
		return errors.New("tag name is empty")
	}

	delete(m, "name")
	if len(m) > 0 {
		t.Attributes = m
	}
	return nil
}

type parameterYAML struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
	Variadic bool   `yaml:"variadic"`
	Default  any    `yaml:"default"`
}

// UnmarshalYAML also accepts a bare parameter name.
func (p *Parameter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Name = node.Value
		return nil
	}

	var raw parameterYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*p = Parameter{
		Name:       raw.Name,
		Type:       raw.Type,
		Nullable:   raw.Nullable,
		Variadic:   raw.Variadic,
		HasDefault: hasKey(node, "default"),
		Default:    raw.Default,
	}
	return nil
}

// UnmarshalTOML also accepts a bare parameter name.
func (p *Parameter) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case string:
		p.Name = d
		return nil
	case map[string]any:
		var err error
		p.Name, err = stringField(d, "name")
		if err != nil {
			return err
		}
		p.Type, err = stringField(d, "type")
		if err != nil {
			return err
		}
		p.Nullable, err = boolField(d, "nullable")
		if err != nil {
			return err
		}
		p.Variadic, err = boolField(d, "variadic")
		if err != nil {
			return err
		}
		p.Default, p.HasDefault = d["default"]
		return nil
	default:
		return errors.Errorf("parameter must be a name or a table, got %T", data)
	}
}

func (i *Inject) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			i.disabled = !b
			return nil
		}

		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		i.Values = []any{v}
		return nil

	case yaml.SequenceNode:
		return node.Decode(&i.Values)

	case yaml.MappingNode:
		return node.Decode(&i.Named)

	default:
		return errors.Errorf("line %d: unsupported inject directive", node.Line)
	}
}

func (i *Inject) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case bool:
		i.disabled = !d
	case []any:
		i.Values = d
	case map[string]any:
		i.Named = d
	default:
		i.Values = []any{d}
	}
	return nil
}

func redecodeTOML(m map[string]any, v any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return err
	}
	_, err := toml.Decode(buf.String(), v)
	return err
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
