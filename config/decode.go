package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sectrean/autowire/internal/errors"
)

// decodeToggleYAML decodes a section that may also be written as a boolean or null.
func decodeToggleYAML(node *yaml.Node, enabled **bool, v any) error {
	if node.Kind == yaml.ScalarNode {
		switch node.ShortTag() {
		case "!!null":
			return nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			*enabled = &b
			return nil
		}
	}
	return node.Decode(v)
}

// decodeToggleTOML is the TOML counterpart of decodeToggleYAML.
// Tables are re-encoded and decoded into v.
func decodeToggleTOML(data any, enabled **bool, v any) error {
	switch d := data.(type) {
	case bool:
		*enabled = &d
		return nil
	case map[string]any:
		return redecodeTOML(d, v)
	default:
		return errors.Errorf("expected boolean or table, got %T", data)
	}
}

func redecodeTOML(m map[string]any, v any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return err
	}
	_, err := toml.Decode(buf.String(), v)
	return err
}

func (s *BuildDefinitions) UnmarshalYAML(node *yaml.Node) error {
	type plain BuildDefinitions
	return decodeToggleYAML(node, &s.Enabled, (*plain)(s))
}

func (s *BuildDefinitions) UnmarshalTOML(data any) error {
	type plain BuildDefinitions
	return decodeToggleTOML(data, &s.Enabled, (*plain)(s))
}

func (s *PropertyInjection) UnmarshalYAML(node *yaml.Node) error {
	type plain PropertyInjection
	return decodeToggleYAML(node, &s.Enabled, (*plain)(s))
}

func (s *PropertyInjection) UnmarshalTOML(data any) error {
	type plain PropertyInjection
	return decodeToggleTOML(data, &s.Enabled, (*plain)(s))
}

func (s *MemberInjection) UnmarshalYAML(node *yaml.Node) error {
	type plain MemberInjection
	return decodeToggleYAML(node, &s.Enabled, (*plain)(s))
}

func (s *MemberInjection) UnmarshalTOML(data any) error {
	type plain MemberInjection
	return decodeToggleTOML(data, &s.Enabled, (*plain)(s))
}

// UnmarshalYAML accepts a list of paths or a mapping keyed by pathname:
//
//	paths:
//	  "@acme/manifests": {filename_pattern: "*.yaml", recursive: false}
//	  /etc/autowire/extra.yaml: ~
func (p *Paths) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []Path
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil

	case yaml.MappingNode:
		var list Paths
		for i := 0; i+1 < len(node.Content); i += 2 {
			var path Path
			if v := node.Content[i+1]; v.ShortTag() != "!!null" {
				if err := v.Decode(&path); err != nil {
					return err
				}
			}
			if path.Pathname == "" {
				path.Pathname = node.Content[i].Value
			}
			list = append(list, path)
		}
		*p = list
		return nil

	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil
		}
	}

	return errors.Errorf("line %d: paths must be a list or a mapping", node.Line)
}

// UnmarshalTOML accepts an array of tables or a table keyed by pathname.
// Keys of a table are sorted by the TOML decoder.
func (p *Paths) UnmarshalTOML(data any) error {
	var list Paths

	switch d := data.(type) {
	case []map[string]any:
		for _, m := range d {
			path, err := pathFromTOML("", m)
			if err != nil {
				return err
			}
			list = append(list, path)
		}
	case []any:
		for _, item := range d {
			m, ok := item.(map[string]any)
			if !ok {
				return errors.Errorf("path must be a table, got %T", item)
			}
			path, err := pathFromTOML("", m)
			if err != nil {
				return err
			}
			list = append(list, path)
		}
	case map[string]any:
		for _, name := range sortedKeys(d) {
			m, _ := d[name].(map[string]any)
			path, err := pathFromTOML(name, m)
			if err != nil {
				return err
			}
			list = append(list, path)
		}
	default:
		return errors.Errorf("paths must be an array or a table, got %T", data)
	}

	*p = list
	return nil
}

func pathFromTOML(name string, m map[string]any) (Path, error) {
	var path Path
	if m != nil {
		if err := redecodeTOML(m, &path); err != nil {
			return Path{}, err
		}
	}
	if path.Pathname == "" {
		path.Pathname = name
	}
	return path, nil
}
