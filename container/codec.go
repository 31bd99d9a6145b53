package container

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/internal/errors"
)

// argumentYAML encodes an argument in sigil notation.
//
//	"@id"    reference
//	"@?id"   reference, null if missing
//	"@!id"   reference, ignored if missing
//	"@@x"    the string "@x"
//	"%name%" parameter
//
// Non-strict references are written as a mapping: {ref: id, on_invalid: "null", strict: false}.
type argumentYAML struct {
	autowire.Argument
}

type referenceYAML struct {
	Ref       string `yaml:"ref"`
	OnInvalid string `yaml:"on_invalid,omitempty"`
	Strict    *bool  `yaml:"strict,omitempty"`
}

func (a argumentYAML) MarshalYAML() (any, error) {
	switch a.Kind {
	case autowire.ReferenceArgument:
		if !a.Strict {
			return referenceYAML{
				Ref:       a.ID,
				OnInvalid: a.Behavior.String(),
				Strict:    autowire.Bool(false),
			}, nil
		}
		return a.String(), nil

	case autowire.ParameterArgument:
		return a.String(), nil

	default:
		if s, ok := a.Value.(string); ok && strings.HasPrefix(s, autowire.ReferenceSigil) {
			return autowire.ReferenceSigil + s, nil
		}
		return a.Value, nil
	}
}

func (a *argumentYAML) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str":
		a.Argument = parseArgument(node.Value)
		return nil

	case node.Kind == yaml.MappingNode && hasKey(node, "ref"):
		var ref referenceYAML
		if err := node.Decode(&ref); err != nil {
			return err
		}

		b, err := parseBehavior(ref.OnInvalid)
		if err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		a.Argument = autowire.ReferenceWith(ref.Ref, b, ref.Strict == nil || *ref.Strict)
		return nil

	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		a.Argument = autowire.Value(v)
		return nil
	}
}

func parseArgument(s string) autowire.Argument {
	switch {
	case strings.HasPrefix(s, "@@"):
		return autowire.Value(s[1:])
	case strings.HasPrefix(s, "@?"):
		return autowire.ReferenceWith(s[2:], autowire.NullOnInvalidReference, true)
	case strings.HasPrefix(s, "@!"):
		return autowire.ReferenceWith(s[2:], autowire.IgnoreOnInvalidReference, true)
	}

	if name, ok := wholePlaceholder(s); ok {
		return autowire.Parameter(name)
	}

	r := autowire.ParseResource(s)
	if r.Kind == autowire.ServiceResource {
		return autowire.Reference(r.Name)
	}
	return autowire.Value(s)
}

func parseBehavior(s string) (autowire.InvalidBehavior, error) {
	switch strings.ToLower(s) {
	case "", "exception":
		return autowire.ExceptionOnInvalidReference, nil
	case "null":
		return autowire.NullOnInvalidReference, nil
	case "ignore":
		return autowire.IgnoreOnInvalidReference, nil
	default:
		return 0, errors.Errorf("unknown on_invalid behavior %q", s)
	}
}

// callYAML encodes a method call as [method, [arguments...]].
type callYAML autowire.MethodCall

func (c callYAML) MarshalYAML() (any, error) {
	if len(c.Arguments) == 0 {
		return []any{c.Method}, nil
	}

	args := make([]argumentYAML, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = argumentYAML{a}
	}
	return []any{c.Method, args}, nil
}

func (c *callYAML) UnmarshalYAML(node *yaml.Node) error {
	var args []argumentYAML

	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 {
			return errors.Errorf("line %d: call must be [method] or [method, [arguments]]", node.Line)
		}
		c.Method = node.Content[0].Value
		if len(node.Content) == 2 {
			if err := node.Content[1].Decode(&args); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		var m struct {
			Method    string         `yaml:"method"`
			Arguments []argumentYAML `yaml:"arguments"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		c.Method = m.Method
		args = m.Arguments

	default:
		return errors.Errorf("line %d: call must be a sequence or a mapping", node.Line)
	}

	if c.Method == "" {
		return errors.Errorf("line %d: call method is empty", node.Line)
	}

	for _, a := range args {
		c.Arguments = append(c.Arguments, a.Argument)
	}
	return nil
}

// tagYAML encodes a tag as {name: ..., attribute: value}.
type tagYAML autowire.Tag

func (t tagYAML) MarshalYAML() (any, error) {
	m := make(map[string]string, len(t.Attributes)+1)
	for k, v := range t.Attributes {
		m[k] = v
	}
	m["name"] = t.Name
	return m, nil
}

func (t *tagYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = node.Value
		return nil
	}

	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}

	t.Name = m["name"]
	if t.Name == "" {
		return errors.Errorf("line %d: tag name is empty", node.Line)
	}

	delete(m, "name")
	if len(m) > 0 {
		t.Attributes = m
	}
	return nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
