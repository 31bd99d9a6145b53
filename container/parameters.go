package container

import (
	"fmt"
	"strings"

	"github.com/sectrean/autowire/internal/errors"
)

// ResolveValue implements [autowire.Registry].
//
// A string that is exactly one "%name%" placeholder resolves to the parameter value
// with its own type. Placeholders embedded in a longer string are interpolated as
// text. "%%" is an escaped percent sign. String parameter values are resolved
// recursively.
func (c *Container) ResolveValue(s string) (any, error) {
	return c.resolveString(s, nil)
}

// ResolveAll resolves placeholders in every string nested in v.
func (c *Container) ResolveAll(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return c.ResolveValue(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			r, err := c.ResolveAll(item)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			r, err := c.ResolveAll(item)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

func (c *Container) resolveString(s string, trail []string) (any, error) {
	if name, ok := wholePlaceholder(s); ok {
		return c.lookup(name, trail)
	}
	if !strings.Contains(s, "%") {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '%' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		if i+1 < len(s) && s[i+1] == '%' {
			sb.WriteByte('%')
			i += 2
			continue
		}

		end := strings.IndexByte(s[i+1:], '%')
		name := ""
		if end >= 0 {
			name = s[i+1 : i+1+end]
		}
		if end < 0 || !validName(name) {
			sb.WriteByte('%')
			i++
			continue
		}

		v, err := c.lookup(name, trail)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case string, bool, int, int64, float64, nil:
			fmt.Fprint(&sb, v)
		default:
			return nil, errors.Errorf("parameter %q of type %T cannot be interpolated into %q", name, v, s)
		}
		i += end + 2
	}

	return sb.String(), nil
}

func (c *Container) lookup(name string, trail []string) (any, error) {
	for _, seen := range trail {
		if seen == name {
			return nil, errors.Wrapf(ErrCircularParameter, "%s -> %s", strings.Join(trail, " -> "), name)
		}
	}

	v, ok := c.parameters.Load(name)
	if !ok {
		return nil, errors.Wrapf(ErrParameterNotFound, "parameter %q", name)
	}

	if s, ok := v.(string); ok {
		return c.resolveString(s, append(trail, name))
	}
	return v, nil
}

// wholePlaceholder reports whether s is exactly "%name%".
func wholePlaceholder(s string) (string, bool) {
	if len(s) < 3 || s[0] != '%' || s[len(s)-1] != '%' {
		return "", false
	}

	name := s[1 : len(s)-1]
	if !validName(name) {
		return "", false
	}
	return name, true
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "% \t\n")
}
