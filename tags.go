package autowire

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Tag marks a definition for collection by other components, e.g. "event_listener".
type Tag struct {
	Name       string
	Attributes map[string]string
}

// WithTag is a shorthand for a tag without attributes.
func WithTag(name string) Tag {
	return Tag{Name: name}
}

func (t Tag) String() string {
	if len(t.Attributes) == 0 {
		return t.Name
	}

	keys := slices.Sorted(maps.Keys(t.Attributes))
	attrs := make([]string, len(keys))
	for i, k := range keys {
		attrs[i] = fmt.Sprintf("%s=%s", k, t.Attributes[k])
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(attrs, ", "))
}

// HasTag reports whether the definition carries a tag with the given name.
func (d *Definition) HasTag(name string) bool {
	return slices.ContainsFunc(d.Tags, func(t Tag) bool {
		return t.Name == name
	})
}
