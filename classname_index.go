package autowire

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sectrean/autowire/internal/errors"
)

// DefaultMaxDepth bounds parent, factory and base class chains.
const DefaultMaxDepth = 32

// LookupStatus is the outcome of a [ClassnameIndex] lookup.
type LookupStatus uint8

const (
	// NotFound means no service is backed by the type.
	NotFound LookupStatus = iota
	// Found means exactly one service is backed by the type.
	Found
	// Ambiguous means more than one service is backed by the type.
	Ambiguous
)

func (s LookupStatus) String() string {
	switch s {
	case NotFound:
		return "not found"
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("Unknown LookupStatus %d", s)
	}
}

type indexEntry struct {
	id string
	// target is the definition id an alias points to. Equal to id for definitions.
	target    string
	ambiguous bool
}

// ClassnameIndex maps concrete types to the single service backed by them.
// It is built once per pass and is read-only afterwards.
type ClassnameIndex struct {
	classes map[string]indexEntry
	aliases map[string]indexEntry
	types   TypeCatalog
}

// BuildClassnameIndex indexes every public, concrete, non-synthetic definition and every
// public alias of the registry by backing type.
//
// A type backed by more than one service is marked ambiguous for the rest of the pass.
// Placeholders that cannot be resolved to a class name are skipped.
func BuildClassnameIndex(reg Registry, types TypeCatalog, maxDepth int) (*ClassnameIndex, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	idx := &ClassnameIndex{
		classes: make(map[string]indexEntry),
		aliases: make(map[string]indexEntry),
		types:   types,
	}

	for _, id := range reg.DefinitionIDs() {
		def, ok := reg.Definition(id)
		if !ok || !indexable(def) {
			continue
		}

		class, err := backingClass(reg, id, def, maxDepth)
		if err != nil {
			return nil, errors.Wrapf(err, "build classname index: service %q", id)
		}
		if class != "" {
			idx.classes[class] = mark(idx.classes, class, indexEntry{id: id, target: id})
		}
	}

	for _, alias := range reg.Aliases() {
		if !alias.Public {
			continue
		}

		def, ok := reg.FindDefinition(alias.Target)
		if !ok {
			return nil, errors.Wrapf(ErrDefinitionNotFound, "build classname index: alias %q targets %q", alias.ID, alias.Target)
		}
		if def.Abstract || def.Synthetic {
			continue
		}

		class, err := backingClass(reg, alias.Target, def, maxDepth)
		if err != nil {
			return nil, errors.Wrapf(err, "build classname index: alias %q", alias.ID)
		}
		if class != "" {
			idx.aliases[class] = mark(idx.aliases, class, indexEntry{id: alias.ID, target: alias.Target})
		}
	}

	return idx, nil
}

func indexable(def *Definition) bool {
	return def.Public && !def.Abstract && !def.Synthetic
}

// mark returns the entry to store for class. Once ambiguous, always ambiguous.
func mark(m map[string]indexEntry, class string, e indexEntry) indexEntry {
	prev, exists := m[class]
	if !exists {
		return e
	}
	if prev.ambiguous || prev.target != e.target {
		return indexEntry{ambiguous: true}
	}
	return prev
}

// backingClass walks parent and factory chains until a concrete class name is found.
// It returns "" when the chain ends in something that is not a class name.
func backingClass(reg Registry, id string, def *Definition, maxDepth int) (string, error) {
	visited := map[string]struct{}{id: {}}
	trail := []string{id}

	for depth := 0; ; depth++ {
		if depth > maxDepth {
			return "", errors.Wrapf(ErrChainTooDeep, "%s", strings.Join(trail, " -> "))
		}

		if def.Class != "" {
			return resolveClassName(reg, def.Class), nil
		}

		var next string
		switch {
		case def.Parent != "":
			next = def.Parent
		case def.Factory != nil && def.Factory.Class != "":
			return resolveClassName(reg, def.Factory.Class), nil
		case def.Factory != nil && def.Factory.Service != "":
			next = def.Factory.Service
		default:
			return "", nil
		}

		trail = append(trail, next)
		if _, seen := visited[next]; seen {
			return "", errors.Wrapf(ErrDefinitionCycle, "%s", strings.Join(trail, " -> "))
		}
		visited[next] = struct{}{}

		nextDef, ok := reg.FindDefinition(next)
		if !ok {
			return "", errors.Wrapf(ErrDefinitionNotFound, "%s", strings.Join(trail, " -> "))
		}
		def = nextDef
	}
}

// resolveClassName resolves "%param%" placeholders. Unresolvable values yield "".
func resolveClassName(reg Registry, class string) string {
	if !strings.Contains(class, ParameterSigil) {
		return normalizeClass(class)
	}

	v, err := reg.ResolveValue(class)
	if err != nil {
		return ""
	}

	s, ok := v.(string)
	if !ok || strings.Contains(s, ParameterSigil) {
		return ""
	}
	return normalizeClass(s)
}

// Lookup returns the id of the single service backed by typeName.
//
// Definitions are searched first, then aliases. When typeName is an interface
// every indexed type implementing it is a candidate.
func (idx *ClassnameIndex) Lookup(typeName string) (string, LookupStatus) {
	typeName = normalizeClass(typeName)

	if e, ok := idx.classes[typeName]; ok {
		return e.result()
	}
	if e, ok := idx.aliases[typeName]; ok {
		return e.result()
	}

	if idx.types == nil || !idx.types.IsInterface(typeName) {
		return "", NotFound
	}

	return idx.lookupInterface(typeName)
}

func (idx *ClassnameIndex) lookupInterface(iface string) (string, LookupStatus) {
	var (
		found   string
		targets = make(map[string]struct{})
	)

	for _, m := range []map[string]indexEntry{idx.classes, idx.aliases} {
		for _, class := range sortedKeys(m) {
			if !idx.types.Implements(class, iface) {
				continue
			}

			e := m[class]
			if e.ambiguous {
				return "", Ambiguous
			}
			if _, dup := targets[e.target]; dup {
				continue
			}
			targets[e.target] = struct{}{}
			if found == "" {
				found = e.id
			}
		}
	}

	switch len(targets) {
	case 0:
		return "", NotFound
	case 1:
		return found, Found
	default:
		return "", Ambiguous
	}
}

// Classes returns every indexed class name, including ambiguous ones.
func (idx *ClassnameIndex) Classes() []string {
	names := sortedKeys(idx.classes)
	for _, name := range sortedKeys(idx.aliases) {
		if _, ok := idx.classes[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of indexed types and how many of them are ambiguous.
func (idx *ClassnameIndex) Len() (total, ambiguous int) {
	for _, m := range []map[string]indexEntry{idx.classes, idx.aliases} {
		for _, e := range m {
			total++
			if e.ambiguous {
				ambiguous++
			}
		}
	}
	return total, ambiguous
}

func (e indexEntry) result() (string, LookupStatus) {
	if e.ambiguous {
		return "", Ambiguous
	}
	return e.id, Found
}

func sortedKeys(m map[string]indexEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
