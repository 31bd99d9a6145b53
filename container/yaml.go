package container

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/internal/errors"
)

// servicesFile is the YAML layout of a services file.
//
//	parameters:
//	  mailer.transport: smtp
//	services:
//	  mailer:
//	    class: Acme\Mailer
//	    arguments: ["%mailer.transport%", "@logger", "@?cache"]
//	    calls:
//	      - [setLogger, ["@logger"]]
//	    properties: {debug: true}
//	    tags: [{name: monolog.logger, channel: mail}]
//	  app.mailer: "@mailer"
type servicesFile struct {
	Parameters map[string]any `yaml:"parameters,omitempty"`
	Services   yaml.Node      `yaml:"services,omitempty"`
}

type serviceYAML struct {
	Class        string                  `yaml:"class,omitempty"`
	Parent       string                  `yaml:"parent,omitempty"`
	Factory      string                  `yaml:"factory,omitempty"`
	Configurator string                  `yaml:"configurator,omitempty"`
	Arguments    []argumentYAML          `yaml:"arguments,omitempty"`
	Calls        []callYAML              `yaml:"calls,omitempty"`
	Properties   map[string]argumentYAML `yaml:"properties,omitempty"`
	Public       *bool                   `yaml:"public,omitempty"`
	Abstract     bool                    `yaml:"abstract,omitempty"`
	Synthetic    bool                    `yaml:"synthetic,omitempty"`
	Lifetime     autowire.Lifetime       `yaml:"scope,omitempty"`
	File         string                  `yaml:"file,omitempty"`
	Tags         []tagYAML               `yaml:"tags,omitempty"`
	Alias        string                  `yaml:"alias,omitempty"`
}

// LoadFile reads a services file from disk.
func (c *Container) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "container.LoadFile")
	}
	defer f.Close()

	return errors.Wrapf(c.LoadYAML(f), "container.LoadFile %s", path)
}

// LoadYAML registers the parameters, definitions and aliases of a services file
// in file order. Ids that already exist fail with [ErrServiceExists].
func (c *Container) LoadYAML(r io.Reader) error {
	var file servicesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return errors.Wrapf(ErrInvalidServicesFile, "%v", err)
	}

	for name, v := range file.Parameters {
		c.SetParameter(name, v)
	}

	if file.Services.Kind == 0 || file.Services.ShortTag() == "!!null" {
		return nil
	}
	if file.Services.Kind != yaml.MappingNode {
		return errors.Wrapf(ErrInvalidServicesFile, "line %d: services must be a mapping", file.Services.Line)
	}

	var errs errors.MultiError
	content := file.Services.Content
	for i := 0; i+1 < len(content); i += 2 {
		id := content[i].Value
		errs = errs.Append(errors.Wrapf(c.loadService(id, content[i+1]), "service %q", id))
	}

	return errs.Join()
}

func (c *Container) loadService(id string, node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		return c.Register(id, autowire.NewDefinition(id))

	case node.Kind == yaml.ScalarNode:
		target, ok := strings.CutPrefix(node.Value, autowire.ReferenceSigil)
		if !ok {
			return errors.Wrapf(ErrInvalidServicesFile, "line %d: alias must start with %q", node.Line, autowire.ReferenceSigil)
		}
		return c.SetAlias(id, target, true)

	case node.Kind != yaml.MappingNode:
		return errors.Wrapf(ErrInvalidServicesFile, "line %d: service must be a mapping", node.Line)
	}

	var svc serviceYAML
	if err := node.Decode(&svc); err != nil {
		return errors.Wrapf(ErrInvalidServicesFile, "%v", err)
	}

	if svc.Alias != "" {
		return c.SetAlias(id, strings.TrimPrefix(svc.Alias, autowire.ReferenceSigil), svc.Public == nil || *svc.Public)
	}

	return c.Register(id, svc.definition(id))
}

func (s *serviceYAML) definition(id string) *autowire.Definition {
	class := s.Class
	if class == "" && s.Parent == "" && s.Factory == "" {
		class = id
	}

	def := autowire.NewDefinition(class)
	def.Parent = s.Parent
	def.Factory = autowire.ParseCallable(s.Factory, class)
	def.Configurator = autowire.ParseCallable(s.Configurator, class)
	def.Public = s.Public == nil || *s.Public
	def.Abstract = s.Abstract
	def.Synthetic = s.Synthetic
	def.Lifetime = s.Lifetime
	def.File = s.File

	for _, a := range s.Arguments {
		def.Arguments = append(def.Arguments, a.Argument)
	}
	for _, call := range s.Calls {
		def.MethodCalls = append(def.MethodCalls, autowire.MethodCall(call))
	}
	if len(s.Properties) > 0 {
		def.Properties = make(map[string]autowire.Argument, len(s.Properties))
		for name, a := range s.Properties {
			def.Properties[name] = a.Argument
		}
	}
	for _, t := range s.Tags {
		def.Tags = append(def.Tags, autowire.Tag(t))
	}

	return def
}

// Dump writes parameters, definitions and aliases as a services file.
// Output is deterministic: map keys are sorted.
func (c *Container) Dump(w io.Writer) error {
	services := make(map[string]any)

	for _, id := range c.DefinitionIDs() {
		def, ok := c.definitions.Load(id)
		if !ok {
			continue
		}
		services[id] = dumpDefinition(def)
	}
	for _, a := range c.Aliases() {
		if a.Public {
			services[a.ID] = autowire.ReferenceSigil + a.Target
		} else {
			services[a.ID] = serviceYAML{Alias: a.Target, Public: autowire.Bool(false)}
		}
	}

	params := make(map[string]any)
	c.parameters.Range(func(name string, v any) bool {
		params[name] = v
		return true
	})

	out := map[string]any{}
	if len(params) > 0 {
		out["parameters"] = params
	}
	if len(services) > 0 {
		out["services"] = services
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "container.Dump")
	}
	return errors.Wrap(enc.Close(), "container.Dump")
}

func dumpDefinition(def *autowire.Definition) serviceYAML {
	svc := serviceYAML{
		Class:        def.Class,
		Parent:       def.Parent,
		Factory:      def.Factory.String(),
		Configurator: def.Configurator.String(),
		Abstract:     def.Abstract,
		Synthetic:    def.Synthetic,
		Lifetime:     def.Lifetime,
		File:         def.File,
	}
	if !def.Public {
		svc.Public = autowire.Bool(false)
	}

	for _, a := range def.Arguments {
		svc.Arguments = append(svc.Arguments, argumentYAML{a})
	}
	for _, call := range def.MethodCalls {
		svc.Calls = append(svc.Calls, callYAML(call))
	}
	if len(def.Properties) > 0 {
		svc.Properties = make(map[string]argumentYAML, len(def.Properties))
		for name, a := range def.Properties {
			svc.Properties[name] = argumentYAML{a}
		}
	}
	for _, t := range def.Tags {
		svc.Tags = append(svc.Tags, tagYAML(t))
	}

	return svc
}
