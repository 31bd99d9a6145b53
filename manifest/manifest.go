// Package manifest produces class descriptors from YAML or TOML manifest files.
//
// A manifest describes classes, their members and their injection directives:
//
//	interfaces:
//	  - name: Acme\MailerInterface
//	classes:
//	  - name: Acme\Mailer
//	    interfaces: [Acme\MailerInterface]
//	    service: {id: mailer, tags: [mailer]}
//	    constructor:
//	      inject: {transport: "%mailer.transport%"}
//	      parameters:
//	        - {name: transport, type: string}
//	        - {name: logger, type: "?Acme\\Logger"}
//	    methods:
//	      - name: setCache
//	        inject: ["@cache"]
//	        optional: true
//	        parameters:
//	          - {name: cache, type: Acme\Cache, default: null}
//	    properties:
//	      - {name: templatingService}
package manifest

import (
	"strings"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/internal/errors"
)

// Manifest is the content of one manifest file.
type Manifest struct {
	Classes    []Class     `yaml:"classes" toml:"classes" validate:"dive"`
	Interfaces []Interface `yaml:"interfaces" toml:"interfaces" validate:"dive"`
	// Types declares classes outside of the batch, e.g. classes of manually
	// configured services, so that interface lookups can see them.
	Types []Type `yaml:"types" toml:"types" validate:"dive"`
}

// Class is a class declaration.
type Class struct {
	Name        string     `yaml:"name" toml:"name" validate:"required"`
	Base        string     `yaml:"base" toml:"base"`
	Interfaces  []string   `yaml:"interfaces" toml:"interfaces"`
	Abstract    bool       `yaml:"abstract" toml:"abstract"`
	Service     *Service   `yaml:"service" toml:"service"`
	Constructor *Method    `yaml:"constructor" toml:"constructor"`
	Methods     []Method   `yaml:"methods" toml:"methods" validate:"dive"`
	Properties  []Property `yaml:"properties" toml:"properties" validate:"dive"`
}

// Interface is an interface declaration.
type Interface struct {
	Name    string   `yaml:"name" toml:"name" validate:"required"`
	Extends []string `yaml:"extends" toml:"extends"`
}

// Type is a class declaration without a service.
type Type struct {
	Name       string   `yaml:"name" toml:"name" validate:"required"`
	Base       string   `yaml:"base" toml:"base"`
	Interfaces []string `yaml:"interfaces" toml:"interfaces"`
}

// Service is the service directive of a class.
// It can also be written as `service: true` or `service: some.id`.
type Service struct {
	ID           string `yaml:"id" toml:"id"`
	Public       *bool  `yaml:"public" toml:"public"`
	Tags         []Tag  `yaml:"tags" toml:"tags"`
	Scope        string `yaml:"scope" toml:"scope"`
	File         string `yaml:"file" toml:"file"`
	Factory      string `yaml:"factory" toml:"factory"`
	Configurator string `yaml:"configurator" toml:"configurator"`

	disabled bool
}

// Tag is a service tag. It can be written as a name or as {name: ..., attribute: value}.
type Tag struct {
	Name       string
	Attributes map[string]string
}

// Method is a method declaration.
type Method struct {
	Name       string      `yaml:"name" toml:"name"`
	Static     bool        `yaml:"static" toml:"static"`
	Abstract   bool        `yaml:"abstract" toml:"abstract"`
	Destructor bool        `yaml:"destructor" toml:"destructor"`
	Inject     *Inject     `yaml:"inject" toml:"inject"`
	Optional   *bool       `yaml:"optional" toml:"optional"`
	Strict     *bool       `yaml:"strict" toml:"strict"`
	Parameters []Parameter `yaml:"parameters" toml:"parameters" validate:"dive"`
}

// Property is a property declaration.
type Property struct {
	Name     string  `yaml:"name" toml:"name" validate:"required"`
	Type     string  `yaml:"type" toml:"type"`
	Static   bool    `yaml:"static" toml:"static"`
	Inject   *Inject `yaml:"inject" toml:"inject"`
	Optional *bool   `yaml:"optional" toml:"optional"`
	Strict   *bool   `yaml:"strict" toml:"strict"`
}

// Parameter is a method parameter.
// A "default" key, even with a null value, declares a default.
type Parameter struct {
	Name       string `validate:"required"`
	Type       string
	Nullable   bool
	Variadic   bool
	HasDefault bool
	Default    any
}

// Inject is an inject directive. It can be written as true (no hints),
// a single hint, a list of positional hints or a mapping of named hints.
type Inject struct {
	Values   []any
	Named    map[string]any
	disabled bool
}

// Descriptors converts the manifest into class descriptors and type declarations.
func (m *Manifest) Descriptors() ([]autowire.ClassDescriptor, []autowire.TypeDeclaration, error) {
	classes := make([]autowire.ClassDescriptor, 0, len(m.Classes))
	for i := range m.Classes {
		c, err := m.Classes[i].descriptor()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "class %s", m.Classes[i].Name)
		}
		classes = append(classes, c)
	}

	types := make([]autowire.TypeDeclaration, 0, len(m.Interfaces)+len(m.Types))
	for _, iface := range m.Interfaces {
		types = append(types, autowire.TypeDeclaration{
			Name:       iface.Name,
			Interface:  true,
			Interfaces: iface.Extends,
		})
	}
	for _, t := range m.Types {
		types = append(types, autowire.TypeDeclaration{
			Name:       t.Name,
			Base:       t.Base,
			Interfaces: t.Interfaces,
		})
	}

	return classes, types, nil
}

func (c *Class) descriptor() (autowire.ClassDescriptor, error) {
	d := autowire.ClassDescriptor{
		Name:       c.Name,
		Base:       c.Base,
		Interfaces: c.Interfaces,
		Abstract:   c.Abstract,
	}

	if c.Service != nil && !c.Service.disabled {
		svc, err := c.Service.directive()
		if err != nil {
			return d, err
		}
		d.Service = svc
	}

	if c.Constructor != nil {
		ctor := c.Constructor.descriptor()
		if ctor.Name == "" {
			ctor.Name = "constructor"
		}
		d.Constructor = &ctor
	}

	for i := range c.Methods {
		if c.Methods[i].Name == "" {
			return d, errors.Errorf("method %d: name is empty", i)
		}
		d.Methods = append(d.Methods, c.Methods[i].descriptor())
	}

	for _, p := range c.Properties {
		d.Properties = append(d.Properties, autowire.PropertyDescriptor{
			Name:   p.Name,
			Type:   autowire.ParseTypeRef(p.Type),
			Static: p.Static,
			Directives: autowire.Directives{
				Inject:   p.Inject.directive(),
				Optional: p.Optional,
				Strict:   p.Strict,
			},
		})
	}

	return d, nil
}

func (s *Service) directive() (*autowire.ServiceDirective, error) {
	lifetime, err := autowire.ParseLifetime(s.Scope)
	if err != nil {
		return nil, err
	}

	d := &autowire.ServiceDirective{
		ID:           s.ID,
		Public:       s.Public,
		Lifetime:     lifetime,
		File:         s.File,
		Factory:      s.Factory,
		Configurator: s.Configurator,
	}
	for _, t := range s.Tags {
		d.Tags = append(d.Tags, autowire.Tag{Name: t.Name, Attributes: t.Attributes})
	}
	return d, nil
}

func (m *Method) descriptor() autowire.MethodDescriptor {
	d := autowire.MethodDescriptor{
		Name:       m.Name,
		Static:     m.Static,
		Abstract:   m.Abstract,
		Destructor: m.Destructor,
		Directives: autowire.Directives{
			Inject:   m.Inject.directive(),
			Optional: m.Optional,
			Strict:   m.Strict,
		},
	}

	for _, p := range m.Parameters {
		d.Parameters = append(d.Parameters, autowire.ParameterDescriptor{
			Name:       p.Name,
			Type:       autowire.ParseTypeRef(p.Type),
			Nullable:   p.Nullable || strings.HasPrefix(strings.TrimSpace(p.Type), "?"),
			Variadic:   p.Variadic,
			HasDefault: p.HasDefault,
			Default:    p.Default,
		})
	}

	return d
}

func (i *Inject) directive() *autowire.InjectDirective {
	if i == nil || i.disabled {
		return nil
	}
	return &autowire.InjectDirective{Values: i.Values, Named: i.Named}
}
