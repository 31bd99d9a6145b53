// Package config loads the autowiring configuration from YAML or TOML files.
//
// Example (YAML):
//
//	autowiring:
//	  build_definitions:
//	    paths:
//	      "@acme/manifests": {filename_pattern: "*.yaml"}
//	  property_injection:
//	    name_suffix: Service
//	  setter_injection: false
//	parameters:
//	  mailer.transport: smtp
//	services: services.yaml
//	log:
//	  level: debug
//
// Omitted or null sections are enabled with their defaults, false disables a section.
package config

import "github.com/sectrean/autowire"

// Config is the root of a configuration file.
type Config struct {
	Autowiring Autowiring `yaml:"autowiring" toml:"autowiring"`
	// Parameters seed the parameter bag of the container.
	Parameters map[string]any `yaml:"parameters" toml:"parameters"`
	// Services is the path of a services file loaded before resolution.
	Services string `yaml:"services" toml:"services"`
	Log      Log    `yaml:"log" toml:"log"`
}

// Autowiring switches the resolution features.
type Autowiring struct {
	Enabled              *bool             `yaml:"enabled" toml:"enabled"`
	BuildDefinitions     BuildDefinitions  `yaml:"build_definitions" toml:"build_definitions"`
	PropertyInjection    PropertyInjection `yaml:"property_injection" toml:"property_injection"`
	SetterInjection      MemberInjection   `yaml:"setter_injection" toml:"setter_injection"`
	ConstructorInjection MemberInjection   `yaml:"constructor_injection" toml:"constructor_injection"`
}

// BuildDefinitions configures where class manifests are discovered.
type BuildDefinitions struct {
	Enabled *bool `yaml:"enabled" toml:"enabled"`
	Paths   Paths `yaml:"paths" toml:"paths" validate:"dive"`
}

// Paths are the manifest search paths in file order.
type Paths []Path

// Path is a manifest file or directory.
type Path struct {
	// Pathname is a file or a directory. "@bundle/..." is resolved against the bundle map.
	Pathname string `yaml:"pathname" toml:"pathname" validate:"required"`
	// FilenamePattern is a glob or a "/regex/". Required for directories.
	FilenamePattern string `yaml:"filename_pattern" toml:"filename_pattern"`
	// Recursive defaults to true.
	Recursive *bool `yaml:"recursive" toml:"recursive"`
}

// IsRecursive reports whether subdirectories are searched.
func (p Path) IsRecursive() bool {
	return p.Recursive == nil || *p.Recursive
}

// PropertyInjection configures property injection.
type PropertyInjection struct {
	Enabled    *bool `yaml:"enabled" toml:"enabled"`
	WireByName *bool `yaml:"wire_by_name" toml:"wire_by_name"`
	// NameSuffix marks properties wired to services. Defaults to "Service".
	NameSuffix string `yaml:"name_suffix" toml:"name_suffix"`
	// ParameterSuffix marks properties wired to parameters. Defaults to "Parameter".
	ParameterSuffix string `yaml:"parameter_suffix" toml:"parameter_suffix"`
}

// MemberInjection configures constructor or setter injection.
type MemberInjection struct {
	Enabled    *bool `yaml:"enabled" toml:"enabled"`
	WireByType *bool `yaml:"wire_by_type" toml:"wire_by_type"`
}

// Log configures the logger of the CLI.
type Log struct {
	Level       string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `yaml:"development" toml:"development"`
}

// Default returns a configuration with every feature enabled and no search paths.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	p := &c.Autowiring.PropertyInjection
	if p.NameSuffix == "" {
		p.NameSuffix = autowire.DefaultServiceSuffix
	}
	if p.ParameterSuffix == "" {
		p.ParameterSuffix = autowire.DefaultParameterSuffix
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Settings converts the configuration into resolver settings.
func (c *Config) Settings() autowire.Settings {
	a := c.Autowiring
	return autowire.Settings{
		Enabled:          enabled(a.Enabled),
		BuildDefinitions: enabled(a.BuildDefinitions.Enabled),
		PropertyInjection: autowire.PropertyInjectionSettings{
			Enabled:         enabled(a.PropertyInjection.Enabled),
			WireByName:      enabled(a.PropertyInjection.WireByName),
			ServiceSuffix:   a.PropertyInjection.NameSuffix,
			ParameterSuffix: a.PropertyInjection.ParameterSuffix,
		},
		SetterInjection: autowire.MemberInjectionSettings{
			Enabled:    enabled(a.SetterInjection.Enabled),
			WireByType: enabled(a.SetterInjection.WireByType),
		},
		ConstructorInjection: autowire.MemberInjectionSettings{
			Enabled:    enabled(a.ConstructorInjection.Enabled),
			WireByType: enabled(a.ConstructorInjection.WireByType),
		},
	}
}

// Discovers reports whether manifests should be discovered at all.
func (c *Config) Discovers() bool {
	return enabled(c.Autowiring.Enabled) && enabled(c.Autowiring.BuildDefinitions.Enabled)
}

func enabled(b *bool) bool {
	return b == nil || *b
}
