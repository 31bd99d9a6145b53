package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/config"
	"github.com/sectrean/autowire/internal/testutils"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Default(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, autowire.DefaultSettings(), cfg.Settings())
	assert.True(t, cfg.Discovers())
	assert.Equal(t, "info", cfg.Log.Level)
}

func Test_Parse_Toggles(t *testing.T) {
	tests := []struct {
		name   string
		format config.Format
		data   string
		check  func(t *testing.T, s autowire.Settings)
	}{
		{
			name:   "empty yaml",
			format: config.YAML,
			data:   "",
			check: func(t *testing.T, s autowire.Settings) {
				assert.Equal(t, autowire.DefaultSettings(), s)
			},
		},
		{
			name:   "yaml booleans",
			format: config.YAML,
			data: `
autowiring:
  setter_injection: false
  property_injection: ~
  build_definitions: true
`,
			check: func(t *testing.T, s autowire.Settings) {
				assert.False(t, s.SetterInjection.Enabled)
				assert.True(t, s.SetterInjection.WireByType)
				assert.True(t, s.PropertyInjection.Enabled)
				assert.True(t, s.BuildDefinitions)
			},
		},
		{
			name:   "yaml sections",
			format: config.YAML,
			data: `
autowiring:
  enabled: true
  constructor_injection:
    wire_by_type: false
  property_injection:
    wire_by_name: false
    name_suffix: Ref
    parameter_suffix: Param
`,
			check: func(t *testing.T, s autowire.Settings) {
				assert.True(t, s.ConstructorInjection.Enabled)
				assert.False(t, s.ConstructorInjection.WireByType)
				assert.False(t, s.PropertyInjection.WireByName)
				assert.Equal(t, "Ref", s.PropertyInjection.ServiceSuffix)
				assert.Equal(t, "Param", s.PropertyInjection.ParameterSuffix)
			},
		},
		{
			name:   "toml booleans",
			format: config.TOML,
			data: `
[autowiring]
setter_injection = false
build_definitions = false
`,
			check: func(t *testing.T, s autowire.Settings) {
				assert.False(t, s.SetterInjection.Enabled)
				assert.False(t, s.BuildDefinitions)
				assert.True(t, s.ConstructorInjection.Enabled)
			},
		},
		{
			name:   "toml tables",
			format: config.TOML,
			data: `
[autowiring.constructor_injection]
enabled = false

[autowiring.property_injection]
name_suffix = "Ref"
`,
			check: func(t *testing.T, s autowire.Settings) {
				assert.False(t, s.ConstructorInjection.Enabled)
				assert.True(t, s.PropertyInjection.Enabled)
				assert.Equal(t, "Ref", s.PropertyInjection.ServiceSuffix)
				assert.Equal(t, autowire.DefaultParameterSuffix, s.PropertyInjection.ParameterSuffix)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			tt.check(t, cfg.Settings())
		})
	}
}

func Test_Parse_Paths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "acme", "manifests", "mailer.yaml"), "")
	writeFile(t, filepath.Join(dir, "extra.yaml"), "")

	bundles := config.WithBundles(map[string]string{"acme": filepath.Join(dir, "acme")})
	base := config.WithBaseDir(dir)

	want := config.Paths{
		{Pathname: filepath.Join(dir, "acme", "manifests"), FilenamePattern: "*.yaml", Recursive: autowire.Bool(false)},
		{Pathname: filepath.Join(dir, "extra.yaml")},
	}

	t.Run("yaml list", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
autowiring:
  build_definitions:
    paths:
      - {pathname: "@acme/manifests", filename_pattern: "*.yaml", recursive: false}
      - {pathname: extra.yaml}
`), config.YAML, bundles, base)
		require.NoError(t, err)

		assert.Equal(t, want, cfg.Autowiring.BuildDefinitions.Paths)
		assert.False(t, cfg.Autowiring.BuildDefinitions.Paths[0].IsRecursive())
		assert.True(t, cfg.Autowiring.BuildDefinitions.Paths[1].IsRecursive())
	})

	t.Run("yaml mapping", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
autowiring:
  build_definitions:
    paths:
      "@acme/manifests": {filename_pattern: "*.yaml", recursive: false}
      extra.yaml: ~
`), config.YAML, bundles, base)
		require.NoError(t, err)

		assert.Equal(t, want, cfg.Autowiring.BuildDefinitions.Paths)
	})

	t.Run("toml array", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
[[autowiring.build_definitions.paths]]
pathname = "@acme/manifests"
filename_pattern = "*.yaml"
recursive = false

[[autowiring.build_definitions.paths]]
pathname = "extra.yaml"
`), config.TOML, bundles, base)
		require.NoError(t, err)

		assert.Equal(t, want, cfg.Autowiring.BuildDefinitions.Paths)
	})

	t.Run("toml table", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
[autowiring.build_definitions.paths."@acme/manifests"]
filename_pattern = "*.yaml"
recursive = false

[autowiring.build_definitions.paths."extra.yaml"]
`), config.TOML, bundles, base)
		require.NoError(t, err)

		assert.Equal(t, want, cfg.Autowiring.BuildDefinitions.Paths)
	})

	t.Run("services path", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "services.yaml"), "")

		cfg, err := config.Parse([]byte("services: services.yaml"), config.YAML, base)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "services.yaml"), cfg.Services)
	})
}

func Test_Parse_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifests", "mailer.yaml"), "")

	tests := []struct {
		name    string
		format  config.Format
		data    string
		wantIs  error
		wantMsg string
	}{
		{
			name:    "invalid yaml",
			format:  config.YAML,
			data:    "autowiring: [",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "invalid configuration",
		},
		{
			name:    "invalid toml",
			format:  config.TOML,
			data:    "[autowiring",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "invalid configuration",
		},
		{
			name:    "toggle of wrong type",
			format:  config.TOML,
			data:    "[autowiring]\nsetter_injection = 1",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "expected boolean or table",
		},
		{
			name:    "paths of wrong type",
			format:  config.YAML,
			data:    "autowiring:\n  build_definitions:\n    paths: manifests",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "paths must be a list or a mapping",
		},
		{
			name:    "missing pathname",
			format:  config.YAML,
			data:    "autowiring:\n  build_definitions:\n    paths: [{filename_pattern: '*.yaml'}]",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "pathname is required",
		},
		{
			name:    "unknown log level",
			format:  config.YAML,
			data:    "log: {level: verbose}",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "level must be one of: debug info warn error",
		},
		{
			name:    "same suffixes",
			format:  config.YAML,
			data:    "autowiring:\n  property_injection: {name_suffix: Ref, parameter_suffix: Ref}",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "name_suffix and parameter_suffix must differ",
		},
		{
			name:    "unknown bundle",
			format:  config.YAML,
			data:    "autowiring:\n  build_definitions:\n    paths: {'@missing/manifests': ~}",
			wantIs:  config.ErrBundleNotFound,
			wantMsg: `bundle "missing"`,
		},
		{
			name:    "missing path",
			format:  config.YAML,
			data:    "autowiring:\n  build_definitions:\n    paths: {" + filepath.Join(dir, "missing") + ": ~}",
			wantIs:  config.ErrPathNotFound,
			wantMsg: "does not exist or is read-protected",
		},
		{
			name:    "directory without pattern",
			format:  config.YAML,
			data:    "autowiring:\n  build_definitions:\n    paths: {" + filepath.Join(dir, "manifests") + ": ~}",
			wantIs:  config.ErrInvalidConfig,
			wantMsg: "filename_pattern is required for directories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.data), tt.format)
			testutils.LogError(t, err)

			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func Test_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifests", "mailer.toml"), "")
	writeFile(t, filepath.Join(dir, "autowire.toml"), `
services = "services.yaml"

[parameters]
"mailer.host" = "localhost"

[autowiring.build_definitions.paths.manifests]
filename_pattern = "*.toml"

[log]
level = "debug"
`)

	t.Run("relative to the file", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(dir, "autowire.toml"))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "services.yaml"), cfg.Services)
		assert.Equal(t, filepath.Join(dir, "manifests"), cfg.Autowiring.BuildDefinitions.Paths[0].Pathname)
		assert.Equal(t, map[string]any{"mailer.host": "localhost"}, cfg.Parameters)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("format by extension", func(t *testing.T) {
		assert.Equal(t, config.TOML, config.FormatOf("autowire.TOML"))
		assert.Equal(t, config.YAML, config.FormatOf("autowire.yml"))
		assert.Equal(t, config.YAML, config.FormatOf("autowire"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "missing.yaml"))
		testutils.LogError(t, err)

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func Test_Config_Discovers(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{name: "default", data: "", want: true},
		{name: "autowiring disabled", data: "autowiring: {enabled: false}", want: false},
		{name: "build definitions disabled", data: "autowiring: {build_definitions: false}", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.data), config.YAML)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Discovers())
		})
	}
}
