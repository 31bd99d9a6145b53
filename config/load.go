package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sectrean/autowire/internal/errors"
)

var (
	// ErrInvalidConfig is returned when a configuration cannot be decoded or fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrBundleNotFound is returned when a "@bundle/..." path names an unknown bundle.
	ErrBundleNotFound = errors.New("bundle not found")
	// ErrPathNotFound is returned when a search path does not exist.
	ErrPathNotFound = errors.New("path not found")
)

// Format is a configuration file format.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf returns the format for a file name by extension. Unknown extensions are YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

type loader struct {
	bundles  map[string]string
	baseDir  string
	validate *validator.Validate
}

// Option is used to configure [Load] and [Parse].
type Option func(*loader)

// WithBundles sets the bundle directories that "@name/..." paths resolve against.
func WithBundles(bundles map[string]string) Option {
	return func(l *loader) {
		l.bundles = bundles
	}
}

// WithBaseDir sets the directory relative paths are resolved against.
// [Load] defaults it to the directory of the configuration file.
func WithBaseDir(dir string) Option {
	return func(l *loader) {
		l.baseDir = dir
	}
}

// Load reads, normalizes and validates a configuration file.
func Load(path string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config.Load")
	}

	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	cfg, err := Parse(data, FormatOf(path), opts...)
	return cfg, errors.Wrapf(err, "config.Load %s", path)
}

// Parse decodes, normalizes and validates a configuration.
func Parse(data []byte, format Format, opts ...Option) (*Config, error) {
	l := &loader{validate: validator.New()}
	for _, opt := range opts {
		opt(l)
	}

	cfg := &Config{}
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
		}
	case YAML:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
			}
		}
	default:
		return nil, errors.Errorf("unknown configuration format %q", format)
	}

	cfg.applyDefaults()

	if err := l.resolvePaths(cfg); err != nil {
		return nil, err
	}
	if err := l.check(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *loader) resolvePaths(cfg *Config) error {
	paths := cfg.Autowiring.BuildDefinitions.Paths
	for i := range paths {
		resolved, err := l.resolve(paths[i].Pathname)
		if err != nil {
			return err
		}
		paths[i].Pathname = resolved
	}

	if cfg.Services != "" {
		resolved, err := l.resolve(cfg.Services)
		if err != nil {
			return err
		}
		cfg.Services = resolved
	}

	return nil
}

// resolve expands "@bundle/suffix" and makes relative paths absolute to the base dir.
func (l *loader) resolve(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "@"); ok {
		name, suffix, _ := strings.Cut(rest, "/")
		dir, ok := l.bundles[name]
		if !ok || name == "" {
			return "", errors.Wrapf(ErrBundleNotFound, "bundle %q in path %q", name, path)
		}
		return filepath.Join(dir, suffix), nil
	}

	if l.baseDir != "" && !filepath.IsAbs(path) {
		return filepath.Join(l.baseDir, path), nil
	}
	return path, nil
}

// check validates struct tags and the search paths on disk.
func (l *loader) check(cfg *Config) error {
	if err := l.validate.Struct(cfg); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%s", formatValidationError(err))
	}
	if cfg.Autowiring.PropertyInjection.NameSuffix == cfg.Autowiring.PropertyInjection.ParameterSuffix {
		return errors.Wrapf(ErrInvalidConfig, "property_injection: name_suffix and parameter_suffix must differ")
	}

	var errs errors.MultiError
	for _, p := range cfg.Autowiring.BuildDefinitions.Paths {
		info, err := os.Stat(p.Pathname)
		if err != nil {
			errs = errs.Append(errors.Wrapf(ErrPathNotFound, "pathname %q does not exist or is read-protected", p.Pathname))
			continue
		}
		if info.IsDir() && p.FilenamePattern == "" {
			errs = errs.Append(errors.Wrapf(ErrInvalidConfig, "pathname %q: filename_pattern is required for directories", p.Pathname))
		}
	}

	return errs.Join()
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, len(verrs))
	for i, e := range verrs {
		field := strings.ToLower(e.Namespace())
		switch e.Tag() {
		case "required":
			msgs[i] = field + " is required"
		case "oneof":
			msgs[i] = field + " must be one of: " + e.Param()
		default:
			msgs[i] = field + " is invalid"
		}
	}
	return strings.Join(msgs, "; ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
