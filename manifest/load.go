package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sectrean/autowire"
	"github.com/sectrean/autowire/internal/errors"
)

var (
	// ErrInvalidManifest is returned when a manifest cannot be decoded or fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrDuplicateClass is returned when two manifests declare the same class.
	ErrDuplicateClass = errors.New("class declared twice")
)

// Batch is the merged content of a set of manifest files.
type Batch struct {
	// Classes are in file order, then declaration order.
	Classes []autowire.ClassDescriptor
	Types   []autowire.TypeDeclaration
}

var validate = validator.New()

// Decode reads a manifest. The format is chosen by the file extension:
// ".toml" for TOML, ".yaml" or ".yml" for YAML.
func Decode(name string, data []byte) (*Manifest, error) {
	m := &Manifest{}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(m); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: %v", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: %v", name, err)
		}
	default:
		return nil, errors.Wrapf(ErrInvalidManifest, "%s: unsupported file extension", name)
	}

	if err := validate.Struct(m); err != nil {
		return nil, errors.Wrapf(ErrInvalidManifest, "%s: %v", name, err)
	}
	return m, nil
}

// LoadFiles decodes and merges manifest files in order.
// All problems are reported together.
func LoadFiles(files []string) (*Batch, error) {
	var (
		batch    = &Batch{}
		errs     errors.MultiError
		declared = make(map[string]string)
	)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			errs = errs.Append(err)
			continue
		}

		m, err := Decode(file, data)
		if err != nil {
			errs = errs.Append(err)
			continue
		}

		classes, types, err := m.Descriptors()
		if err != nil {
			errs = errs.Append(errors.Wrap(err, file))
			continue
		}

		for _, c := range classes {
			if prev, dup := declared[c.Name]; dup {
				errs = errs.Append(errors.Wrapf(ErrDuplicateClass, "%s: class %s already declared in %s", file, c.Name, prev))
				continue
			}
			declared[c.Name] = file
			batch.Classes = append(batch.Classes, c)
		}
		batch.Types = append(batch.Types, types...)
	}

	if err := errs.Wrap("manifest.LoadFiles"); err != nil {
		return nil, err
	}
	return batch, nil
}
