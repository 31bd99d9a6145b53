package autowire

import (
	"go.uber.org/zap"

	"github.com/sectrean/autowire/internal/errors"
)

// ResolverOption is used to configure a new [Resolver].
type ResolverOption interface {
	applyResolver(*Resolver) error
}

type resolverOption func(*Resolver) error

func (f resolverOption) applyResolver(r *Resolver) error {
	return f(r)
}

// WithSettings replaces the default settings.
func WithSettings(s Settings) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if s.PropertyInjection.WireByName {
			if s.PropertyInjection.ServiceSuffix == "" || s.PropertyInjection.ParameterSuffix == "" {
				return errors.New("with settings: property name suffixes must not be empty")
			}
		}

		r.settings = s
		return nil
	})
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l *zap.Logger) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if l == nil {
			return errors.New("with logger: logger is nil")
		}

		r.logger = l.Named("autowire")
		return nil
	})
}

// WithParameterNamer sets the factory for the namer of generated literal parameters.
// The default is [SequenceNamer] with [DefaultParameterPrefix].
func WithParameterNamer(f NamerFactory) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if f == nil {
			return errors.New("with parameter namer: factory is nil")
		}

		r.namers = f
		return nil
	})
}

// WithTypes declares classes and interfaces that are not part of the resolved batch.
//
// Interfaces must be declared for the interface fallback of type-based wiring.
func WithTypes(decls ...TypeDeclaration) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		for _, d := range decls {
			if d.Name == "" {
				return errors.New("with types: declaration name is empty")
			}
			r.types.Declare(d)
		}
		return nil
	})
}

// WithMaxDepth bounds parent, factory and base class chains.
func WithMaxDepth(depth int) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if depth <= 0 {
			return errors.Errorf("with max depth: depth must be positive, got %d", depth)
		}

		r.maxDepth = depth
		return nil
	})
}
