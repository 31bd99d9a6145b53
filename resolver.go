package autowire

import (
	"go.uber.org/zap"

	"github.com/sectrean/autowire/internal/errors"
)

// Resolver decides the wiring of a batch of classes and writes it to a [Registry].
//
// A Resolver may run any number of passes. Every pass rebuilds its transient state
// (classname index, type catalog, parameter namer) from the current registry.
// A Resolver must not run passes concurrently.
type Resolver struct {
	registry Registry
	settings Settings
	logger   *zap.Logger
	namers   NamerFactory
	types    *Types
	maxDepth int
}

// NewResolver creates a [Resolver] writing to reg.
//
// Available options:
//   - [WithSettings] switches resolution features.
//   - [WithLogger] sets the logger.
//   - [WithParameterNamer] sets how literal parameters are named.
//   - [WithTypes] declares classes and interfaces outside of the batch.
//   - [WithMaxDepth] bounds parent, factory and base class chains.
func NewResolver(reg Registry, opts ...ResolverOption) (*Resolver, error) {
	if reg == nil {
		return nil, errors.New("autowire.NewResolver: registry is nil")
	}

	r := &Resolver{
		registry: reg,
		settings: DefaultSettings(),
		logger:   zap.NewNop(),
		namers:   SequenceNamer(DefaultParameterPrefix),
		types:    NewTypes(),
		maxDepth: DefaultMaxDepth,
	}

	var errs errors.MultiError
	for _, opt := range opts {
		errs = errs.Append(opt.applyResolver(r))
	}
	if err := errs.Wrap("autowire.NewResolver"); err != nil {
		return nil, err
	}

	return r, nil
}

// Result summarises a completed pass.
type Result struct {
	// Services are the ids of the wired classes in discovery order.
	Services []string
	// Parameters are the names of the parameters generated for literal hints.
	Parameters []string
}

// Resolve runs one pass over classes.
//
// Phase one assigns a service id to every class carrying a service directive.
// Phase two builds the classname index and runs the constructor, method and
// property injectors for every identified class in order.
// The first failure aborts the pass.
func (r *Resolver) Resolve(classes []ClassDescriptor) (*Result, error) {
	if !r.settings.Enabled {
		r.logger.Debug("autowiring disabled")
		return &Result{}, nil
	}

	for i := range classes {
		if err := classes[i].validate(); err != nil {
			return nil, errors.Wrap(err, "autowire.Resolve")
		}
	}

	p := r.newPass(classes)

	ids := make([]string, len(classes))
	identities := newIdentityResolver(p, classes)
	for i := range classes {
		id, err := identities.Resolve(&classes[i])
		if err != nil {
			return nil, errors.Wrap(err, "autowire.Resolve")
		}
		ids[i] = id
	}

	idx, err := BuildClassnameIndex(r.registry, p.types, r.maxDepth)
	if err != nil {
		return nil, errors.Wrap(err, "autowire.Resolve")
	}
	p.index = idx
	for _, class := range idx.Classes() {
		p.types.declareIfMissing(class)
	}

	total, ambiguous := idx.Len()
	r.logger.Debug("classname index built",
		zap.Int("types", total),
		zap.Int("ambiguous", ambiguous),
	)

	res := &Result{}
	for i := range classes {
		id := ids[i]
		if id == "" {
			continue
		}

		c := &classes[i]
		if err := p.injectConstructor(id, c); err != nil {
			return nil, errors.Wrap(err, "autowire.Resolve")
		}
		if err := p.injectMethods(id, c); err != nil {
			return nil, errors.Wrap(err, "autowire.Resolve")
		}
		if err := p.injectProperties(id, c); err != nil {
			return nil, errors.Wrap(err, "autowire.Resolve")
		}

		res.Services = append(res.Services, id)
	}
	res.Parameters = p.generated

	r.logger.Info("autowiring pass completed",
		zap.Int("classes", len(classes)),
		zap.Int("services", len(res.Services)),
		zap.Int("parameters", len(res.Parameters)),
	)
	return res, nil
}

func (r *Resolver) newPass(classes []ClassDescriptor) *pass {
	types := r.types.clone()
	for i := range classes {
		types.DeclareClass(&classes[i])
	}

	return &pass{
		reg:        r.registry,
		settings:   r.settings,
		logger:     r.logger,
		types:      types,
		namer:      r.namers(),
		maxDepth:   r.maxDepth,
		identities: make(map[string]string),
	}
}
