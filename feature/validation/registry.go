package validation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"media-catalog/core/tree"

	"go.uber.org/zap"
)

// ErrUnknownSchema is returned for a schema name without a registered validator.
var ErrUnknownSchema = errors.New("unknown validation schema")

// Schema names of the built-in validators.
const (
	SchemaMovie    = "movie"
	SchemaTvSeries = "tvseries"
	SchemaPersonal = "personal"
)

// Validator checks one volume against a naming schema.
type Validator interface {
	Schema() string
	Validate(ctx context.Context, vol *tree.Volume) *Violations
}

// Dependencies are handed to every validator factory.
type Dependencies struct {
	// Finder is optional; nil disables enrichment.
	Finder Finder
	Logger *zap.Logger
	// Now is the clock used for the "year in the future" rule.
	Now func() time.Time
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Factory builds a validator.
type Factory func(deps Dependencies) Validator

// Registry is an immutable schema name to factory mapping.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry copies factories into a registry.
func NewRegistry(factories map[string]Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for name, f := range factories {
		r.factories[name] = f
	}
	return r
}

// DefaultRegistry holds the movie, tvseries and personal validators.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Factory{
		SchemaMovie:    NewMovieValidator,
		SchemaTvSeries: NewTvSeriesValidator,
		SchemaPersonal: NewPersonalValidator,
	})
}

// Names returns the registered schema names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check returns ErrUnknownSchema when name is neither empty nor registered.
func (r *Registry) Check(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := r.factories[name]; !ok {
		return fmt.Errorf("%w: %q (known: %v)", ErrUnknownSchema, name, r.Names())
	}
	return nil
}

// New builds the validator registered under name.
func (r *Registry) New(name string, deps Dependencies) (Validator, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownSchema, name, r.Names())
	}
	return f(deps.withDefaults()), nil
}
