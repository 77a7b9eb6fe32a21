package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

var (
	// ErrUnknownUnit is returned when a name has no registered factory.
	ErrUnknownUnit = errors.New("catalog: unknown unit")
	// ErrDuplicateUnit is returned when a name is registered twice.
	ErrDuplicateUnit = errors.New("catalog: duplicate unit")
)

// Factory builds one unit bound to p. A nil p gets a private set.
type Factory func(ctx unit.Context, p *unit.Params) unit.Unit

// Registry maps unit names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given unit name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("catalog: empty unit name")
	}

	if factory == nil {
		return errors.New("catalog: nil factory")
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateUnit, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the factory for name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Len returns the number of registered units.
func (r *Registry) Len() int { return len(r.factories) }

// New builds the unit called name, writes its default parameters into p and
// initializes it.
func (r *Registry) New(name string, ctx unit.Context, p *unit.Params) (unit.Unit, error) {
	factory := r.factories[name]
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}

	u := factory(ctx, p)
	u.InitParams()
	u.Init()

	return u, nil
}
