package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/physics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	resolvers   map[string]func(damping float64) dynamo.Resolver
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		resolvers:   make(map[string]func(float64) dynamo.Resolver),
	}

	r.integrators["semi_implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	r.resolvers["snapshot"] = func(d float64) dynamo.Resolver { return physics.NewSnapshot(d) }
	r.resolvers["sequential"] = func(d float64) dynamo.Resolver { return physics.NewSequential(d) }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: integrator %q", dynamo.ErrUnknownComponent, name)
	}
	return fn(), nil
}

func (r *Registry) GetResolver(name string, damping float64) (dynamo.Resolver, error) {
	fn, ok := r.resolvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: collision %q", dynamo.ErrUnknownComponent, name)
	}
	return fn(damping), nil
}

func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }
func (r *Registry) ListResolvers() []string   { return sortedKeys(r.resolvers) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the standard instrumentation for a world with the
// given bounds.
func (r *Registry) DefaultMetrics(bounds physics.Bounds) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(bounds.Height),
		metrics.NewEnergyLoss(bounds.Height),
		metrics.NewOverlap(),
		metrics.NewContacts(1e-6),
		metrics.NewContainment(bounds, 1e-9),
	}
}
