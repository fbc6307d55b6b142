package actor

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownClass is returned when building an actor whose class name has no
// registered factory.
var ErrUnknownClass = errors.New("unknown actor class")

// Params is the named-parameter map an actor class is constructed from.
type Params map[string]cty.Value

// Clone returns an independent copy of the parameter map.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Factory constructs an actor from its parameter map.
type Factory func(params Params) (Actor, error)

// Module is implemented by packages that contribute actor classes.
type Module interface {
	Register(r *Registry)
}

// Registry holds the actor classes known to a single application instance.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry populated by the given modules.
func NewRegistry(modules ...Module) *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register adds a factory under a class name, replacing any previous one.
func (r *Registry) Register(class string, f Factory) {
	r.factories[class] = f
}

// Has reports whether the class name is registered.
func (r *Registry) Has(class string) bool {
	_, ok := r.factories[class]
	return ok
}

// Build constructs an actor of the named class from the given parameters.
func (r *Registry) Build(class string, params Params) (Actor, error) {
	f, ok := r.factories[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	a, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("building actor class %q: %w", class, err)
	}
	return a, nil
}
