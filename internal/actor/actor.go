package actor

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flownetgo/internal/sig"
)

// ErrAmbiguousEndpoint is returned when an actor is asked for its unique
// endpoint of a polarity but does not expose exactly one.
var ErrAmbiguousEndpoint = errors.New("actor does not have exactly one endpoint of the required polarity")

// Actor is a unit exposing named, polarity-typed endpoints, a busy signal,
// and a composable structural fragment.
type Actor interface {
	Name() string
	SetName(name string)
	Endpoints() []*Endpoint
	Endpoint(name string) *Endpoint
	SingleSource() (*Endpoint, error)
	SingleSink() (*Endpoint, error)
	Busy() *sig.Signal
	Fragment() (*sig.Fragment, error)
	// Attributes is a diagnostic view of the actor's construction
	// parameters. It carries no contract.
	Attributes() map[string]cty.Value
}

// Core is the embeddable implementation of the endpoint and naming half of
// Actor. Concrete actors embed it and provide Fragment.
type Core struct {
	name string
	eps  []*Endpoint
	busy *sig.Signal
}

// NewCore creates an actor core over the given endpoints, in order.
func NewCore(eps ...*Endpoint) Core {
	return Core{eps: eps, busy: sig.New("busy", 1)}
}

func (c *Core) Name() string { return c.name }

// SetName assigns the actor's display name and qualifies its signal names
// under it. Renaming is permitted; the last name wins.
func (c *Core) SetName(name string) {
	c.name = name
	prefix := ""
	if name != "" {
		prefix = name + "_"
	}
	c.busy.Name = prefix + "busy"
	for _, e := range c.eps {
		e.qualify(prefix)
	}
}

func (c *Core) Endpoints() []*Endpoint { return c.eps }

// Endpoint returns the endpoint with the given name, or nil.
func (c *Core) Endpoint(name string) *Endpoint {
	for _, e := range c.eps {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (c *Core) single(pol Polarity) (*Endpoint, error) {
	var found *Endpoint
	count := 0
	for _, e := range c.eps {
		if e.Pol == pol {
			found = e
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("%w: actor %q has %d %s endpoints", ErrAmbiguousEndpoint, c.name, count, pol)
	}
	return found, nil
}

// SingleSource returns the sole source endpoint, failing unless exactly one
// exists.
func (c *Core) SingleSource() (*Endpoint, error) { return c.single(Source) }

// SingleSink returns the sole sink endpoint, failing unless exactly one
// exists.
func (c *Core) SingleSink() (*Endpoint, error) { return c.single(Sink) }

func (c *Core) Busy() *sig.Signal { return c.busy }

// Attributes on the bare core is empty; actors with parameters override it.
func (c *Core) Attributes() map[string]cty.Value { return nil }
