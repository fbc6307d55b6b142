package flow

import (
	"context"
	"fmt"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/sig"
)

// Composite composes an elaborated graph into one aggregate actor: its busy
// signal is the OR of every member's, and its fragment concatenates every
// member's fragment plus the wiring fragment of every edge.
type Composite struct {
	actor.Core
	graph *Graph
}

// NewComposite elaborates the graph (a no-op if already done) and takes
// exclusive ownership of it. Mutating the graph afterwards is unsupported.
func NewComposite(ctx context.Context, g *Graph, reg *actor.Registry) (*Composite, error) {
	if err := g.Elaborate(ctx, reg, nil); err != nil {
		return nil, err
	}
	c := &Composite{Core: actor.NewCore(), graph: g}
	c.SetName("composite")
	return c, nil
}

// Graph returns the owned, elaborated graph.
func (c *Composite) Graph() *Graph { return c.graph }

// Fragment is recomputed from the graph on every call.
func (c *Composite) Fragment() (*sig.Fragment, error) {
	busies := make([]*sig.Signal, len(c.graph.nodes))
	for i, n := range c.graph.nodes {
		busies[i] = n.Actor().Busy()
	}
	frag := sig.NewFragment(sig.Assign{Dst: c.Busy(), Src: sig.Or(busies...)})

	for _, n := range c.graph.nodes {
		mf, err := n.Actor().Fragment()
		if err != nil {
			return nil, fmt.Errorf("fragment of %s: %w", n, err)
		}
		frag.Add(mf)
	}
	for _, e := range c.graph.edges {
		src, err := lookupEndpoint(e.Source.Actor(), e.SourceEP, actor.Source)
		if err != nil {
			return nil, err
		}
		dst, err := lookupEndpoint(e.Sink.Actor(), e.SinkEP, actor.Sink)
		if err != nil {
			return nil, err
		}
		wire, err := actor.ConnFragment(src, dst)
		if err != nil {
			return nil, fmt.Errorf("wiring %s -> %s: %w", e.Source, e.Sink, err)
		}
		frag.Add(wire)
	}
	return frag, nil
}
