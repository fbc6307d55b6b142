package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/ctxlog"
	"github.com/vk/flownetgo/internal/sig"
)

// instantiateActors is pass 3: instantiate user actors, infer and
// instantiate plumbing, then resolve omitted endpoint names.
func (g *Graph) instantiateActors(ctx context.Context, reg *actor.Registry) error {
	for _, n := range g.nodes {
		if n.IsAbstract() && n.Kind() == KindUser {
			if err := n.Instantiate(reg); err != nil {
				return fmt.Errorf("instantiating %s: %w", n, err)
			}
		}
	}
	if err := g.inferPlumbingLayouts(ctx); err != nil {
		return err
	}
	return g.resolveEndpoints()
}

// inferPlumbingLayouts resolves adapter layouts by fixpoint: a combinator
// takes the layout of the sink endpoint its single outbound edge feeds, a
// splitter the layout of the source endpoint feeding its single inbound
// edge. Nodes whose layout neighbor is still abstract are skipped until a
// later sweep. A sweep that resolves nothing while abstract plumbing remains
// is a stall, reported as a distinct fault instead of looping.
func (g *Graph) inferPlumbingLayouts(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for {
		var pending []*Node
		for _, n := range g.nodes {
			if n.IsAbstract() && n.Kind() != KindUser {
				pending = append(pending, n)
			}
		}
		if len(pending) == 0 {
			return nil
		}
		progress := false
		for _, n := range pending {
			layout, ok, err := g.neighborLayout(n)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := n.instantiatePlumbing(layout); err != nil {
				return err
			}
			logger.Debug("Plumbing layout inferred.", "node", n.Name(), "fields", len(layout))
			progress = true
		}
		if !progress {
			names := make([]string, len(pending))
			for i, n := range pending {
				names[i] = n.String()
			}
			return fmt.Errorf("%w: stuck nodes %s", ErrPlumbingStalled, strings.Join(names, ", "))
		}
	}
}

// neighborLayout reads the layout an adapter node must adopt from its
// concrete layout neighbor. ok is false while that neighbor is abstract.
func (g *Graph) neighborLayout(n *Node) (sig.Layout, bool, error) {
	var (
		other *Node
		epRef string
		pol   actor.Polarity
	)
	switch n.Kind() {
	case KindCombinator:
		edges := g.outEdges(n)
		if len(edges) != 1 {
			return nil, false, fmt.Errorf("%w: %s has %d outbound edges", ErrPlumbingShape, n, len(edges))
		}
		other, epRef, pol = edges[0].Sink, edges[0].SinkEP, actor.Sink
	case KindSplitter:
		edges := g.inEdges(n)
		if len(edges) != 1 {
			return nil, false, fmt.Errorf("%w: %s has %d inbound edges", ErrPlumbingShape, n, len(edges))
		}
		other, epRef, pol = edges[0].Source, edges[0].SourceEP, actor.Source
	default:
		return nil, false, fmt.Errorf("%w: %s", ErrPlumbingShape, n)
	}
	if other.IsAbstract() {
		return nil, false, nil
	}
	ep, err := lookupEndpoint(other.Actor(), epRef, pol)
	if err != nil {
		return nil, false, err
	}
	return ep.Layout, true, nil
}

// lookupEndpoint finds a named endpoint on a concrete actor, resolving an
// omitted name to the actor's unique endpoint of the polarity.
func lookupEndpoint(a actor.Actor, name string, pol actor.Polarity) (*actor.Endpoint, error) {
	if name == "" {
		if pol == actor.Source {
			return a.SingleSource()
		}
		return a.SingleSink()
	}
	ep := a.Endpoint(name)
	if ep == nil {
		return nil, fmt.Errorf("actor %q has no endpoint %q", a.Name(), name)
	}
	if ep.Pol != pol {
		return nil, fmt.Errorf("endpoint %q of actor %q is a %s, expected a %s", name, a.Name(), ep.Pol, pol)
	}
	return ep, nil
}

// resolveEndpoints replaces every omitted endpoint name on an edge with the
// owning actor's unique endpoint of the required polarity.
func (g *Graph) resolveEndpoints() error {
	for _, e := range g.edges {
		if e.SourceEP == "" {
			ep, err := e.Source.Actor().SingleSource()
			if err != nil {
				return fmt.Errorf("resolving source endpoint on %s: %w", e.Source, err)
			}
			e.SourceEP = ep.Name
		}
		if e.SinkEP == "" {
			ep, err := e.Sink.Actor().SingleSink()
			if err != nil {
				return fmt.Errorf("resolving sink endpoint on %s: %w", e.Sink, err)
			}
			e.SinkEP = ep.Name
		}
	}
	return nil
}
