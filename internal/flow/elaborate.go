package flow

import (
	"context"
	"fmt"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/ctxlog"
	"github.com/vk/flownetgo/internal/sig"
)

// Optimizer is the optional pass-2 callback. It may share, duplicate, or
// replace abstract nodes and edges, as long as the result is still
// elaborable.
type Optimizer func(ctx context.Context, g *Graph) error

// Elaborate lowers the abstract graph in three ordered passes: rewrite away
// subrecords and divergences by inserting plumbing, run the optional
// optimizer, then instantiate every node and resolve omitted endpoint names.
// A second call is a no-op. Any failure aborts elaboration and leaves the
// graph non-reusable.
func (g *Graph) Elaborate(ctx context.Context, reg *actor.Registry, optimizer Optimizer) error {
	if g.elaborated {
		return nil
	}
	g.elaborated = true
	logger := ctxlog.FromContext(ctx)

	g.insertCombinators(ctx)
	g.insertSplitters(ctx)
	logger.Debug("Rewrite pass complete.", "nodes", len(g.nodes), "edges", len(g.edges))

	if optimizer != nil {
		if err := optimizer(ctx, g); err != nil {
			return fmt.Errorf("optimizer pass: %w", err)
		}
		logger.Debug("Optimizer pass complete.", "nodes", len(g.nodes), "edges", len(g.edges))
	}

	if err := g.instantiateActors(ctx, reg); err != nil {
		return err
	}
	logger.Debug("Instantiation pass complete.")
	return nil
}

// insertCombinators rewrites every "needs-combinator" site: a sink endpoint
// fed by more than one edge, or by a single edge carrying a sink-side
// projection. The full plan is collected from the pass-entry edge set before
// any of it is applied, so edges created here are never rescanned.
func (g *Graph) insertCombinators(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, group := range groupBySink(g.Edges()) {
		if len(group.edges) == 1 && group.edges[0].SinkSub == nil {
			continue
		}
		subrecords := make([]sig.Projection, len(group.edges))
		for i, e := range group.edges {
			subrecords[i] = e.SinkSub
		}
		comb := newPlumbing(KindCombinator, subrecords)
		comb.SetName(fmt.Sprintf("combinator%d", g.combCount))
		g.combCount++
		logger.Debug("Inserting combinator.", "node", comb.Name(), "sink", group.site.node.String(), "inputs", len(group.edges))

		// Reroute source1..sourceN into the combinator's numbered
		// inputs, keeping each source-side projection; a splitter will
		// deal with those later.
		for i, e := range group.edges {
			g.DelConnections(e.Source, group.site.node, EdgeQuery{
				SourceEP: MatchEndpoint(e.SourceEP),
				SinkEP:   MatchEndpoint(e.SinkEP),
			})
			opts := []ConnOption{
				WithSourceEndpoint(e.SourceEP),
				WithSinkEndpoint(fmt.Sprintf("sink%d", i)),
			}
			if e.SourceSub != nil {
				opts = append(opts, WithSourceFields(e.SourceSub...))
			}
			g.AddConnection(e.Source, comb, opts...)
		}
		g.AddConnection(comb, group.site.node,
			WithSourceEndpoint("source"),
			WithSinkEndpoint(group.site.ep))
	}
}

// insertSplitters rewrites every "needs-splitter" site: a source endpoint
// feeding more than one edge, or a single edge carrying a source-side
// projection. It deliberately runs on the post-combinator edge set, because
// combinator insertion preserves source-side projections on the rerouted
// edges and only a splitter can eliminate them.
func (g *Graph) insertSplitters(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, group := range groupBySource(g.Edges()) {
		if len(group.edges) == 1 && group.edges[0].SourceSub == nil {
			continue
		}
		subrecords := make([]sig.Projection, len(group.edges))
		for i, e := range group.edges {
			subrecords[i] = e.SourceSub
		}
		splitter := newPlumbing(KindSplitter, subrecords)
		splitter.SetName(fmt.Sprintf("splitter%d", g.splitCount))
		g.splitCount++
		logger.Debug("Inserting splitter.", "node", splitter.Name(), "source", group.site.node.String(), "outputs", len(group.edges))

		for i, e := range group.edges {
			g.DelConnections(group.site.node, e.Sink, EdgeQuery{
				SourceEP: MatchEndpoint(e.SourceEP),
				SinkEP:   MatchEndpoint(e.SinkEP),
			})
			g.AddConnection(splitter, e.Sink,
				WithSourceEndpoint(fmt.Sprintf("source%d", i)),
				WithSinkEndpoint(e.SinkEP))
		}
		g.AddConnection(group.site.node, splitter,
			WithSourceEndpoint(group.site.ep),
			WithSinkEndpoint("sink"))
	}
}
