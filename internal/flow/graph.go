package flow

import (
	"github.com/vk/flownetgo/internal/sig"
)

// Edge is one labeled connection in the multigraph. Empty endpoint names
// mean "the node's unique endpoint of that polarity" and are resolved during
// pass 3; nil projections mean the whole record.
type Edge struct {
	Source    *Node
	Sink      *Node
	SourceEP  string
	SinkEP    string
	SourceSub sig.Projection
	SinkSub   sig.Projection
}

// ConnOption labels a connection beyond its default whole-record,
// unique-endpoint form.
type ConnOption func(*Edge)

// WithSourceEndpoint names the source-side endpoint.
func WithSourceEndpoint(name string) ConnOption {
	return func(e *Edge) { e.SourceEP = name }
}

// WithSinkEndpoint names the sink-side endpoint.
func WithSinkEndpoint(name string) ConnOption {
	return func(e *Edge) { e.SinkEP = name }
}

// WithSourceFields restricts the connection to a subrecord on the source
// side.
func WithSourceFields(fields ...string) ConnOption {
	return func(e *Edge) { e.SourceSub = sig.Projection(fields) }
}

// WithSinkFields restricts the connection to a subrecord on the sink side.
func WithSinkFields(fields ...string) ConnOption {
	return func(e *Edge) { e.SinkSub = sig.Projection(fields) }
}

// Graph is a directed multigraph over actor nodes. Nodes and edges are held
// in insertion order; that order is what makes the rewrite pass and its
// numbered-port assignment reproducible. The graph is single-writer: it is
// exclusively owned by its constructing caller.
type Graph struct {
	nodes   []*Node
	nodeSet map[*Node]struct{}
	edges   []*Edge

	elaborated bool
	combCount  int
	splitCount int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodeSet: make(map[*Node]struct{})}
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Elaborated reports whether Elaborate has run.
func (g *Graph) Elaborated() bool { return g.elaborated }

// AddNode adds a node without connecting it. Adding a node twice is a no-op;
// connections add their endpoints implicitly, so this is only needed for
// nodes that are (so far) isolated.
func (g *Graph) AddNode(n *Node) {
	if n == nil {
		return
	}
	g.addNode(n)
}

func (g *Graph) addNode(n *Node) {
	if _, ok := g.nodeSet[n]; ok {
		return
	}
	g.nodeSet[n] = struct{}{}
	g.nodes = append(g.nodes, n)
}

// AddConnection appends a new edge from source to sink. Nodes are implicitly
// added to the node set. An identical existing edge is never merged with;
// parallel edges stay independently addressable.
func (g *Graph) AddConnection(source, sink *Node, opts ...ConnOption) error {
	if source == nil || sink == nil {
		return ErrNilNode
	}
	e := &Edge{Source: source, Sink: sink}
	for _, opt := range opts {
		opt(e)
	}
	g.addNode(source)
	g.addNode(sink)
	g.edges = append(g.edges, e)
	return nil
}

// EdgeQuery matches edge labels. Nil fields are wildcards; a set field must
// match exactly (an empty endpoint name matches only unresolved endpoints).
type EdgeQuery struct {
	SourceEP  *string
	SinkEP    *string
	SourceSub *sig.Projection
	SinkSub   *sig.Projection
}

// MatchEndpoint builds an endpoint-name requirement for an EdgeQuery.
func MatchEndpoint(name string) *string { return &name }

// MatchFields builds a projection requirement for an EdgeQuery.
func MatchFields(fields ...string) *sig.Projection {
	p := sig.Projection(fields)
	return &p
}

func (q EdgeQuery) matches(e *Edge) bool {
	if q.SourceEP != nil && *q.SourceEP != e.SourceEP {
		return false
	}
	if q.SinkEP != nil && *q.SinkEP != e.SinkEP {
		return false
	}
	if q.SourceSub != nil && !projectionsEqual(*q.SourceSub, e.SourceSub) {
		return false
	}
	if q.SinkSub != nil && !projectionsEqual(*q.SinkSub, e.SinkSub) {
		return false
	}
	return true
}

func projectionsEqual(a, b sig.Projection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DelConnections removes every edge between the ordered node pair whose
// labels satisfy the query. A pair with no edges between it is a silent
// no-op.
func (g *Graph) DelConnections(source, sink *Node, q EdgeQuery) {
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source == source && e.Sink == sink && q.matches(e) {
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
}

// endpointSite identifies one endpoint of one node. Edges with unresolved
// names group under the empty name, which is correct: an unresolved name
// stands for the node's unique endpoint of that polarity.
type endpointSite struct {
	node *Node
	ep   string
}

type edgeGroup struct {
	site  endpointSite
	edges []*Edge
}

// groupBySource buckets edges by their source endpoint, preserving first-
// appearance order of sites and insertion order of edges within each.
func groupBySource(edges []*Edge) []edgeGroup {
	return groupBy(edges, func(e *Edge) endpointSite {
		return endpointSite{node: e.Source, ep: e.SourceEP}
	})
}

// groupBySink is the sink-side counterpart of groupBySource.
func groupBySink(edges []*Edge) []edgeGroup {
	return groupBy(edges, func(e *Edge) endpointSite {
		return endpointSite{node: e.Sink, ep: e.SinkEP}
	})
}

func groupBy(edges []*Edge, key func(*Edge) endpointSite) []edgeGroup {
	var groups []edgeGroup
	index := make(map[endpointSite]int)
	for _, e := range edges {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, edgeGroup{site: k})
		}
		groups[i].edges = append(groups[i].edges, e)
	}
	return groups
}

// IsAbstract reports whether elaboration still has work to do: a deferred
// node, a subrecord-carrying edge, or a source endpoint feeding more than
// one sink edge.
func (g *Graph) IsAbstract() bool {
	for _, n := range g.nodes {
		if n.IsAbstract() {
			return true
		}
	}
	for _, e := range g.edges {
		if e.SourceSub != nil || e.SinkSub != nil {
			return true
		}
	}
	for _, group := range groupBySource(g.edges) {
		if len(group.edges) > 1 {
			return true
		}
	}
	return false
}

// inEdges returns the edges whose sink is n, in insertion order.
func (g *Graph) inEdges(n *Node) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e.Sink == n {
			out = append(out, e)
		}
	}
	return out
}

// outEdges returns the edges whose source is n, in insertion order.
func (g *Graph) outEdges(n *Node) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e.Source == n {
			out = append(out, e)
		}
	}
	return out
}
