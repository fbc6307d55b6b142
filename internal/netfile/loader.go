package netfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/ctxlog"
	"github.com/vk/flownetgo/internal/flow"
	"github.com/vk/flownetgo/internal/fsutil"
)

// Loader parses network description files into abstract graphs.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under path (a single file or a directory),
// validates actor classes against the registry, and builds the abstract
// graph. Actor names are file-global; a connection may reference an actor
// declared in another file.
func (l *Loader) Load(ctx context.Context, path string, reg *actor.Registry) (*flow.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("scanning network path %q: %w", path, err)
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no .hcl network files found under %q", path)
	}
	logger.Debug("Found network files to load.", "files", filePaths)

	parser := hclparse.NewParser()
	var files []*NetworkFile
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", filePath, diags)
		}
		var nf NetworkFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &nf); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", filePath, diags)
		}
		files = append(files, &nf)
	}
	return l.build(ctx, files, reg)
}

func (l *Loader) build(ctx context.Context, files []*NetworkFile, reg *actor.Registry) (*flow.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := flow.NewGraph()
	nodes := make(map[string]*flow.Node)

	for _, f := range files {
		for _, a := range f.Actors {
			if _, exists := nodes[a.Name]; exists {
				return nil, fmt.Errorf("duplicate actor name %q", a.Name)
			}
			if !reg.Has(a.Class) {
				return nil, fmt.Errorf("actor %q: %w: %q", a.Name, actor.ErrUnknownClass, a.Class)
			}
			params, err := decodeParams(a.Parameters)
			if err != nil {
				return nil, fmt.Errorf("actor %q: %w", a.Name, err)
			}
			n := flow.Deferred(a.Class, params)
			n.SetName(a.Name)
			nodes[a.Name] = n
			g.AddNode(n)
			logger.Debug("Declared actor.", "name", a.Name, "class", a.Class)
		}
	}

	for _, f := range files {
		for _, c := range f.Connects {
			src, ok := nodes[c.Source]
			if !ok {
				return nil, fmt.Errorf("connect: unknown source actor %q", c.Source)
			}
			dst, ok := nodes[c.Sink]
			if !ok {
				return nil, fmt.Errorf("connect: unknown sink actor %q", c.Sink)
			}
			var opts []flow.ConnOption
			if c.SourceEndpoint != "" {
				opts = append(opts, flow.WithSourceEndpoint(c.SourceEndpoint))
			}
			if c.SinkEndpoint != "" {
				opts = append(opts, flow.WithSinkEndpoint(c.SinkEndpoint))
			}
			if len(c.SourceFields) > 0 {
				opts = append(opts, flow.WithSourceFields(c.SourceFields...))
			}
			if len(c.SinkFields) > 0 {
				opts = append(opts, flow.WithSinkFields(c.SinkFields...))
			}
			if err := g.AddConnection(src, dst, opts...); err != nil {
				return nil, fmt.Errorf("connect %s -> %s: %w", c.Source, c.Sink, err)
			}
		}
	}
	logger.Debug("Network graph built.", "nodes", len(g.Nodes()), "edges", len(g.Edges()))
	return g, nil
}

// decodeParams evaluates the attributes of a parameters block into a cty
// parameter map. Expressions are literal; there is no evaluation context.
func decodeParams(block *ParamsBlock) (actor.Params, error) {
	if block == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("parameters: %w", diags)
	}
	params := make(actor.Params, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parameter %q: %w", name, diags)
		}
		params[name] = v
	}
	return params, nil
}
