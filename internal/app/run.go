package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/flownetgo/internal/ctxlog"
	"github.com/vk/flownetgo/internal/flow"
	"github.com/vk/flownetgo/internal/netfile"
)

// Run executes the main application logic: load the network description,
// elaborate it into a composite actor, and render the resulting fragment.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	loader := netfile.NewLoader()
	graph, err := loader.Load(ctx, cfg.NetPath, a.registry)
	if err != nil {
		return fmt.Errorf("failed to load network description: %w", err)
	}
	a.logger.Info("Network loaded.", "nodes", len(graph.Nodes()), "edges", len(graph.Edges()), "abstract", graph.IsAbstract())

	comp, err := flow.NewComposite(ctx, graph, a.registry)
	if err != nil {
		return fmt.Errorf("elaboration failed: %w", err)
	}
	a.logger.Info("Elaboration finished.", "nodes", len(graph.Nodes()), "edges", len(graph.Edges()))

	frag, err := comp.Fragment()
	if err != nil {
		return fmt.Errorf("failed to compose fragment: %w", err)
	}

	out := a.outW
	if cfg.OutPath != "" {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := frag.Render(out); err != nil {
		return fmt.Errorf("failed to render fragment: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
