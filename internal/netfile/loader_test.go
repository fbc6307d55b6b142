package netfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/actorlib"
	"github.com/vk/flownetgo/internal/sig"
)

// writeNetwork writes an .hcl network file into a fresh temp dir and returns
// its path.
func writeNetwork(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testRegistry() *actor.Registry {
	return actor.NewRegistry(actorlib.Module{})
}

func TestLoad(t *testing.T) {
	t.Run("builds the declared abstract graph", func(t *testing.T) {
		path := writeNetwork(t, "net.hcl", `
actor "counter" "src" {
  parameters {
    width = 8
  }
}

actor "sink" "dst" {
  parameters {
    width = 8
  }
}

connect {
  source = "src"
  sink   = "dst"
}
`)
		g, err := NewLoader().Load(context.Background(), path, testRegistry())
		require.NoError(t, err)

		nodes := g.Nodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, "src", nodes[0].Name())
		assert.Equal(t, "counter", nodes[0].Class())
		assert.True(t, nodes[0].IsAbstract())
		require.Len(t, g.Edges(), 1)
		assert.True(t, g.IsAbstract())
	})

	t.Run("connection labels are carried onto the edge", func(t *testing.T) {
		path := writeNetwork(t, "net.hcl", `
actor "buffer" "a" {
  parameters {
    layout = [{ name = "x", width = 8 }, { name = "y", width = 8 }]
  }
}

actor "sink" "b" {
  parameters {
    width = 8
  }
}

connect {
  source          = "a"
  sink            = "b"
  source_endpoint = "q"
  sink_endpoint   = "d"
  source_fields   = ["x"]
}
`)
		g, err := NewLoader().Load(context.Background(), path, testRegistry())
		require.NoError(t, err)

		e := g.Edges()[0]
		assert.Equal(t, "q", e.SourceEP)
		assert.Equal(t, "d", e.SinkEP)
		assert.Equal(t, sig.Projection{"x"}, e.SourceSub)
		assert.Nil(t, e.SinkSub)
	})

	t.Run("directory loads actors across files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "actors.hcl"), []byte(`
actor "counter" "src" {
  parameters {
    width = 8
  }
}

actor "sink" "dst" {
  parameters {
    width = 8
  }
}
`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "wiring.hcl"), []byte(`
connect {
  source = "src"
  sink   = "dst"
}
`), 0o644))

		g, err := NewLoader().Load(context.Background(), dir, testRegistry())
		require.NoError(t, err)
		assert.Len(t, g.Nodes(), 2)
		assert.Len(t, g.Edges(), 1)
	})

	t.Run("unknown class is rejected at load time", func(t *testing.T) {
		path := writeNetwork(t, "net.hcl", `
actor "warp_drive" "x" {}
`)
		_, err := NewLoader().Load(context.Background(), path, testRegistry())
		assert.ErrorIs(t, err, actor.ErrUnknownClass)
	})

	t.Run("duplicate actor names are rejected", func(t *testing.T) {
		path := writeNetwork(t, "net.hcl", `
actor "sink" "x" {
  parameters {
    width = 8
  }
}

actor "sink" "x" {
  parameters {
    width = 8
  }
}
`)
		_, err := NewLoader().Load(context.Background(), path, testRegistry())
		assert.ErrorContains(t, err, "duplicate actor name")
	})

	t.Run("unknown connection reference is rejected", func(t *testing.T) {
		path := writeNetwork(t, "net.hcl", `
connect {
  source = "ghost"
  sink   = "ghost"
}
`)
		_, err := NewLoader().Load(context.Background(), path, testRegistry())
		assert.ErrorContains(t, err, "unknown source actor")
	})

	t.Run("invalid HCL is rejected", func(t *testing.T) {
		path := writeNetwork(t, "net.hcl", `actor "sink" {`)
		_, err := NewLoader().Load(context.Background(), path, testRegistry())
		assert.Error(t, err)
	})

	t.Run("empty path has no network files", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), t.TempDir(), testRegistry())
		assert.ErrorContains(t, err, "no .hcl network files")
	})
}
