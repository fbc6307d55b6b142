package flow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/sig"
)

func renderFragment(t *testing.T, frag *sig.Fragment) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, frag.Render(&b))
	return b.String()
}

func TestComposite(t *testing.T) {
	t.Run("elaborates the graph on construction", func(t *testing.T) {
		g := NewGraph()
		src := sourceNode("src", valueLayout())
		require.NoError(t, g.AddConnection(src, sinkNode("dst1", valueLayout())))
		require.NoError(t, g.AddConnection(src, sinkNode("dst2", valueLayout())))

		comp, err := NewComposite(testCtx(), g, actor.NewRegistry())
		require.NoError(t, err)
		assert.True(t, g.Elaborated())
		assert.False(t, g.IsAbstract())
		assert.Same(t, g, comp.Graph())
	})

	t.Run("busy is the OR of every member", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddConnection(sourceNode("src", valueLayout()), sinkNode("dst", valueLayout())))

		comp, err := NewComposite(testCtx(), g, actor.NewRegistry())
		require.NoError(t, err)
		frag, err := comp.Fragment()
		require.NoError(t, err)

		out := renderFragment(t, frag)
		assert.Contains(t, out, "assign composite_busy = (src_busy | dst_busy)")
	})

	t.Run("fragment wires every edge endpoint to endpoint", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddConnection(sourceNode("src", valueLayout()), sinkNode("dst", valueLayout())))

		comp, err := NewComposite(testCtx(), g, actor.NewRegistry())
		require.NoError(t, err)
		frag, err := comp.Fragment()
		require.NoError(t, err)

		out := renderFragment(t, frag)
		assert.Contains(t, out, "assign dst_d_stb = src_source_stb")
		assert.Contains(t, out, "assign src_source_ack = dst_d_ack")
		assert.Contains(t, out, "assign dst_d_value = src_source_value")
	})

	t.Run("fragment is recomputed on every call", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddConnection(sourceNode("src", valueLayout()), sinkNode("dst", valueLayout())))

		comp, err := NewComposite(testCtx(), g, actor.NewRegistry())
		require.NoError(t, err)

		first, err := comp.Fragment()
		require.NoError(t, err)
		second, err := comp.Fragment()
		require.NoError(t, err)
		assert.NotSame(t, first, second)
		assert.Equal(t, renderFragment(t, first), renderFragment(t, second))
	})

	t.Run("construction fails when elaboration fails", func(t *testing.T) {
		g := NewGraph()
		twoSinks := Concrete(newStub("dst",
			actor.NewEndpoint("d0", actor.Sink, valueLayout()),
			actor.NewEndpoint("d1", actor.Sink, valueLayout()),
		))
		require.NoError(t, g.AddConnection(sourceNode("src", valueLayout()), twoSinks))

		_, err := NewComposite(testCtx(), g, actor.NewRegistry())
		assert.ErrorIs(t, err, actor.ErrAmbiguousEndpoint)
	})
}
