package plumbing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/sig"
)

func pairLayout() sig.Layout {
	return sig.Layout{{Name: "a", Width: 8}, {Name: "b", Width: 4}}
}

func render(t *testing.T, a actor.Actor) string {
	t.Helper()
	frag, err := a.Fragment()
	require.NoError(t, err)
	var out strings.Builder
	require.NoError(t, frag.Render(&out))
	return out.String()
}

func TestCombinator(t *testing.T) {
	t.Run("numbered sinks carry the projected layouts", func(t *testing.T) {
		c, err := NewCombinator(pairLayout(), []sig.Projection{{"a"}, {"b"}})
		require.NoError(t, err)

		assert.Equal(t, sig.Layout{{Name: "a", Width: 8}}, c.Endpoint("sink0").Layout)
		assert.Equal(t, sig.Layout{{Name: "b", Width: 4}}, c.Endpoint("sink1").Layout)

		src, err := c.SingleSource()
		require.NoError(t, err)
		assert.Equal(t, "source", src.Name)
		assert.True(t, src.Layout.Equal(pairLayout()))

		_, err = c.SingleSink()
		assert.ErrorIs(t, err, actor.ErrAmbiguousEndpoint)
	})

	t.Run("nil projection means the whole record", func(t *testing.T) {
		c, err := NewCombinator(pairLayout(), []sig.Projection{nil})
		require.NoError(t, err)
		assert.True(t, c.Endpoint("sink0").Layout.Equal(pairLayout()))
	})

	t.Run("unknown projected field fails construction", func(t *testing.T) {
		_, err := NewCombinator(pairLayout(), []sig.Projection{{"nope"}})
		assert.ErrorContains(t, err, "no field")
	})

	t.Run("fragment gates the source strobe on all sinks", func(t *testing.T) {
		c, err := NewCombinator(pairLayout(), []sig.Projection{{"a"}, {"b"}})
		require.NoError(t, err)
		c.SetName("comb")

		out := render(t, c)
		assert.Contains(t, out, "assign comb_source_stb = (comb_sink0_stb & comb_sink1_stb)")
		assert.Contains(t, out, "assign comb_source_a = comb_sink0_a")
		assert.Contains(t, out, "assign comb_source_b = comb_sink1_b")
		assert.Contains(t, out, "assign comb_busy = 0")
	})
}

func TestSplitter(t *testing.T) {
	t.Run("numbered sources carry the projected layouts", func(t *testing.T) {
		s, err := NewSplitter(pairLayout(), []sig.Projection{{"a"}, nil})
		require.NoError(t, err)

		snk, err := s.SingleSink()
		require.NoError(t, err)
		assert.Equal(t, "sink", snk.Name)
		assert.True(t, snk.Layout.Equal(pairLayout()))

		assert.Equal(t, sig.Layout{{Name: "a", Width: 8}}, s.Endpoint("source0").Layout)
		assert.True(t, s.Endpoint("source1").Layout.Equal(pairLayout()))
	})

	t.Run("fragment acknowledges once all sources have", func(t *testing.T) {
		s, err := NewSplitter(pairLayout(), []sig.Projection{{"a"}, {"b"}})
		require.NoError(t, err)
		s.SetName("split")

		out := render(t, s)
		assert.Contains(t, out, "assign split_sink_ack = (split_source0_ack & split_source1_ack)")
		assert.Contains(t, out, "assign split_source0_stb = split_sink_stb")
		assert.Contains(t, out, "assign split_source0_a = split_sink_a")
		assert.Contains(t, out, "assign split_source1_b = split_sink_b")
	})
}
