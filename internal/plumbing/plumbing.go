// Package plumbing provides the adapter actors the rewrite pass inserts:
// Combinator (many sources into one sink) and Splitter (one source into many
// sinks). Their record layout is not user-specified; it is inferred from a
// concrete neighbor during elaboration.
package plumbing

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/sig"
)

// Combinator merges N token streams carrying subrecords of one layout into a
// single whole-record stream. Its sink endpoints are numbered sink0..sinkN-1
// in subrecord order and its sole source carries the full layout.
type Combinator struct {
	actor.Core
	layout     sig.Layout
	subrecords []sig.Projection
}

// NewCombinator builds a combinator over the given layout, with one numbered
// sink per subrecord projection. A nil projection means the whole record.
func NewCombinator(layout sig.Layout, subrecords []sig.Projection) (*Combinator, error) {
	eps := make([]*actor.Endpoint, 0, len(subrecords)+1)
	for i, sub := range subrecords {
		sel, err := layout.Select(sub)
		if err != nil {
			return nil, fmt.Errorf("combinator sink%d: %w", i, err)
		}
		eps = append(eps, actor.NewEndpoint(fmt.Sprintf("sink%d", i), actor.Sink, sel))
	}
	eps = append(eps, actor.NewEndpoint("source", actor.Source, layout))
	return &Combinator{
		Core:       actor.NewCore(eps...),
		layout:     layout,
		subrecords: subrecords,
	}, nil
}

// Fragment emits a token on the source once every sink presents one, passing
// each subrecord's fields through to the combined record.
func (c *Combinator) Fragment() (*sig.Fragment, error) {
	source := c.Endpoint("source")
	sinks := c.Endpoints()[:len(c.subrecords)]

	stbs := make([]*sig.Signal, len(sinks))
	for i, s := range sinks {
		stbs[i] = s.Stb
	}
	frag := sig.NewFragment(
		sig.Assign{Dst: c.Busy(), Src: sig.Const{}},
		sig.Assign{Dst: source.Stb, Src: sig.And(stbs...)},
	)
	for _, s := range sinks {
		frag.Comb = append(frag.Comb, sig.Assign{
			Dst: s.Ack,
			Src: sig.Binary{Op: "&", A: sig.Ref{Sig: source.Ack}, B: sig.Ref{Sig: source.Stb}},
		})
		for i, f := range s.Layout {
			out, ok := source.PayloadFor(f.Name)
			if !ok {
				return nil, fmt.Errorf("combinator layout lost field %q", f.Name)
			}
			frag.Comb = append(frag.Comb, sig.Assign{Dst: out, Src: sig.Ref{Sig: s.Payload[i]}})
		}
	}
	return frag, nil
}

func (c *Combinator) Attributes() map[string]cty.Value {
	return plumbingAttributes("combinator", c.layout, c.subrecords)
}

// Splitter fans a whole-record stream out into N streams, each carrying a
// subrecord. Its source endpoints are numbered source0..sourceN-1 in
// subrecord order and its sole sink carries the full layout.
type Splitter struct {
	actor.Core
	layout     sig.Layout
	subrecords []sig.Projection
}

// NewSplitter builds a splitter over the given layout, with one numbered
// source per subrecord projection. A nil projection means the whole record.
func NewSplitter(layout sig.Layout, subrecords []sig.Projection) (*Splitter, error) {
	eps := make([]*actor.Endpoint, 0, len(subrecords)+1)
	eps = append(eps, actor.NewEndpoint("sink", actor.Sink, layout))
	for i, sub := range subrecords {
		sel, err := layout.Select(sub)
		if err != nil {
			return nil, fmt.Errorf("splitter source%d: %w", i, err)
		}
		eps = append(eps, actor.NewEndpoint(fmt.Sprintf("source%d", i), actor.Source, sel))
	}
	return &Splitter{
		Core:       actor.NewCore(eps...),
		layout:     layout,
		subrecords: subrecords,
	}, nil
}

// Fragment presents the incoming token on every source and retires it once
// all sources have been acknowledged.
func (s *Splitter) Fragment() (*sig.Fragment, error) {
	sink := s.Endpoint("sink")
	sources := s.Endpoints()[1:]

	acks := make([]*sig.Signal, len(sources))
	for i, src := range sources {
		acks[i] = src.Ack
	}
	frag := sig.NewFragment(
		sig.Assign{Dst: s.Busy(), Src: sig.Const{}},
		sig.Assign{Dst: sink.Ack, Src: sig.And(acks...)},
	)
	for _, src := range sources {
		frag.Comb = append(frag.Comb, sig.Assign{Dst: src.Stb, Src: sig.Ref{Sig: sink.Stb}})
		for i, f := range src.Layout {
			in, ok := sink.PayloadFor(f.Name)
			if !ok {
				return nil, fmt.Errorf("splitter layout lost field %q", f.Name)
			}
			frag.Comb = append(frag.Comb, sig.Assign{Dst: src.Payload[i], Src: sig.Ref{Sig: in}})
		}
	}
	return frag, nil
}

func (s *Splitter) Attributes() map[string]cty.Value {
	return plumbingAttributes("splitter", s.layout, s.subrecords)
}

func plumbingAttributes(kind string, layout sig.Layout, subrecords []sig.Projection) map[string]cty.Value {
	subs := make([]cty.Value, 0, len(subrecords))
	for _, sub := range subrecords {
		if sub == nil {
			subs = append(subs, cty.StringVal("*"))
			continue
		}
		fields := make([]cty.Value, 0, len(sub))
		for _, f := range sub {
			fields = append(fields, cty.StringVal(f))
		}
		subs = append(subs, cty.TupleVal(fields))
	}
	attrs := map[string]cty.Value{
		"kind":   cty.StringVal(kind),
		"fields": cty.NumberIntVal(int64(len(layout))),
	}
	if len(subs) > 0 {
		attrs["subrecords"] = cty.TupleVal(subs)
	}
	return attrs
}
