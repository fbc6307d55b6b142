// Package actorlib contributes the built-in user actor classes: a
// passthrough buffer, a free-running counter source, and an always-ready
// sink. Classes decode their construction parameters from cty values, so
// they can be driven equally from the HCL front end or from Go.
package actorlib

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/sig"
)

// Module registers the built-in actor classes.
type Module struct{}

// Register implements actor.Module.
func (Module) Register(r *actor.Registry) {
	r.Register("buffer", newBufferFromParams)
	r.Register("counter", newCounterFromParams)
	r.Register("sink", newSinkFromParams)
}

// layoutParam decodes a record layout from parameters: either an explicit
// `layout` list of {name, width} objects, or a shorthand `width` number for
// a single-field record named "value".
func layoutParam(params actor.Params) (sig.Layout, error) {
	if v, ok := params["layout"]; ok {
		return layoutFromCty(v)
	}
	if v, ok := params["width"]; ok {
		var width int
		if err := gocty.FromCtyValue(v, &width); err != nil {
			return nil, fmt.Errorf("parameter \"width\": %w", err)
		}
		return sig.Layout{{Name: "value", Width: width}}, nil
	}
	return nil, errors.New(`requires a "layout" or "width" parameter`)
}

func layoutFromCty(v cty.Value) (sig.Layout, error) {
	if v.IsNull() || !v.CanIterateElements() {
		return nil, errors.New(`parameter "layout" must be a list of {name, width} objects`)
	}
	var layout sig.Layout
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		ty := el.Type()
		if !ty.IsObjectType() || !ty.HasAttribute("name") || !ty.HasAttribute("width") {
			return nil, errors.New(`layout entries must be {name, width} objects`)
		}
		var f sig.Field
		if err := gocty.FromCtyValue(el.GetAttr("name"), &f.Name); err != nil {
			return nil, fmt.Errorf("layout field name: %w", err)
		}
		if err := gocty.FromCtyValue(el.GetAttr("width"), &f.Width); err != nil {
			return nil, fmt.Errorf("layout field width: %w", err)
		}
		layout = append(layout, f)
	}
	return layout, nil
}

// Buffer is a combinational passthrough: one sink "d", one source "q",
// identical layouts.
type Buffer struct {
	actor.Core
	layout sig.Layout
}

// NewBuffer creates a buffer over the given layout.
func NewBuffer(layout sig.Layout) *Buffer {
	return &Buffer{
		Core: actor.NewCore(
			actor.NewEndpoint("d", actor.Sink, layout),
			actor.NewEndpoint("q", actor.Source, layout),
		),
		layout: layout,
	}
}

func newBufferFromParams(params actor.Params) (actor.Actor, error) {
	layout, err := layoutParam(params)
	if err != nil {
		return nil, err
	}
	return NewBuffer(layout), nil
}

func (b *Buffer) Fragment() (*sig.Fragment, error) {
	d := b.Endpoint("d")
	q := b.Endpoint("q")
	frag := sig.NewFragment(
		sig.Assign{Dst: b.Busy(), Src: sig.Const{}},
		sig.Assign{Dst: q.Stb, Src: sig.Ref{Sig: d.Stb}},
		sig.Assign{Dst: d.Ack, Src: sig.Ref{Sig: q.Ack}},
	)
	for i := range b.layout {
		frag.Comb = append(frag.Comb, sig.Assign{Dst: q.Payload[i], Src: sig.Ref{Sig: d.Payload[i]}})
	}
	return frag, nil
}

func (b *Buffer) Attributes() map[string]cty.Value {
	return map[string]cty.Value{"class": cty.StringVal("buffer"), "fields": cty.NumberIntVal(int64(len(b.layout)))}
}

// Counter emits an incrementing value of a fixed width on its sole source
// "source".
type Counter struct {
	actor.Core
	width int
	value *sig.Signal
}

// NewCounter creates a counter of the given width.
func NewCounter(width int) *Counter {
	c := &Counter{
		Core: actor.NewCore(
			actor.NewEndpoint("source", actor.Source, sig.Layout{{Name: "value", Width: width}}),
		),
		width: width,
		value: sig.New("count", width),
	}
	return c
}

// SetName also qualifies the internal count register.
func (c *Counter) SetName(name string) {
	c.Core.SetName(name)
	if name != "" {
		c.value.Name = name + "_count"
	}
}

func newCounterFromParams(params actor.Params) (actor.Actor, error) {
	v, ok := params["width"]
	if !ok {
		return nil, errors.New(`requires a "width" parameter`)
	}
	var width int
	if err := gocty.FromCtyValue(v, &width); err != nil {
		return nil, fmt.Errorf("parameter \"width\": %w", err)
	}
	return NewCounter(width), nil
}

func (c *Counter) Fragment() (*sig.Fragment, error) {
	src := c.Endpoint("source")
	frag := sig.NewFragment(
		sig.Assign{Dst: c.Busy(), Src: sig.Const{}},
		sig.Assign{Dst: src.Stb, Src: sig.Const{Value: 1}},
		sig.Assign{Dst: src.Payload[0], Src: sig.Ref{Sig: c.value}},
	)
	frag.Sync = append(frag.Sync, sig.Assign{
		Dst: c.value,
		Src: sig.Binary{Op: "+", A: sig.Ref{Sig: c.value}, B: sig.Const{Value: 1}},
	})
	return frag, nil
}

func (c *Counter) Attributes() map[string]cty.Value {
	return map[string]cty.Value{"class": cty.StringVal("counter"), "width": cty.NumberIntVal(int64(c.width))}
}

// Sink accepts every token offered on its sole sink "d".
type Sink struct {
	actor.Core
	layout sig.Layout
}

// NewSink creates a sink over the given layout.
func NewSink(layout sig.Layout) *Sink {
	return &Sink{
		Core:   actor.NewCore(actor.NewEndpoint("d", actor.Sink, layout)),
		layout: layout,
	}
}

func newSinkFromParams(params actor.Params) (actor.Actor, error) {
	layout, err := layoutParam(params)
	if err != nil {
		return nil, err
	}
	return NewSink(layout), nil
}

func (s *Sink) Fragment() (*sig.Fragment, error) {
	d := s.Endpoint("d")
	return sig.NewFragment(
		sig.Assign{Dst: s.Busy(), Src: sig.Const{}},
		sig.Assign{Dst: d.Ack, Src: sig.Const{Value: 1}},
	), nil
}

func (s *Sink) Attributes() map[string]cty.Value {
	return map[string]cty.Value{"class": cty.StringVal("sink"), "fields": cty.NumberIntVal(int64(len(s.layout)))}
}
