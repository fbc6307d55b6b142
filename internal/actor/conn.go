package actor

import (
	"fmt"

	"github.com/vk/flownetgo/internal/sig"
)

// ConnFragment returns the fragment implementing the point-to-point wiring
// between a concrete source endpoint and a concrete sink endpoint: payload
// fields matched by name, strobe forwarded downstream, acknowledge forwarded
// upstream.
func ConnFragment(src, dst *Endpoint) (*sig.Fragment, error) {
	if src.Pol != Source || dst.Pol != Sink {
		return nil, fmt.Errorf("connection requires a source and a sink, got %s -> %s", src.Pol, dst.Pol)
	}
	frag := sig.NewFragment(
		sig.Assign{Dst: dst.Stb, Src: sig.Ref{Sig: src.Stb}},
		sig.Assign{Dst: src.Ack, Src: sig.Ref{Sig: dst.Ack}},
	)
	for i, f := range dst.Layout {
		from, ok := src.PayloadFor(f.Name)
		if !ok {
			return nil, fmt.Errorf("source endpoint %q has no field %q required by sink endpoint %q", src.Name, f.Name, dst.Name)
		}
		frag.Comb = append(frag.Comb, sig.Assign{Dst: dst.Payload[i], Src: sig.Ref{Sig: from}})
	}
	return frag, nil
}
