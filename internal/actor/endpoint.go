package actor

import "github.com/vk/flownetgo/internal/sig"

// Polarity tags an endpoint as producing or consuming tokens.
type Polarity int

const (
	// Source endpoints emit tokens.
	Source Polarity = iota
	// Sink endpoints accept tokens.
	Sink
)

func (p Polarity) String() string {
	if p == Source {
		return "source"
	}
	return "sink"
}

// Endpoint is a named port with a polarity, a record layout, and the token
// handshake signals (stb from the source side, ack from the sink side). The
// payload carries one signal per layout field, in layout order.
type Endpoint struct {
	Name    string
	Pol     Polarity
	Layout  sig.Layout
	Stb     *sig.Signal
	Ack     *sig.Signal
	Payload []*sig.Signal
}

// NewEndpoint creates an endpoint and its signals. Signal names start out
// endpoint-local and are qualified once the owning actor is named.
func NewEndpoint(name string, pol Polarity, layout sig.Layout) *Endpoint {
	e := &Endpoint{
		Name:   name,
		Pol:    pol,
		Layout: layout,
		Stb:    sig.New(name+"_stb", 1),
		Ack:    sig.New(name+"_ack", 1),
	}
	for _, f := range layout {
		e.Payload = append(e.Payload, sig.New(name+"_"+f.Name, f.Width))
	}
	return e
}

// PayloadFor returns the payload signal carrying the named field.
func (e *Endpoint) PayloadFor(field string) (*sig.Signal, bool) {
	for i, f := range e.Layout {
		if f.Name == field {
			return e.Payload[i], true
		}
	}
	return nil, false
}

// qualify rewrites the endpoint's signal names under an actor name prefix.
// Safe to call again when the actor is renamed.
func (e *Endpoint) qualify(prefix string) {
	e.Stb.Name = prefix + e.Name + "_stb"
	e.Ack.Name = prefix + e.Name + "_ack"
	for i, f := range e.Layout {
		e.Payload[i].Name = prefix + e.Name + "_" + f.Name
	}
}
