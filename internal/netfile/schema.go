// Package netfile is the HCL front end for describing abstract actor
// networks. A network file declares named actors (class plus a free-form
// parameters block) and the connections between them; the loader turns those
// declarations into an abstract flow.Graph ready for elaboration.
package netfile

import "github.com/hashicorp/hcl/v2"

// ParamsBlock holds the free-form contents of a `parameters` block. The
// attribute set is defined by the actor class, not by this schema, so it is
// captured raw and decoded later.
type ParamsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ActorBlock is an `actor "class" "name" {}` declaration.
type ActorBlock struct {
	Class      string       `hcl:"class,label"`
	Name       string       `hcl:"name,label"`
	Parameters *ParamsBlock `hcl:"parameters,block"`
}

// ConnectBlock is a `connect {}` declaration. Endpoint names and field
// projections are optional; omitted endpoints resolve to the actor's unique
// endpoint of that polarity during elaboration.
type ConnectBlock struct {
	Source         string   `hcl:"source"`
	Sink           string   `hcl:"sink"`
	SourceEndpoint string   `hcl:"source_endpoint,optional"`
	SinkEndpoint   string   `hcl:"sink_endpoint,optional"`
	SourceFields   []string `hcl:"source_fields,optional"`
	SinkFields     []string `hcl:"sink_fields,optional"`
}

// NetworkFile is the top-level structure of one network description file.
type NetworkFile struct {
	Actors   []*ActorBlock   `hcl:"actor,block"`
	Connects []*ConnectBlock `hcl:"connect,block"`
}
