package flow

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flownetgo/internal/actor"
	"github.com/vk/flownetgo/internal/plumbing"
	"github.com/vk/flownetgo/internal/sig"
)

// Kind discriminates what a node will instantiate into. It is fixed at
// construction; the elaboration passes dispatch on it rather than on class
// identity.
type Kind int

const (
	// KindUser nodes instantiate through the actor registry.
	KindUser Kind = iota
	// KindCombinator nodes instantiate a plumbing.Combinator.
	KindCombinator
	// KindSplitter nodes instantiate a plumbing.Splitter.
	KindSplitter
)

func (k Kind) String() string {
	switch k {
	case KindCombinator:
		return "combinator"
	case KindSplitter:
		return "splitter"
	default:
		return "user"
	}
}

// Node is a graph vertex holding either a not-yet-instantiated actor
// descriptor or a concrete actor. The transition is one-way; node identity
// (the pointer) is stable across it.
type Node struct {
	name string
	kind Kind

	// Deferred state. class and params are dropped on instantiation;
	// subrecords parameterize plumbing kinds only.
	class      string
	params     actor.Params
	subrecords []sig.Projection

	// Concrete state.
	act actor.Actor
}

// Deferred creates a node that will instantiate the named actor class with a
// copy of the given parameters. The copy is what allows an optimizer to
// share or duplicate nodes before anything exists.
func Deferred(class string, params actor.Params) *Node {
	return &Node{kind: KindUser, class: class, params: params.Clone()}
}

// Concrete creates a node around an existing actor.
func Concrete(a actor.Actor) *Node {
	return &Node{kind: KindUser, act: a, name: a.Name()}
}

// newPlumbing creates a deferred adapter node. Its layout is left unset;
// layout inference fills it in before instantiation.
func newPlumbing(kind Kind, subrecords []sig.Projection) *Node {
	return &Node{kind: kind, subrecords: subrecords}
}

// Name returns the node's display name, which may be empty.
func (n *Node) Name() string { return n.name }

// SetName sets the display name; it is pushed onto the actor at
// instantiation time (or immediately if already concrete).
func (n *Node) SetName(name string) {
	n.name = name
	if n.act != nil {
		n.act.SetName(name)
	}
}

// Kind returns the node's construction-time kind tag.
func (n *Node) Kind() Kind { return n.kind }

// IsAbstract reports whether the node still awaits instantiation.
func (n *Node) IsAbstract() bool { return n.act == nil }

// Actor returns the concrete actor, or nil while the node is abstract.
func (n *Node) Actor() actor.Actor { return n.act }

// Class returns the deferred class name ("" for concrete or plumbing nodes).
func (n *Node) Class() string { return n.class }

// Instantiate constructs the actor from the deferred class and parameters
// and transitions the node to concrete. Calling it on a concrete node is a
// precondition violation. Plumbing nodes do not instantiate this way; their
// layout must be inferred first.
func (n *Node) Instantiate(reg *actor.Registry) error {
	if n.act != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyConcrete, n)
	}
	if n.kind != KindUser {
		return fmt.Errorf("%s node %s has no inferred layout yet", n.kind, n)
	}
	a, err := reg.Build(n.class, n.params)
	if err != nil {
		return err
	}
	n.adopt(a)
	return nil
}

// instantiatePlumbing constructs the adapter actor once its layout is known.
func (n *Node) instantiatePlumbing(layout sig.Layout) error {
	if n.act != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyConcrete, n)
	}
	var (
		a   actor.Actor
		err error
	)
	switch n.kind {
	case KindCombinator:
		a, err = plumbing.NewCombinator(layout, n.subrecords)
	case KindSplitter:
		a, err = plumbing.NewSplitter(layout, n.subrecords)
	default:
		return fmt.Errorf("%w: node %s has kind %s", ErrPlumbingShape, n, n.kind)
	}
	if err != nil {
		return err
	}
	n.adopt(a)
	return nil
}

func (n *Node) adopt(a actor.Actor) {
	if n.name != "" {
		a.SetName(n.name)
	}
	n.act = a
	n.class = ""
	n.params = nil
	n.subrecords = nil
}

// Attributes returns the deferred parameter map while abstract, and the
// concrete actor's attribute view afterwards. Diagnostic only.
func (n *Node) Attributes() map[string]cty.Value {
	if n.act == nil {
		return n.params
	}
	return n.act.Attributes()
}

func (n *Node) String() string {
	label := n.class
	if n.kind != KindUser {
		label = n.kind.String()
	}
	if n.act != nil {
		if n.name != "" {
			return fmt.Sprintf("<%s>", n.name)
		}
		return fmt.Sprintf("<%T>", n.act)
	}
	if n.name != "" {
		return fmt.Sprintf("<abstract %s: %s>", label, n.name)
	}
	return fmt.Sprintf("<abstract %s>", label)
}
