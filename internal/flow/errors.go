package flow

import "errors"

var (
	// ErrAlreadyConcrete is returned by Instantiate on a node that has
	// already transitioned to its concrete actor.
	ErrAlreadyConcrete = errors.New("actor node is already concrete")

	// ErrNilNode is returned when a connection names a nil node.
	ErrNilNode = errors.New("connection requires non-nil nodes")

	// ErrPlumbingShape signals an engine bug: an adapter node whose edge
	// shape matches neither the combinator nor the splitter layout role.
	ErrPlumbingShape = errors.New("plumbing node matches neither layout role")

	// ErrPlumbingStalled is returned when a full layout-inference sweep
	// resolves nothing while abstract plumbing nodes remain.
	ErrPlumbingStalled = errors.New("plumbing layout inference made no progress")
)
