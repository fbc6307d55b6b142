// Package flow is the elaboration engine of the application. It models an
// abstract network of data-flow actors as a directed multigraph and lowers
// it, in three ordered passes, into a fully concrete one: every node holds
// an instantiated actor and every connection is a single, named,
// whole-record, point-to-point edge.
//
// Pass 1 rewrites away fan-in, fan-out, and subrecord projections by
// inserting Combinator and Splitter adapter nodes. Pass 2 hands the still
// abstract graph to an optional optimizer callback. Pass 3 instantiates
// every deferred actor, infers the adapters' record layouts from their
// concrete neighbors by fixpoint, and resolves omitted endpoint names.
//
// Elaboration is one-way and idempotent; a failed elaboration leaves the
// graph in an unspecified, non-reusable state.
package flow
