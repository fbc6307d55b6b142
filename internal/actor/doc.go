// Package actor defines the actor capability consumed by the elaboration
// engine: named endpoints tagged with a polarity and a record layout, a busy
// signal, a composable fragment, and construction from a registered class
// name plus a named-parameter map.
package actor
