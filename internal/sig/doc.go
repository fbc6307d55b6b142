// Package sig is the structural layer of the application. It defines signals,
// record layouts and projections over them, a small combinational expression
// language, and the Fragment type: an associative, combinable unit of
// structural description that actors emit and the composition layer
// accumulates and renders.
package sig
