package sig

import "strconv"

// Expr is a combinational expression over signals.
type Expr interface {
	exprString() string
}

// Ref reads a signal.
type Ref struct {
	Sig *Signal
}

func (r Ref) exprString() string { return r.Sig.String() }

// Const is a literal value.
type Const struct {
	Value uint64
}

func (c Const) exprString() string { return strconv.FormatUint(c.Value, 10) }

// Binary applies an infix operator to two operands.
type Binary struct {
	Op   string
	A, B Expr
}

func (b Binary) exprString() string {
	return "(" + b.A.exprString() + " " + b.Op + " " + b.B.exprString() + ")"
}

// reduce folds signals with an associative operator. An empty input reduces
// to the identity constant, a single input to a plain reference.
func reduce(op string, identity uint64, sigs []*Signal) Expr {
	switch len(sigs) {
	case 0:
		return Const{Value: identity}
	case 1:
		return Ref{Sig: sigs[0]}
	}
	var e Expr = Ref{Sig: sigs[0]}
	for _, s := range sigs[1:] {
		e = Binary{Op: op, A: e, B: Ref{Sig: s}}
	}
	return e
}

// Or builds the boolean-OR reduction of the given signals.
func Or(sigs ...*Signal) Expr { return reduce("|", 0, sigs) }

// And builds the boolean-AND reduction of the given signals.
func And(sigs ...*Signal) Expr { return reduce("&", 1, sigs) }
