package sig

import (
	"fmt"
	"io"
)

// Assign drives a signal from an expression.
type Assign struct {
	Dst *Signal
	Src Expr
}

// Fragment is an accumulating unit of structural description: a list of
// combinational assignments plus a list of clocked assignments. Combining
// fragments is associative; order of accumulation is preserved so rendering
// is deterministic.
type Fragment struct {
	Comb []Assign
	Sync []Assign
}

// NewFragment creates a fragment from combinational assignments.
func NewFragment(comb ...Assign) *Fragment {
	return &Fragment{Comb: comb}
}

// Add appends the other fragment's statements to this one and returns the
// receiver. A nil other is a no-op.
func (f *Fragment) Add(other *Fragment) *Fragment {
	if other == nil {
		return f
	}
	f.Comb = append(f.Comb, other.Comb...)
	f.Sync = append(f.Sync, other.Sync...)
	return f
}

// Render writes the fragment as a flat netlist, one statement per line.
func (f *Fragment) Render(w io.Writer) error {
	for _, a := range f.Comb {
		if _, err := fmt.Fprintf(w, "assign %s = %s\n", a.Dst, a.Src.exprString()); err != nil {
			return err
		}
	}
	for _, a := range f.Sync {
		if _, err := fmt.Fprintf(w, "sync   %s <= %s\n", a.Dst, a.Src.exprString()); err != nil {
			return err
		}
	}
	return nil
}
