package sig

import "fmt"

// Field is one named slot of a record layout.
type Field struct {
	Name  string
	Width int
}

// Layout is an ordered record-field schema. Order is significant: it
// determines field concatenation order wherever a layout is flattened.
type Layout []Field

// Field returns the field with the given name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in layout order.
func (l Layout) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

// Width returns the total width of the record in bits.
func (l Layout) Width() int {
	total := 0
	for _, f := range l {
		total += f.Width
	}
	return total
}

// Projection names a subset of a layout's fields. A nil projection stands
// for the whole record.
type Projection []string

// Select restricts the layout to the projected fields, in projection order.
// A nil projection returns the layout unchanged.
func (l Layout) Select(p Projection) (Layout, error) {
	if p == nil {
		return l, nil
	}
	out := make(Layout, 0, len(p))
	for _, name := range p {
		f, ok := l.Field(name)
		if !ok {
			return nil, fmt.Errorf("layout has no field %q", name)
		}
		out = append(out, f)
	}
	return out, nil
}

// Equal reports whether two layouts have the same fields, in the same order,
// with the same widths.
func (l Layout) Equal(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
