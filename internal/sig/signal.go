package sig

import "fmt"

// Signal is a named wire of a fixed bit width. Identity is the pointer;
// the name exists for rendering and diagnostics and may be rewritten when
// the owning actor is assigned its display name.
type Signal struct {
	Name  string
	Width int
}

// New creates a signal with the given name and width in bits.
func New(name string, width int) *Signal {
	return &Signal{Name: name, Width: width}
}

func (s *Signal) String() string {
	if s.Name == "" {
		return fmt.Sprintf("sig@%p", s)
	}
	return s.Name
}
