package storage

import "fmt"

// Dimension is the abstract extent of a mode: a size known at schema
// time, or one resolved at runtime from a variable the lowering pass
// attaches to the mode.
type Dimension struct {
	size  int
	fixed bool
}

// FixedDim creates an extent known at schema time.
func FixedDim(n int) Dimension {
	return Dimension{size: n, fixed: true}
}

// Dim creates an extent resolved at runtime.
func Dim() Dimension {
	return Dimension{}
}

// IsFixed reports whether the extent is known at schema time.
func (d Dimension) IsFixed() bool { return d.fixed }

// Size returns the fixed extent; only meaningful when IsFixed.
func (d Dimension) Size() int { return d.size }

func (d Dimension) String() string {
	if d.fixed {
		return fmt.Sprintf("%d", d.size)
	}
	return "?"
}
