package storage

import (
	"tensile/internal/ir"
)

// ValuesType terminates a storage tree. It advertises no iteration or
// construction capabilities; its only physical array is the values
// array itself, addressed by the position the parent levels resolved.
var ValuesType = NewModeType(ModeTypeImpl{
	Name:       "values",
	Full:       true,
	Ordered:    true,
	Unique:     true,
	Branchless: true,
	Compact:    true,

	Ops: Ops{
		Array: func(i int, m Mode) ir.Expr {
			if i == 0 && m.HasVar(VarVals) {
				return m.Var(VarVals)
			}
			return nil
		},
	},
})
