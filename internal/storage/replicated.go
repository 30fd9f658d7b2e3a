package storage

import (
	"tensile/internal/ir"
)

// ReplicatedType broadcasts the parent's storage across the mode's
// extent: every coordinate resolves to the parent position itself, so
// the level stores nothing. Positions of consecutive parents overlap,
// hence not compact.
var ReplicatedType = NewModeType(ModeTypeImpl{
	Name:       "replicated",
	Full:       true,
	Ordered:    true,
	Unique:     true,
	Branchless: false,
	Compact:    false,

	HasCoordValIter: true,
	HasCoordPosIter: false,
	HasLocate:       true,
	HasInsert:       false,
	HasAppend:       false,

	Ops: Ops{
		CoordIter: func(i []ir.Expr, m Mode) Fragment {
			return Fragment{A: imm(0), B: sizeExpr(m)}
		},
		CoordAccess: func(pPrev ir.Expr, i []ir.Expr, m Mode) Fragment {
			return Fragment{A: pPrev, B: imm(1)}
		},
		Locate: func(pPrev ir.Expr, i []ir.Expr, m Mode) Fragment {
			return Fragment{A: pPrev, B: imm(1)}
		},
	},
})
