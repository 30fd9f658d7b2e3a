package storage

import (
	"tensile/internal/ir"
)

func imm(n int64) ir.Expr { return &ir.IntImm{Value: n} }

func add(a, b ir.Expr) ir.Expr { return &ir.Binary{Op: ir.Add, A: a, B: b} }
func sub(a, b ir.Expr) ir.Expr { return &ir.Binary{Op: ir.Sub, A: a, B: b} }
func mul(a, b ir.Expr) ir.Expr { return &ir.Binary{Op: ir.Mul, A: a, B: b} }

// emptyStmt is a defined statement emitting no code, for protocol steps
// a format genuinely has no work in. Distinct from nil, which means
// "capability absent".
func emptyStmt() ir.Stmt { return &ir.Block{} }

// sizeExpr resolves a mode's extent: a literal when the dimension is
// fixed, otherwise the size variable attached by the lowering pass.
func sizeExpr(m Mode) ir.Expr {
	if m.Dim().IsFixed() {
		return imm(int64(m.Dim().Size()))
	}
	return m.Var(VarSize)
}

// DenseType stores every coordinate of the extent contiguously. No
// per-mode arrays: a child position is computed, never looked up.
var DenseType = NewModeType(ModeTypeImpl{
	Name:       "dense",
	Full:       true,
	Ordered:    true,
	Unique:     true,
	Branchless: false,
	Compact:    true,

	HasCoordValIter: true,
	HasCoordPosIter: false,
	HasLocate:       true,
	HasInsert:       true,
	HasAppend:       false,

	Ops: Ops{
		CoordIter: func(i []ir.Expr, m Mode) Fragment {
			return Fragment{A: imm(0), B: sizeExpr(m)}
		},
		CoordAccess: func(pPrev ir.Expr, i []ir.Expr, m Mode) Fragment {
			return Fragment{A: add(mul(pPrev, sizeExpr(m)), i[len(i)-1]), B: imm(1)}
		},
		Locate: func(pPrev ir.Expr, i []ir.Expr, m Mode) Fragment {
			return Fragment{A: add(mul(pPrev, sizeExpr(m)), i[len(i)-1]), B: imm(1)}
		},

		// Dense insertion needs no coordinate bookkeeping; every slot
		// already exists.
		InsertCoord: func(p ir.Expr, i []ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},
		Size: func(m Mode) ir.Expr {
			return sizeExpr(m)
		},
		InsertInitCoords: func(pBegin, pEnd ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},
		InsertInitLevel: func(szPrev, sz ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},
		InsertFinalizeLevel: func(szPrev, sz ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},

		Array: func(i int, m Mode) ir.Expr {
			return nil
		},
	},
})
