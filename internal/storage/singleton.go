package storage

import (
	"tensile/internal/ir"
)

// SingletonType stores exactly one coordinate per parent in a crd
// array. Branchless: the single child position is the parent position,
// so iteration fuses into the parent's loop.
var SingletonType = NewModeType(ModeTypeImpl{
	Name:       "singleton",
	Full:       false,
	Ordered:    true,
	Unique:     true,
	Branchless: true,
	Compact:    true,

	HasCoordValIter: false,
	HasCoordPosIter: true,
	HasLocate:       false,
	HasInsert:       false,
	HasAppend:       true,

	Ops: Ops{
		PosIter: func(pPrev ir.Expr, m Mode) Fragment {
			return Fragment{A: pPrev, B: add(pPrev, imm(1))}
		},
		PosAccess: func(p ir.Expr, i []ir.Expr, m Mode) Fragment {
			return Fragment{A: &ir.Load{Buffer: m.Var(VarCrd), Index: p}, B: imm(1)}
		},

		AppendCoord: func(p, i ir.Expr, m Mode) ir.Stmt {
			return &ir.Store{Buffer: m.Var(VarCrd), Index: p, Value: i}
		},
		// One child per parent: there is no edge structure to maintain.
		AppendEdges: func(pPrev, pBegin, pEnd ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},
		AppendInitEdges: func(pPrevBegin, pPrevEnd ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},
		AppendInitLevel: func(szPrev, sz ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},
		AppendFinalizeLevel: func(szPrev, sz ir.Expr, m Mode) ir.Stmt {
			return emptyStmt()
		},

		Array: func(i int, m Mode) ir.Expr {
			if i == 0 && m.HasVar(VarCrd) {
				return m.Var(VarCrd)
			}
			return nil
		},
	},
})
