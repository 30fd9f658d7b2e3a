package storage

import (
	"tensile/internal/ir"
)

// CompressedType stores the coordinates present at each parent in a
// crd array, with a pos array bounding each parent's segment:
// positions pos[pPrev] up to pos[pPrev+1] belong to parent pPrev.
var CompressedType = NewModeType(ModeTypeImpl{
	Name:       "compressed",
	Full:       false,
	Ordered:    true,
	Unique:     true,
	Branchless: false,
	Compact:    true,

	HasCoordValIter: false,
	HasCoordPosIter: true,
	HasLocate:       false,
	HasInsert:       false,
	HasAppend:       true,

	Ops: Ops{
		PosIter: func(pPrev ir.Expr, m Mode) Fragment {
			pos := m.Var(VarPos)
			return Fragment{
				A: &ir.Load{Buffer: pos, Index: pPrev},
				B: &ir.Load{Buffer: pos, Index: add(pPrev, imm(1))},
			}
		},
		PosAccess: func(p ir.Expr, i []ir.Expr, m Mode) Fragment {
			return Fragment{A: &ir.Load{Buffer: m.Var(VarCrd), Index: p}, B: imm(1)}
		},

		AppendCoord: func(p, i ir.Expr, m Mode) ir.Stmt {
			return &ir.Store{Buffer: m.Var(VarCrd), Index: p, Value: i}
		},
		// Edges are stored as segment lengths at pPrev+1; the finalize
		// pass turns them into absolute offsets with a prefix sum.
		AppendEdges: func(pPrev, pBegin, pEnd ir.Expr, m Mode) ir.Stmt {
			return &ir.Store{
				Buffer: m.Var(VarPos),
				Index:  add(pPrev, imm(1)),
				Value:  sub(pEnd, pBegin),
			}
		},
		AppendInitEdges: func(pPrevBegin, pPrevEnd ir.Expr, m Mode) ir.Stmt {
			p := ir.NewVar("p"+m.Name(), ir.Int, false)
			return &ir.For{
				Var:       p,
				Start:     pPrevBegin,
				End:       add(pPrevEnd, imm(1)),
				Increment: imm(1),
				Body:      &ir.Store{Buffer: m.Var(VarPos), Index: p, Value: imm(0)},
			}
		},
		AppendInitLevel: func(szPrev, sz ir.Expr, m Mode) ir.Stmt {
			p := ir.NewVar("p"+m.Name(), ir.Int, false)
			return &ir.For{
				Var:       p,
				Start:     imm(0),
				End:       add(szPrev, imm(1)),
				Increment: imm(1),
				Body:      &ir.Store{Buffer: m.Var(VarPos), Index: p, Value: imm(0)},
			}
		},
		AppendFinalizeLevel: func(szPrev, sz ir.Expr, m Mode) ir.Stmt {
			pos := m.Var(VarPos)
			p := ir.NewVar("p"+m.Name(), ir.Int, false)
			return &ir.For{
				Var:       p,
				Start:     imm(1),
				End:       add(szPrev, imm(1)),
				Increment: imm(1),
				Body: &ir.Store{
					Buffer: pos,
					Index:  p,
					Value: add(
						&ir.Load{Buffer: pos, Index: p},
						&ir.Load{Buffer: pos, Index: sub(p, imm(1))},
					),
				},
			}
		},

		Array: func(i int, m Mode) ir.Expr {
			switch i {
			case 0:
				if m.HasVar(VarPos) {
					return m.Var(VarPos)
				}
			case 1:
				if m.HasVar(VarCrd) {
					return m.Var(VarCrd)
				}
			}
			return nil
		},
	},
})
