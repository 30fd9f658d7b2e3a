package lower

import (
	"tensile/internal/diag"
	"tensile/internal/ir"
	"tensile/internal/storage"
)

// Drivers for the append protocol of an assembled output. sizes[k] is
// the entry count at level k-1 (sizes[0] = 1 for the root), so level k
// receives (sizes[k], sizes[k+1]) as its (szPrev, sz) pair.

// InitAppendLevels returns the initialization code for every
// append-capable level, root to leaves.
func InitAppendLevels(modes []storage.Mode, sizes []ir.Expr) ir.Stmt {
	diag.Assertf(len(sizes) == len(modes)+1, "append sizes must cover every level boundary")

	var stmts []ir.Stmt
	for k, m := range modes {
		if !m.Type().HasAppend() {
			continue
		}
		stmts = append(stmts, m.Type().AppendInitLevel(sizes[k], sizes[k+1], m))
	}
	return &ir.Block{Stmts: stmts}
}

// FinalizeAppendLevels returns the finalization code for every
// append-capable level, root to leaves.
func FinalizeAppendLevels(modes []storage.Mode, sizes []ir.Expr) ir.Stmt {
	diag.Assertf(len(sizes) == len(modes)+1, "append sizes must cover every level boundary")

	var stmts []ir.Stmt
	for k, m := range modes {
		if !m.Type().HasAppend() {
			continue
		}
		stmts = append(stmts, m.Type().AppendFinalizeLevel(sizes[k], sizes[k+1], m))
	}
	return &ir.Block{Stmts: stmts}
}
