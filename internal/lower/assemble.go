package lower

import (
	"strconv"

	"github.com/pkg/errors"

	"tensile/internal/diag"
	"tensile/internal/ir"
	"tensile/internal/storage"
)

// Assembler builds a pointwise copy kernel over two bound mode chains:
// it walks the source root-to-leaves, picking coordinate iteration
// where the format has it and position iteration otherwise, and
// resolves each destination slot with locate. The result is a complete
// Function ready for the C back end.
type Assembler struct {
	Name string
	Src  []storage.Mode
	Dst  []storage.Mode

	// InnerKind and VecWidth decorate the innermost loop.
	InnerKind ir.LoopKind
	VecWidth  int
}

var _ Producer = (*Assembler)(nil)

// Kernel assembles the loop nest.
func (a *Assembler) Kernel() (*ir.Function, error) {
	diag.Assertf(len(a.Src) == len(a.Dst), "source and destination mode chains differ in length")
	diag.Assertf(len(a.Src) >= 1, "mode chains must at least hold a values level")

	order := len(a.Src) - 1
	body, err := a.level(0, order, imm(0), imm(0), nil)
	if err != nil {
		return nil, err
	}

	fn := &ir.Function{
		Name:    a.Name,
		Inputs:  operandVars(a.Src),
		Outputs: operandVars(a.Dst),
		Body:    &ir.Block{Stmts: []ir.Stmt{body}},
	}
	return fn, nil
}

// level emits the loop for one source level and recurses below it.
// srcPos/dstPos are the parent positions resolved so far; coords holds
// the loop coordinates of the enclosing levels.
func (a *Assembler) level(lvl, order int, srcPos, dstPos ir.Expr, coords []ir.Expr) (ir.Stmt, error) {
	if lvl == order {
		return a.valuesCopy(srcPos, dstPos)
	}

	src := a.Src[lvl]
	st := src.Type()

	switch {
	case st.HasCoordValIter():
		iv := ir.NewVar("i"+strconv.Itoa(lvl), ir.Int, false)
		bounds := st.CoordIter(append(coords, iv), src)
		access := st.CoordAccess(srcPos, append(coords, iv), src)

		dstPosNext, setup, err := a.locate(lvl, dstPos, iv)
		if err != nil {
			return nil, err
		}
		inner, err := a.level(lvl+1, order, access.A, dstPosNext, append(coords, iv))
		if err != nil {
			return nil, err
		}
		return a.loop(lvl, order, iv, bounds, joinSetup(access.Setup, setup, inner)), nil

	case st.HasCoordPosIter():
		pv := ir.NewVar("p"+strconv.Itoa(lvl), ir.Int, false)
		bounds := st.PosIter(srcPos, src)
		access := st.PosAccess(pv, coords, src)

		dstPosNext, setup, err := a.locate(lvl, dstPos, access.A)
		if err != nil {
			return nil, err
		}
		inner, err := a.level(lvl+1, order, pv, dstPosNext, append(coords, access.A))
		if err != nil {
			return nil, err
		}
		return a.loop(lvl, order, pv, bounds, joinSetup(access.Setup, setup, inner)), nil
	}

	return nil, errors.Errorf("source level %d (%s) supports neither coordinate nor position iteration",
		lvl, st.Name())
}

func (a *Assembler) locate(lvl int, dstPos, coord ir.Expr) (ir.Expr, ir.Stmt, error) {
	dst := a.Dst[lvl]
	dt := dst.Type()
	if !dt.HasLocate() {
		return nil, nil, errors.Errorf("destination level %d (%s) has no locate; assemble into a locatable format",
			lvl, dt.Name())
	}
	f := dt.Locate(dstPos, []ir.Expr{coord}, dst)
	return f.A, f.Setup, nil
}

func (a *Assembler) loop(lvl, order int, v *ir.Var, bounds storage.Fragment, body ir.Stmt) ir.Stmt {
	kind, width := ir.Serial, 0
	if lvl == order-1 {
		kind, width = a.InnerKind, a.VecWidth
	}
	loop := &ir.For{
		Var:       v,
		Start:     bounds.A,
		End:       bounds.B,
		Increment: imm(1),
		Kind:      kind,
		VecWidth:  width,
		Body:      body,
	}
	if bounds.Setup != nil {
		return &ir.Block{Stmts: []ir.Stmt{bounds.Setup, loop}}
	}
	return loop
}

func (a *Assembler) valuesCopy(srcPos, dstPos ir.Expr) (ir.Stmt, error) {
	srcVals := a.Src[len(a.Src)-1].Pack().Array(0)
	dstVals := a.Dst[len(a.Dst)-1].Pack().Array(0)
	if srcVals == nil || dstVals == nil {
		return nil, errors.New("values level has no values array attached")
	}
	return &ir.Store{
		Buffer: dstVals,
		Index:  dstPos,
		Value:  &ir.Load{Buffer: srcVals, Index: srcPos},
	}, nil
}

func joinSetup(parts ...ir.Stmt) ir.Stmt {
	var stmts []ir.Stmt
	for _, s := range parts {
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ir.Block{Stmts: stmts}
}

// operandVars collects the function-level variables of a bound operand
// in a stable order: per level the pos, crd and size vars that are
// attached, then the values array.
func operandVars(modes []storage.Mode) []ir.Expr {
	var vars []ir.Expr
	for _, m := range modes {
		for _, key := range []string{storage.VarPos, storage.VarCrd, storage.VarSize} {
			if m.HasVar(key) {
				vars = append(vars, m.Var(key))
			}
		}
	}
	last := modes[len(modes)-1]
	if last.HasVar(storage.VarVals) {
		vars = append(vars, last.Var(storage.VarVals))
	}
	return vars
}

func imm(n int64) ir.Expr { return &ir.IntImm{Value: n} }
