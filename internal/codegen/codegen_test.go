package codegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tensile/internal/ir"
)

func denseCopy(name string, n int64, kind ir.LoopKind, width int) (*ir.Function, *ir.Var, *ir.Var) {
	a := ir.NewVar("A", ir.Double, true)
	b := ir.NewVar("B", ir.Double, true)
	i := ir.NewVar("i", ir.Int, false)
	fn := &ir.Function{
		Name:    name,
		Inputs:  []ir.Expr{a},
		Outputs: []ir.Expr{b},
		Body: &ir.Block{Stmts: []ir.Stmt{
			&ir.For{
				Var:       i,
				Start:     &ir.IntImm{Value: 0},
				End:       &ir.IntImm{Value: n},
				Increment: &ir.IntImm{Value: 1},
				Kind:      kind,
				VecWidth:  width,
				Body:      &ir.Store{Buffer: b, Index: i, Value: &ir.Load{Buffer: a, Index: i}},
			},
		}},
	}
	return fn, a, b
}

func TestDenseVectorCopy(t *testing.T) {
	fn, _, _ := denseCopy("copy", 4, ir.Serial, 0)
	src := New(&NameGenerator{}).Compile(fn)

	want := `int copy(double* A, double* B) {
  int _i_0;
  for (_i_0 = 0; _i_0 < 4; _i_0 += 1) {
    B[_i_0] = A[_i_0];
  }
  return 0;
}
`
	assert.Equal(t, want, src)
}

func TestVectorizePragma(t *testing.T) {
	fn, _, _ := denseCopy("copy", 4, ir.Vectorized, 8)
	src := New(&NameGenerator{}).Compile(fn)

	lines := strings.Split(src, "\n")
	var pragmaAt int
	for i, l := range lines {
		if strings.Contains(l, "#pragma") {
			pragmaAt = i
			break
		}
	}
	assert.Contains(t, lines[pragmaAt], "#pragma clang loop interleave(enable) vectorize_width(8)")
	assert.Contains(t, lines[pragmaAt+1], "for (", "pragma must immediately precede the loop header")
}

func TestVectorizePragmaDefaultWidth(t *testing.T) {
	fn, _, _ := denseCopy("copy", 4, ir.Vectorized, 0)
	src := New(&NameGenerator{}).Compile(fn)
	assert.Contains(t, src, "#pragma clang loop interleave(enable) vectorize(enable)")
}

func TestParallelFallsThroughToSerial(t *testing.T) {
	fn, _, _ := denseCopy("copy", 4, ir.Parallel, 0)
	src := New(&NameGenerator{}).Compile(fn)
	assert.NotContains(t, src, "#pragma")
	assert.Contains(t, src, "for (")
}

func TestUniqueRenaming(t *testing.T) {
	t1 := ir.NewVar("t", ir.Int, false)
	t2 := ir.NewVar("t", ir.Int, false)
	out := ir.NewVar("out", ir.Int, true)
	fn := &ir.Function{
		Name:    "twice",
		Outputs: []ir.Expr{out},
		Body: &ir.Block{Stmts: []ir.Stmt{
			&ir.Assign{Var: t1, Value: &ir.IntImm{Value: 1}},
			&ir.Assign{Var: t2, Value: &ir.IntImm{Value: 2}},
			&ir.Store{Buffer: out, Index: &ir.IntImm{Value: 0}, Value: &ir.Binary{Op: ir.Add, A: t1, B: t2}},
		}},
	}

	src := New(&NameGenerator{}).Compile(fn)

	re := regexp.MustCompile(`_t_\d+`)
	names := map[string]bool{}
	for _, m := range re.FindAllString(src, -1) {
		names[m] = true
	}
	require.Len(t, names, 2, "two distinct identifiers for the two t vars")

	// each use site resolves to its declarer
	assert.Contains(t, src, "_t_0 = 1;")
	assert.Contains(t, src, "_t_1 = 2;")
	assert.Contains(t, src, "out[0] = (_t_0 + _t_1);")
}

func TestInputsAndOutputsKeepTheirNames(t *testing.T) {
	fn, a, b := denseCopy("copy", 4, ir.Serial, 0)
	gen := &NameGenerator{}
	c := New(gen)
	src := c.Compile(fn)

	assert.Contains(t, src, "double* A, double* B")
	assert.Equal(t, "A", c.names[a], "inputs keep their source names verbatim")
	assert.Equal(t, "B", c.names[b])
}

func TestEmittedNamesPairwiseDistinct(t *testing.T) {
	fn, _, _ := denseCopy("copy", 4, ir.Serial, 0)
	c := New(&NameGenerator{})
	c.Compile(fn)

	seen := map[string]bool{}
	for _, name := range c.names {
		assert.False(t, seen[name], "name %s emitted twice", name)
		seen[name] = true
	}
}

func TestCounterIsMonotonicAcrossFunctions(t *testing.T) {
	gen := &NameGenerator{}
	c := New(gen)

	fn1, _, _ := denseCopy("f", 4, ir.Serial, 0)
	fn2, _, _ := denseCopy("g", 4, ir.Serial, 0)
	src1 := c.Compile(fn1)
	src2 := c.Compile(fn2)

	assert.Contains(t, src1, "_i_0")
	assert.Contains(t, src2, "_i_1", "a shared generator never reuses an identifier")
}

func TestWhileAndIfEmission(t *testing.T) {
	n := ir.NewVar("n", ir.Int, false)
	out := ir.NewVar("out", ir.Int, true)
	fn := &ir.Function{
		Name:    "count",
		Outputs: []ir.Expr{out},
		Body: &ir.Block{Stmts: []ir.Stmt{
			&ir.Assign{Var: n, Value: &ir.IntImm{Value: 0}},
			&ir.While{
				Cond: &ir.Binary{Op: ir.Lt, A: n, B: &ir.IntImm{Value: 10}},
				Body: &ir.Block{Stmts: []ir.Stmt{
					&ir.IfThenElse{
						Cond: &ir.Binary{Op: ir.Eq, A: &ir.Binary{Op: ir.Rem, A: n, B: &ir.IntImm{Value: 2}}, B: &ir.IntImm{Value: 0}},
						Then: &ir.Store{Buffer: out, Index: n, Value: n},
						Else: &ir.Store{Buffer: out, Index: n, Value: &ir.IntImm{Value: 0}},
					},
					&ir.Assign{Var: n, Value: &ir.Binary{Op: ir.Add, A: n, B: &ir.IntImm{Value: 1}}},
				}},
			},
		}},
	}

	src := New(&NameGenerator{}).Compile(fn)
	assert.Contains(t, src, "while ((_n_0 < 10)) {")
	assert.Contains(t, src, "if (((_n_0 % 2) == 0)) {")
	assert.Contains(t, src, "} else {")
	assert.Equal(t, 1, strings.Count(src, "return 0;"), "only the function block returns")
}

func TestCallAndCastEmission(t *testing.T) {
	x := ir.NewVar("x", ir.Double, false)
	fn := &ir.Function{
		Name: "emit",
		Body: &ir.Block{Stmts: []ir.Stmt{
			&ir.Assign{Var: x, Value: &ir.Cast{To: ir.Double, Value: &ir.IntImm{Value: 3}}},
			&ir.Store{
				Buffer: ir.NewVar("sink", ir.Double, true),
				Index:  &ir.IntImm{Value: 0},
				Value:  &ir.Call{Func: "fabs", Args: []ir.Expr{x}},
			},
		}},
	}

	src := New(&NameGenerator{}).Compile(fn)
	assert.Contains(t, src, "((double)3)")
	assert.Contains(t, src, "fabs(_x_0)")
}

func TestInvariantViolations(t *testing.T) {
	a := ir.NewVar("A", ir.Double, true)

	assert.Panics(t, func() {
		New(&NameGenerator{}).Compile(&ir.Function{
			Name:   "bad",
			Inputs: []ir.Expr{&ir.IntImm{Value: 1}},
			Body:   &ir.Block{},
		})
	}, "non-Var input")

	assert.Panics(t, func() {
		New(&NameGenerator{}).Compile(&ir.Function{
			Name:   "bad",
			Inputs: []ir.Expr{a, a},
			Body:   &ir.Block{},
		})
	}, "duplicate input")
}
