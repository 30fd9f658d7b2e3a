package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintExpr(t *testing.T) {
	i := NewVar("i", Int, false)
	e := &Binary{Op: Add, A: i, B: &IntImm{Value: 1}}

	out := Print(e)
	assert.Contains(t, out, "i#")
	assert.Contains(t, out, "+ 1")
}

func TestPrintLoop(t *testing.T) {
	i := NewVar("i", Int, false)
	a := NewVar("A", Double, true)
	b := NewVar("B", Double, true)
	fn := &Function{
		Name:    "copy",
		Inputs:  []Expr{a},
		Outputs: []Expr{b},
		Body: &Block{Stmts: []Stmt{
			&For{
				Var:       i,
				Start:     &IntImm{Value: 0},
				End:       &IntImm{Value: 4},
				Increment: &IntImm{Value: 1},
				Kind:      Vectorized,
				Body:      &Store{Buffer: b, Index: i, Value: &Load{Buffer: a, Index: i}},
			},
		}},
	}

	out := Print(fn)
	assert.Contains(t, out, "func copy(")
	assert.Contains(t, out, "for[vectorized]")
	assert.True(t, strings.Contains(out, "B#"), "buffers print with identity")
}

func TestPrintDistinguishesAliasedVars(t *testing.T) {
	t1 := NewVar("t", Int, false)
	t2 := NewVar("t", Int, false)
	blk := &Block{Stmts: []Stmt{
		&Assign{Var: t1, Value: &IntImm{Value: 1}},
		&Assign{Var: t2, Value: t1},
	}}

	out := Print(blk)
	assert.NotEqual(t, strings.Index(out, "t#"), strings.LastIndex(out, "t#"))
}
