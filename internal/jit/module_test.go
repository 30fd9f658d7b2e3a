package jit

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tensile/internal/codegen"
	"tensile/internal/ir"
)

func requireCC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("cc not available")
	}
}

func TestNewReadsTmpdir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	m := New("int f() { return 0; }\n")
	assert.True(t, strings.HasPrefix(m.cPath(), dir+"/"))
	assert.True(t, strings.HasPrefix(m.source, "#include <stdio.h>\n"))
}

func TestStemAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		stem := randomStem(12)
		require.Len(t, stem, 12)
		for _, c := range stem {
			assert.NotContains(t, "ilo", string(c), "confusable letters are excluded")
		}
	}
}

func TestCompileLoadAndResolve(t *testing.T) {
	requireCC(t)
	t.Setenv("TMPDIR", t.TempDir())

	m := New("int f(int* out) { out[0] = 42; return 0; }\n")
	defer m.Close()

	sofile, err := m.Compile()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sofile, ".so"))

	fp, err := m.Func("f")
	require.NoError(t, err)
	assert.NotZero(t, fp)

	_, err = m.Func("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E2003")
	assert.Contains(t, err.Error(), "missing")
}

func TestCompileFailureReportsCommand(t *testing.T) {
	requireCC(t)
	t.Setenv("TMPDIR", t.TempDir())

	m := New("this is not C\n")
	defer m.Close()

	_, err := m.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E2001")
	assert.Contains(t, err.Error(), "-std=c99")
}

func TestCloseRemovesTempFiles(t *testing.T) {
	requireCC(t)
	t.Setenv("TMPDIR", t.TempDir())

	m := New("int f() { return 0; }\n")
	_, err := m.Compile()
	require.NoError(t, err)

	cfile, sofile := m.cPath(), m.soPath()
	require.NoError(t, m.Close())

	_, err = os.Stat(cfile)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(sofile)
	assert.True(t, os.IsNotExist(err))
}

func TestEndToEndDenseCopy(t *testing.T) {
	requireCC(t)
	t.Setenv("TMPDIR", t.TempDir())

	a := ir.NewVar("A", ir.Double, true)
	b := ir.NewVar("B", ir.Double, true)
	i := ir.NewVar("i", ir.Int, false)
	fn := &ir.Function{
		Name:    "copy",
		Inputs:  []ir.Expr{a},
		Outputs: []ir.Expr{b},
		Body: &ir.Block{Stmts: []ir.Stmt{
			&ir.For{
				Var:       i,
				Start:     &ir.IntImm{Value: 0},
				End:       &ir.IntImm{Value: 4},
				Increment: &ir.IntImm{Value: 1},
				Body:      &ir.Store{Buffer: b, Index: i, Value: &ir.Load{Buffer: a, Index: i}},
			},
		}},
	}

	src := codegen.New(&codegen.NameGenerator{}).Compile(fn)
	m := New(src)
	defer m.Close()

	_, err := m.Compile()
	require.NoError(t, err, "emitted C must be accepted by the compiler")

	fp, err := m.Func("copy")
	require.NoError(t, err)

	in := []float64{1, 2, 3, 4}
	out := make([]float64, 4)
	ret, _, _ := purego.SyscallN(fp,
		uintptr(unsafe.Pointer(&in[0])), uintptr(unsafe.Pointer(&out[0])))
	runtime.KeepAlive(in)
	runtime.KeepAlive(out)

	assert.Zero(t, ret, "generated functions return 0")
	assert.Equal(t, in, out)
}
