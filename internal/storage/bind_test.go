package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tensile/internal/format"
	"tensile/internal/ir"
)

func TestBindCsrSchema(t *testing.T) {
	schema, err := format.Parse("dense(sparse(values()))")
	require.NoError(t, err)

	a := ir.NewVar("A", ir.Double, true)
	modes, packs, err := Bind(a, schema, []Dimension{FixedDim(3), FixedDim(4)})
	require.NoError(t, err)

	require.Len(t, modes, 3)
	require.Len(t, packs, 3)

	assert.Equal(t, []string{"dense", "compressed", "values"}, []string{
		modes[0].Type().Name(), modes[1].Type().Name(), modes[2].Type().Name(),
	})
	for i, m := range modes {
		assert.Equal(t, i, m.Level(), "levels are consecutive from the root")
		assert.Equal(t, 1, m.Pack().Size(), "default grouping is one mode per pack")
		assert.Same(t, packs[i], m.Pack())
		assert.Equal(t, 0, m.PackLocation())
	}

	assert.False(t, modes[0].ParentType().Defined(), "root has no parent type")
	assert.Equal(t, "dense", modes[1].ParentType().Name())
	assert.Equal(t, "compressed", modes[2].ParentType().Name())
}

func TestBindArityMismatch(t *testing.T) {
	schema, err := format.Parse("dense(values())")
	require.NoError(t, err)

	_, _, err = Bind(ir.NewVar("A", ir.Double, true), schema, []Dimension{FixedDim(2), FixedDim(2)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E0200")
}

func TestBindPackedFusesBranchlessModes(t *testing.T) {
	schema, err := format.Parse("sparse(fixed(values()))")
	require.NoError(t, err)

	a := ir.NewVar("A", ir.Double, true)
	modes, packs, err := BindPacked(a, schema, []Dimension{Dim(), Dim()})
	require.NoError(t, err)

	require.Len(t, modes, 3)
	// sparse starts a pack; the branchless fixed mode fuses into it;
	// values is branchless and fuses too.
	require.Len(t, packs, 1)
	assert.Equal(t, 3, packs[0].Size())
	assert.Equal(t, 1, modes[1].PackLocation())
}
