package storage

import (
	"tensile/internal/diag"
	"tensile/internal/format"
	"tensile/internal/ir"
)

// Bind instantiates a schema for one tensor, producing a mode per tree
// level with consecutive levels 0..order. Default grouping: each mode
// in its own singleton pack.
func Bind(tensor ir.Expr, schema format.TreeLevel, dims []Dimension) ([]Mode, []*ModePack, error) {
	modes, err := bindModes(tensor, schema, dims)
	if err != nil {
		return nil, nil, err
	}

	packs := make([]*ModePack, len(modes))
	for i, m := range modes {
		packs[i] = NewModePack([]Mode{m})
	}
	return modes, packs, nil
}

// BindPacked instantiates a schema like Bind but fuses each branchless
// mode into its parent's pack, so co-iterated siblings share arrays.
func BindPacked(tensor ir.Expr, schema format.TreeLevel, dims []Dimension) ([]Mode, []*ModePack, error) {
	modes, err := bindModes(tensor, schema, dims)
	if err != nil {
		return nil, nil, err
	}

	var packs []*ModePack
	var group []Mode
	for _, m := range modes {
		if len(group) > 0 && !m.Type().IsBranchless() {
			packs = append(packs, NewModePack(group))
			group = nil
		}
		group = append(group, m)
	}
	if len(group) > 0 {
		packs = append(packs, NewModePack(group))
	}
	return modes, packs, nil
}

func bindModes(tensor ir.Expr, schema format.TreeLevel, dims []Dimension) ([]Mode, error) {
	order := format.Order(schema)
	if len(dims) != order {
		return nil, diag.Newf(diag.ErrorSchemaArity,
			"schema %s has order %d but %d dimensions were given",
			format.String(schema), order, len(dims))
	}

	var modes []Mode
	var parent ModeType
	level := 0
	for l := schema; l != nil; l = l.Sub() {
		t, ok := Lookup(l.FormatName())
		diag.Assertf(ok, "no mode type registered for level format %q", l.FormatName())

		dim := Dim()
		if level < order {
			dim = dims[level]
		}
		modes = append(modes, NewMode(tensor, dim, level, t, parent))
		parent = t
		level++
	}
	return modes, nil
}
