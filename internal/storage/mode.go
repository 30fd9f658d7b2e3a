package storage

import (
	"strconv"

	"tensile/internal/diag"
	"tensile/internal/ir"
)

// Names of the variables the built-in formats read from a mode's
// variable map. The map is open-vocabulary — the lowering pass may
// attach anything — but in-tree code refers to these through the
// constants.
const (
	VarPos  = "pos"
	VarCrd  = "crd"
	VarVals = "vals"
	VarSize = "size"
)

// Mode is one dimension of one tensor at one level of its storage
// tree. Mode is a cheap handle over shared content; the zero Mode is
// undefined.
type Mode struct {
	c *modeContent
}

type modeContent struct {
	tensor     *ir.Var
	dim        Dimension
	level      int
	modeType   ModeType
	pack       *ModePack
	packLoc    int
	parentType ModeType

	// Named IR variables the lowering pass attaches (position bounds,
	// coordinate arrays, runtime sizes). Keys are data, not a closed set.
	vars map[string]*ir.Var
}

// NewMode creates a mode for the given tensor variable at the given
// level. The pack back-reference is wired by NewModePack.
func NewMode(tensor ir.Expr, dim Dimension, level int, modeType ModeType, parentType ModeType) Mode {
	tv, ok := tensor.(*ir.Var)
	diag.Assertf(ok, "mode tensor must be a Var, got %T", tensor)
	return Mode{c: &modeContent{
		tensor:     tv,
		dim:        dim,
		level:      level,
		modeType:   modeType,
		parentType: parentType,
		packLoc:    -1,
		vars:       make(map[string]*ir.Var),
	}}
}

// Defined reports whether the mode has content.
func (m Mode) Defined() bool { return m.c != nil }

// Name identifies the mode in diagnostics and generated variable
// names: the tensor name followed by the 1-based level.
func (m Mode) Name() string {
	return m.c.tensor.Name + strconv.Itoa(m.c.level+1)
}

// Tensor returns the variable of the tensor owning the mode.
func (m Mode) Tensor() ir.Expr { return m.c.tensor }

// Dim returns the mode's abstract extent.
func (m Mode) Dim() Dimension { return m.c.dim }

// Level returns the mode's depth in the storage tree, root = 0.
func (m Mode) Level() int { return m.c.level }

// Type returns the mode's encoding.
func (m Mode) Type() ModeType { return m.c.modeType }

// ParentType returns the encoding of the parent level; undefined for
// the root.
func (m Mode) ParentType() ModeType { return m.c.parentType }

// Pack returns the pack the mode belongs to.
func (m Mode) Pack() *ModePack { return m.c.pack }

// PackLocation returns the mode's index within its pack.
func (m Mode) PackLocation() int { return m.c.packLoc }

// HasVar reports whether a named variable is attached.
func (m Mode) HasVar(name string) bool {
	_, ok := m.c.vars[name]
	return ok
}

// Var returns the named attached variable; the name must be attached.
func (m Mode) Var(name string) *ir.Var {
	v, ok := m.c.vars[name]
	diag.Assertf(ok, "mode %s has no var %q", m.Name(), name)
	return v
}

// AddVar attaches a named variable. Only Var nodes may be attached.
func (m Mode) AddVar(name string, e ir.Expr) {
	v, ok := e.(*ir.Var)
	diag.Assertf(ok, "mode %s: var %q must be a Var, got %T", m.Name(), name, e)
	m.c.vars[name] = v
}

// ModePack groups sibling modes at one level that share the same
// backing arrays. The pack does not own the modes' lifetimes, but
// outlives them.
type ModePack struct {
	modes []Mode
}

// NewModePack groups modes into one pack and wires each member's
// back-reference.
func NewModePack(modes []Mode) *ModePack {
	p := &ModePack{modes: modes}
	for i, m := range modes {
		diag.Assertf(m.Defined(), "pack member %d is undefined", i)
		m.c.pack = p
		m.c.packLoc = i
	}
	return p
}

// Size returns the number of modes in the pack.
func (p *ModePack) Size() int { return len(p.modes) }

// Mode returns the i-th member.
func (p *ModePack) Mode(i int) Mode { return p.modes[i] }

// Array returns the i-th physical array of the pack's modes; the first
// member that defines it wins. Undefined arrays return nil.
func (p *ModePack) Array(i int) ir.Expr {
	for _, m := range p.modes {
		if arr := m.Type().Array(i, m); arr != nil {
			return arr
		}
	}
	return nil
}
