package storage

import (
	"tensile/internal/diag"
	"tensile/internal/ir"
)

// Fragment is a piece of IR produced by a mode operation: optional
// setup code plus up to two result expressions — iteration bounds, or a
// resolved (position, coordinate) or (position, found) pair. The zero
// Fragment signals "not supported"; callers check the capability bits
// first.
type Fragment struct {
	Setup ir.Stmt
	A, B  ir.Expr
}

// Defined reports whether the fragment carries any IR.
func (f Fragment) Defined() bool {
	return f.Setup != nil || f.A != nil || f.B != nil
}

// Ops is the record of optional operation handlers backing a mode
// type. Which handlers must be present is dictated by the capability
// bits; NewModeType validates the correspondence.
type Ops struct {
	// Iteration. CoordIter/CoordAccess pair with hasCoordValIter,
	// PosIter/PosAccess with hasCoordPosIter.
	CoordIter   func(i []ir.Expr, mode Mode) Fragment
	CoordAccess func(pPrev ir.Expr, i []ir.Expr, mode Mode) Fragment
	PosIter     func(pPrev ir.Expr, mode Mode) Fragment
	PosAccess   func(p ir.Expr, i []ir.Expr, mode Mode) Fragment

	// Random access, gated by hasLocate.
	Locate func(pPrev ir.Expr, i []ir.Expr, mode Mode) Fragment

	// Insert protocol, gated by hasInsert.
	InsertCoord         func(p ir.Expr, i []ir.Expr, mode Mode) ir.Stmt
	Size                func(mode Mode) ir.Expr
	InsertInitCoords    func(pBegin, pEnd ir.Expr, mode Mode) ir.Stmt
	InsertInitLevel     func(szPrev, sz ir.Expr, mode Mode) ir.Stmt
	InsertFinalizeLevel func(szPrev, sz ir.Expr, mode Mode) ir.Stmt

	// Append protocol, gated by hasAppend.
	AppendCoord         func(p, i ir.Expr, mode Mode) ir.Stmt
	AppendEdges         func(pPrev, pBegin, pEnd ir.Expr, mode Mode) ir.Stmt
	AppendInitEdges     func(pPrevBegin, pPrevEnd ir.Expr, mode Mode) ir.Stmt
	AppendInitLevel     func(szPrev, sz ir.Expr, mode Mode) ir.Stmt
	AppendFinalizeLevel func(szPrev, sz ir.Expr, mode Mode) ir.Stmt

	// Array returns the i-th physical array of the mode, nil when the
	// format stores nothing at that slot. Not gated by a capability.
	Array func(i int, mode Mode) ir.Expr
}

// ModeTypeImpl is the immutable capability record behind a ModeType: a
// name, the property and capability bits, and the operation handlers.
type ModeTypeImpl struct {
	Name string

	// Property bits are contracts, not hints. Full: every coordinate of
	// the extent is stored. Ordered: coordinates under one parent are
	// non-decreasing. Unique: no duplicate coordinate under one parent.
	// Branchless: exactly one child per parent. Compact: the position
	// ranges of consecutive parents are contiguous.
	Full       bool
	Ordered    bool
	Unique     bool
	Branchless bool
	Compact    bool

	HasCoordValIter bool
	HasCoordPosIter bool
	HasLocate       bool
	HasInsert       bool
	HasAppend       bool

	Ops Ops
}

// ModeType is a value handle to an immutable capability record. The
// zero ModeType is undefined.
type ModeType struct {
	impl *ModeTypeImpl
}

// NewModeType validates that every operation group has its handlers
// exactly when the corresponding capability bit is set, then freezes
// the record. A mismatch is a programmer error.
func NewModeType(impl ModeTypeImpl) ModeType {
	check := func(bit bool, present bool, what string) {
		if bit && !present {
			diag.Fatalf("mode type %s advertises %s but has no handler", impl.Name, what)
		}
		if !bit && present {
			diag.Fatalf("mode type %s has a %s handler but does not advertise it", impl.Name, what)
		}
	}

	check(impl.HasCoordValIter, impl.Ops.CoordIter != nil, "coordinate iteration")
	check(impl.HasCoordValIter, impl.Ops.CoordAccess != nil, "coordinate access")
	check(impl.HasCoordPosIter, impl.Ops.PosIter != nil, "position iteration")
	check(impl.HasCoordPosIter, impl.Ops.PosAccess != nil, "position access")
	check(impl.HasLocate, impl.Ops.Locate != nil, "locate")

	check(impl.HasInsert, impl.Ops.InsertCoord != nil, "insert coord")
	check(impl.HasInsert, impl.Ops.Size != nil, "insert size")
	check(impl.HasInsert, impl.Ops.InsertInitCoords != nil, "insert init coords")
	check(impl.HasInsert, impl.Ops.InsertInitLevel != nil, "insert init level")
	check(impl.HasInsert, impl.Ops.InsertFinalizeLevel != nil, "insert finalize level")

	check(impl.HasAppend, impl.Ops.AppendCoord != nil, "append coord")
	check(impl.HasAppend, impl.Ops.AppendEdges != nil, "append edges")
	check(impl.HasAppend, impl.Ops.AppendInitEdges != nil, "append init edges")
	check(impl.HasAppend, impl.Ops.AppendInitLevel != nil, "append init level")
	check(impl.HasAppend, impl.Ops.AppendFinalizeLevel != nil, "append finalize level")

	frozen := impl
	return ModeType{impl: &frozen}
}

// Defined reports whether the handle refers to a capability record.
func (t ModeType) Defined() bool { return t.impl != nil }

func (t ModeType) Name() string { return t.impl.Name }

func (t ModeType) IsFull() bool       { return t.impl.Full }
func (t ModeType) IsOrdered() bool    { return t.impl.Ordered }
func (t ModeType) IsUnique() bool     { return t.impl.Unique }
func (t ModeType) IsBranchless() bool { return t.impl.Branchless }
func (t ModeType) IsCompact() bool    { return t.impl.Compact }

func (t ModeType) HasCoordValIter() bool { return t.impl.HasCoordValIter }
func (t ModeType) HasCoordPosIter() bool { return t.impl.HasCoordPosIter }
func (t ModeType) HasLocate() bool       { return t.impl.HasLocate }
func (t ModeType) HasInsert() bool       { return t.impl.HasInsert }
func (t ModeType) HasAppend() bool       { return t.impl.HasAppend }

func checkFragment(f Fragment, name, op string) Fragment {
	diag.Assertf(f.Defined(), "mode type %s returned an empty %s fragment for an advertised capability", name, op)
	return f
}

func checkStmt(s ir.Stmt, name, op string) ir.Stmt {
	diag.Assertf(s != nil, "mode type %s returned no %s statement for an advertised capability", name, op)
	return s
}

// CoordIter returns setup code and coordinate bounds for iterating the
// mode by coordinate. Zero Fragment when the capability is absent.
func (t ModeType) CoordIter(i []ir.Expr, mode Mode) Fragment {
	if !t.impl.HasCoordValIter {
		return Fragment{}
	}
	return checkFragment(t.impl.Ops.CoordIter(i, mode), t.impl.Name, "coord iter")
}

// CoordAccess resolves a coordinate to a (position, found) pair.
func (t ModeType) CoordAccess(pPrev ir.Expr, i []ir.Expr, mode Mode) Fragment {
	if !t.impl.HasCoordValIter {
		return Fragment{}
	}
	return checkFragment(t.impl.Ops.CoordAccess(pPrev, i, mode), t.impl.Name, "coord access")
}

// PosIter returns setup code and position bounds for iterating the
// mode by position under the parent position pPrev.
func (t ModeType) PosIter(pPrev ir.Expr, mode Mode) Fragment {
	if !t.impl.HasCoordPosIter {
		return Fragment{}
	}
	return checkFragment(t.impl.Ops.PosIter(pPrev, mode), t.impl.Name, "pos iter")
}

// PosAccess resolves a position to a (coordinate, found) pair.
func (t ModeType) PosAccess(p ir.Expr, i []ir.Expr, mode Mode) Fragment {
	if !t.impl.HasCoordPosIter {
		return Fragment{}
	}
	return checkFragment(t.impl.Ops.PosAccess(p, i, mode), t.impl.Name, "pos access")
}

// Locate randomly accesses the child position for a coordinate,
// returning (setup, position, found flag).
func (t ModeType) Locate(pPrev ir.Expr, i []ir.Expr, mode Mode) Fragment {
	if !t.impl.HasLocate {
		return Fragment{}
	}
	return checkFragment(t.impl.Ops.Locate(pPrev, i, mode), t.impl.Name, "locate")
}

func (t ModeType) InsertCoord(p ir.Expr, i []ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasInsert {
		return nil
	}
	return checkStmt(t.impl.Ops.InsertCoord(p, i, mode), t.impl.Name, "insert coord")
}

func (t ModeType) Size(mode Mode) ir.Expr {
	if !t.impl.HasInsert {
		return nil
	}
	return t.impl.Ops.Size(mode)
}

func (t ModeType) InsertInitCoords(pBegin, pEnd ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasInsert {
		return nil
	}
	return checkStmt(t.impl.Ops.InsertInitCoords(pBegin, pEnd, mode), t.impl.Name, "insert init coords")
}

func (t ModeType) InsertInitLevel(szPrev, sz ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasInsert {
		return nil
	}
	return checkStmt(t.impl.Ops.InsertInitLevel(szPrev, sz, mode), t.impl.Name, "insert init level")
}

func (t ModeType) InsertFinalizeLevel(szPrev, sz ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasInsert {
		return nil
	}
	return checkStmt(t.impl.Ops.InsertFinalizeLevel(szPrev, sz, mode), t.impl.Name, "insert finalize level")
}

func (t ModeType) AppendCoord(p, i ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasAppend {
		return nil
	}
	return checkStmt(t.impl.Ops.AppendCoord(p, i, mode), t.impl.Name, "append coord")
}

func (t ModeType) AppendEdges(pPrev, pBegin, pEnd ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasAppend {
		return nil
	}
	return checkStmt(t.impl.Ops.AppendEdges(pPrev, pBegin, pEnd, mode), t.impl.Name, "append edges")
}

func (t ModeType) AppendInitEdges(pPrevBegin, pPrevEnd ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasAppend {
		return nil
	}
	return checkStmt(t.impl.Ops.AppendInitEdges(pPrevBegin, pPrevEnd, mode), t.impl.Name, "append init edges")
}

func (t ModeType) AppendInitLevel(szPrev, sz ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasAppend {
		return nil
	}
	return checkStmt(t.impl.Ops.AppendInitLevel(szPrev, sz, mode), t.impl.Name, "append init level")
}

func (t ModeType) AppendFinalizeLevel(szPrev, sz ir.Expr, mode Mode) ir.Stmt {
	if !t.impl.HasAppend {
		return nil
	}
	return checkStmt(t.impl.Ops.AppendFinalizeLevel(szPrev, sz, mode), t.impl.Name, "append finalize level")
}

// Array returns the i-th physical array of the mode, nil when the
// format stores nothing there.
func (t ModeType) Array(i int, mode Mode) ir.Expr {
	if t.impl.Ops.Array == nil {
		return nil
	}
	return t.impl.Ops.Array(i, mode)
}
