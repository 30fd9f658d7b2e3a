package ir

import "fmt"

// Expression equality and ordering. Shape is compared structurally;
// variables compare by identity, never by name, so the order is total
// and usable as a map or sort key.

func exprRank(e Expr) int {
	switch e.(type) {
	case *Var:
		return 0
	case *IntImm:
		return 1
	case *FloatImm:
		return 2
	case *DoubleImm:
		return 3
	case *Binary:
		return 4
	case *Load:
		return 5
	case *Call:
		return 6
	case *Cast:
		return 7
	}
	panic(fmt.Sprintf("ir: rank of unknown expression %T", e))
}

// Equal reports whether a and b have the same structure, with Vars
// compared by identity.
func Equal(a, b Expr) bool {
	return Compare(a, b) == 0
}

// Compare totally orders expressions: negative when a sorts before b,
// zero when equal.
func Compare(a, b Expr) int {
	if a == nil || b == nil {
		switch {
		case a == b:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ra, rb := exprRank(a), exprRank(b); ra != rb {
		return ra - rb
	}
	switch x := a.(type) {
	case *Var:
		return cmpUint64(x.id, b.(*Var).id)
	case *IntImm:
		return cmpInt64(x.Value, b.(*IntImm).Value)
	case *FloatImm:
		return cmpFloat64(float64(x.Value), float64(b.(*FloatImm).Value))
	case *DoubleImm:
		return cmpFloat64(x.Value, b.(*DoubleImm).Value)
	case *Binary:
		y := b.(*Binary)
		if x.Op != y.Op {
			return int(x.Op) - int(y.Op)
		}
		if c := Compare(x.A, y.A); c != 0 {
			return c
		}
		return Compare(x.B, y.B)
	case *Load:
		y := b.(*Load)
		if c := Compare(x.Buffer, y.Buffer); c != 0 {
			return c
		}
		return Compare(x.Index, y.Index)
	case *Call:
		y := b.(*Call)
		if x.Func != y.Func {
			if x.Func < y.Func {
				return -1
			}
			return 1
		}
		if len(x.Args) != len(y.Args) {
			return len(x.Args) - len(y.Args)
		}
		for i := range x.Args {
			if c := Compare(x.Args[i], y.Args[i]); c != 0 {
				return c
			}
		}
		return 0
	case *Cast:
		y := b.(*Cast)
		if x.To != y.To {
			return int(x.To) - int(y.To)
		}
		return Compare(x.Value, y.Value)
	}
	panic(fmt.Sprintf("ir: compare on unknown expression %T", a))
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
