package ir

import "fmt"

// Visitor is the strict visitor: one hook per node kind, every kind
// handled. Passes that only care about a few kinds should use Walk
// instead.
type Visitor interface {
	VisitVar(*Var)
	VisitIntImm(*IntImm)
	VisitFloatImm(*FloatImm)
	VisitDoubleImm(*DoubleImm)
	VisitBinary(*Binary)
	VisitLoad(*Load)
	VisitCall(*Call)
	VisitCast(*Cast)
	VisitBlock(*Block)
	VisitStore(*Store)
	VisitAssign(*Assign)
	VisitIfThenElse(*IfThenElse)
	VisitFor(*For)
	VisitWhile(*While)
	VisitFunction(*Function)
}

// Dispatch routes node to the matching Visitor hook.
func Dispatch(node Node, v Visitor) {
	switch n := node.(type) {
	case *Var:
		v.VisitVar(n)
	case *IntImm:
		v.VisitIntImm(n)
	case *FloatImm:
		v.VisitFloatImm(n)
	case *DoubleImm:
		v.VisitDoubleImm(n)
	case *Binary:
		v.VisitBinary(n)
	case *Load:
		v.VisitLoad(n)
	case *Call:
		v.VisitCall(n)
	case *Cast:
		v.VisitCast(n)
	case *Block:
		v.VisitBlock(n)
	case *Store:
		v.VisitStore(n)
	case *Assign:
		v.VisitAssign(n)
	case *IfThenElse:
		v.VisitIfThenElse(n)
	case *For:
		v.VisitFor(n)
	case *While:
		v.VisitWhile(n)
	case *Function:
		v.VisitFunction(n)
	default:
		panic(fmt.Sprintf("ir: dispatch on unknown node %T", node))
	}
}

// Walk traverses node pre-order, left to right, calling fn for each
// node. If fn returns false the node's children are skipped. Nil
// children (an absent else branch) are not visited.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Var, *IntImm, *FloatImm, *DoubleImm:
	case *Binary:
		Walk(n.A, fn)
		Walk(n.B, fn)
	case *Load:
		Walk(n.Buffer, fn)
		Walk(n.Index, fn)
	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *Cast:
		Walk(n.Value, fn)
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *Store:
		Walk(n.Buffer, fn)
		Walk(n.Index, fn)
		Walk(n.Value, fn)
	case *Assign:
		Walk(n.Var, fn)
		Walk(n.Value, fn)
	case *IfThenElse:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	case *For:
		Walk(n.Var, fn)
		Walk(n.Start, fn)
		Walk(n.End, fn)
		Walk(n.Increment, fn)
		Walk(n.Body, fn)
	case *While:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)
	case *Function:
		for _, in := range n.Inputs {
			Walk(in, fn)
		}
		for _, out := range n.Outputs {
			Walk(out, fn)
		}
		Walk(n.Body, fn)
	default:
		panic(fmt.Sprintf("ir: walk on unknown node %T", node))
	}
}
