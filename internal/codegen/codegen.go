package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"tensile/internal/diag"
	"tensile/internal/ir"
)

// NameGenerator issues globally unique C identifiers. Increments are
// atomic so concurrent compilations can share one generator; within one
// compilation the names follow the traversal order deterministically.
type NameGenerator struct {
	counter atomic.Uint64
}

// Unique derives a fresh identifier from name. The leading underscore
// keeps renamed variables clear of C keywords.
func (g *NameGenerator) Unique(name string) string {
	n := g.counter.Add(1) - 1
	return "_" + name + "_" + strconv.FormatUint(n, 10)
}

// CodeGen prints IR functions as C99. Each Compile call returns the
// text of one function, renamed through the generator the CodeGen was
// created with, so functions compiled by one CodeGen can be joined into
// one compilation unit without identifier clashes.
type CodeGen struct {
	gen *NameGenerator

	// per-function state
	names     map[*ir.Var]string
	declared  []*ir.Var
	funcBlock bool
	indent    int
}

// New creates a code generator drawing names from gen.
func New(gen *NameGenerator) *CodeGen {
	diag.Assertf(gen != nil, "codegen requires a name generator")
	return &CodeGen{gen: gen}
}

// Compile emits one function as C text.
func (c *CodeGen) Compile(fn *ir.Function) string {
	c.findVars(fn)

	var out strings.Builder
	out.WriteString("int " + fn.Name + "(")
	params := 0
	param := func(e ir.Expr) {
		if params > 0 {
			out.WriteString(", ")
		}
		v := e.(*ir.Var)
		out.WriteString(ir.CType(v.Type, v.IsPtr) + " " + v.Name)
		params++
	}
	for _, in := range fn.Inputs {
		param(in)
	}
	for _, o := range fn.Outputs {
		param(o)
	}
	out.WriteString(") {\n")

	body := fn.Body
	if _, ok := body.(*ir.Block); !ok {
		body = &ir.Block{Stmts: []ir.Stmt{body}}
	}
	c.funcBlock = true
	c.indent = 0
	c.emitStmt(&out, body)

	out.WriteString("}\n")
	return out.String()
}

// findVars collects every variable reachable from the function.
// Inputs and outputs keep their names verbatim; everything else is
// renamed through the generator, in traversal order.
func (c *CodeGen) findVars(fn *ir.Function) {
	c.names = make(map[*ir.Var]string)
	c.declared = nil

	bind := func(e ir.Expr, what string) {
		v, ok := e.(*ir.Var)
		diag.Assertf(ok, "%s of %s must be a Var, got %T", what, fn.Name, e)
		_, dup := c.names[v]
		diag.Assertf(!dup, "duplicate %s %s in %s", what, v.Name, fn.Name)
		c.names[v] = v.Name
	}
	for _, in := range fn.Inputs {
		bind(in, "input")
	}
	for _, o := range fn.Outputs {
		bind(o, "output")
	}

	ir.Walk(fn.Body, func(n ir.Node) bool {
		if v, ok := n.(*ir.Var); ok {
			if _, seen := c.names[v]; !seen {
				c.names[v] = c.gen.Unique(v.Name)
				c.declared = append(c.declared, v)
			}
		}
		return true
	})
}

func (c *CodeGen) varName(v *ir.Var) string {
	name, ok := c.names[v]
	diag.Assertf(ok, "var %s#%d not found in var map", v.Name, v.ID())
	return name
}

func (c *CodeGen) writeIndent(out *strings.Builder) {
	for i := 0; i < c.indent; i++ {
		out.WriteString("  ")
	}
}

func vectorizePragma(width int) string {
	if width == 0 {
		return "#pragma clang loop interleave(enable) vectorize(enable)"
	}
	return fmt.Sprintf("#pragma clang loop interleave(enable) vectorize_width(%d)", width)
}

func (c *CodeGen) emitStmt(out *strings.Builder, s ir.Stmt) {
	switch x := s.(type) {
	case *ir.Block:
		atEntry := c.funcBlock
		c.funcBlock = false
		c.indent++
		if atEntry {
			for _, v := range c.declared {
				c.writeIndent(out)
				out.WriteString(ir.CType(v.Type, v.IsPtr) + " " + c.names[v] + ";\n")
			}
		}
		for _, inner := range x.Stmts {
			c.emitStmt(out, inner)
		}
		if atEntry {
			c.writeIndent(out)
			out.WriteString("return 0;\n")
		}
		c.indent--

	case *ir.Store:
		c.writeIndent(out)
		fmt.Fprintf(out, "%s[%s] = %s;\n", c.emitExpr(x.Buffer), c.emitExpr(x.Index), c.emitExpr(x.Value))

	case *ir.Assign:
		c.writeIndent(out)
		fmt.Fprintf(out, "%s = %s;\n", c.varName(x.Var), c.emitExpr(x.Value))

	case *ir.IfThenElse:
		c.writeIndent(out)
		fmt.Fprintf(out, "if (%s) {\n", c.emitExpr(x.Cond))
		c.emitNested(out, x.Then)
		if x.Else != nil {
			c.writeIndent(out)
			out.WriteString("} else {\n")
			c.emitNested(out, x.Else)
		}
		c.writeIndent(out)
		out.WriteString("}\n")

	case *ir.For:
		if x.Kind == ir.Vectorized {
			c.writeIndent(out)
			out.WriteString(vectorizePragma(x.VecWidth) + "\n")
		}
		c.writeIndent(out)
		v := c.varName(x.Var)
		fmt.Fprintf(out, "for (%s = %s; %s < %s; %s += %s) {\n",
			v, c.emitExpr(x.Start), v, c.emitExpr(x.End), v, c.emitExpr(x.Increment))
		c.emitNested(out, x.Body)
		c.writeIndent(out)
		out.WriteString("}\n")

	case *ir.While:
		if x.Kind == ir.Vectorized {
			c.writeIndent(out)
			out.WriteString(vectorizePragma(x.VecWidth) + "\n")
		}
		c.writeIndent(out)
		fmt.Fprintf(out, "while (%s) {\n", c.emitExpr(x.Cond))
		c.emitNested(out, x.Body)
		c.writeIndent(out)
		out.WriteString("}\n")

	case *ir.Function:
		diag.Fatalf("nested function %s in statement position", x.Name)

	default:
		diag.Fatalf("codegen on unknown statement %T", s)
	}
}

func (c *CodeGen) emitNested(out *strings.Builder, body ir.Stmt) {
	if _, ok := body.(*ir.Block); ok {
		c.emitStmt(out, body)
		return
	}
	c.indent++
	c.emitStmt(out, body)
	c.indent--
}

func (c *CodeGen) emitExpr(e ir.Expr) string {
	switch x := e.(type) {
	case *ir.Var:
		return c.varName(x)
	case *ir.IntImm:
		return strconv.FormatInt(x.Value, 10)
	case *ir.FloatImm:
		s := strconv.FormatFloat(float64(x.Value), 'g', -1, 32)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s + "f"
	case *ir.DoubleImm:
		s := strconv.FormatFloat(x.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case *ir.Binary:
		a, b := c.emitExpr(x.A), c.emitExpr(x.B)
		switch x.Op {
		case ir.Min:
			return fmt.Sprintf("(%s < %s ? %s : %s)", a, b, a, b)
		case ir.Max:
			return fmt.Sprintf("(%s > %s ? %s : %s)", a, b, a, b)
		}
		return fmt.Sprintf("(%s %s %s)", a, x.Op, b)
	case *ir.Load:
		return fmt.Sprintf("%s[%s]", c.emitExpr(x.Buffer), c.emitExpr(x.Index))
	case *ir.Call:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = c.emitExpr(a)
		}
		return fmt.Sprintf("%s(%s)", x.Func, strings.Join(args, ", "))
	case *ir.Cast:
		return fmt.Sprintf("((%s)%s)", x.To, c.emitExpr(x.Value))
	}
	diag.Fatalf("codegen on unknown expression %T", e)
	return ""
}
