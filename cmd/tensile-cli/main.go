package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"tensile/internal/codegen"
	"tensile/internal/diag"
	"tensile/internal/format"
	"tensile/internal/ir"
	"tensile/internal/jit"
	"tensile/internal/lower"
	"tensile/internal/storage"
)

// Demo driver: parse a storage format, bind it to a small tensor,
// assemble a copy kernel into a dense destination, emit C and
// optionally JIT-compile it.
func main() {
	args := os.Args[1:]
	if len(args) < 1 {
		fmt.Println("Usage: tensile-cli <format> [-emit] [-jit] [-v]")
		fmt.Println("  e.g. tensile-cli 'dense(sparse(values()))' -emit")
		os.Exit(1)
	}

	formatText := args[0]
	emit, compile := false, false
	verbosity := 0
	for _, a := range args[1:] {
		switch a {
		case "-emit":
			emit = true
		case "-jit":
			compile = true
		case "-v":
			verbosity = 1
		default:
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", a)
			os.Exit(1)
		}
	}
	commonlog.Configure(verbosity, nil)

	startTime := time.Now()

	schema, err := format.Parse(formatText)
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.Render(err))
		os.Exit(1)
	}

	fmt.Printf("format: %s\n", format.String(schema))
	fmt.Print(format.TreeString(schema))

	fn, err := demoKernel(schema)
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.Render(err))
		os.Exit(1)
	}

	src := codegen.New(&codegen.NameGenerator{}).Compile(fn)
	if emit {
		fmt.Println()
		fmt.Print(src)
	}

	if compile {
		mod := jit.New(src)
		sofile, err := mod.Compile()
		if err != nil {
			fmt.Fprintln(os.Stderr, diag.Render(err))
			os.Exit(1)
		}
		defer mod.Close()
		fmt.Printf("compiled: %s\n", sofile)
		if _, err := mod.Func(fn.Name); err != nil {
			fmt.Fprintln(os.Stderr, diag.Render(err))
			os.Exit(1)
		}
	}

	color.Green("Successfully processed %s in %s", formatText, formatDuration(time.Since(startTime)))
}

// demoKernel binds the schema for a source tensor A, binds a dense
// destination B of the same order, and assembles the copy loop nest.
func demoKernel(schema format.TreeLevel) (*ir.Function, error) {
	order := format.Order(schema)
	dims := make([]storage.Dimension, order)
	for i := range dims {
		dims[i] = storage.FixedDim(4)
	}

	a := ir.NewVar("A", ir.Double, true)
	src, _, err := storage.Bind(a, schema, dims)
	if err != nil {
		return nil, err
	}
	attachArrays(src, "A")

	dstSchema := format.Values()
	for i := 0; i < order; i++ {
		dstSchema = format.Dense(dstSchema)
	}
	b := ir.NewVar("B", ir.Double, true)
	dst, _, err := storage.Bind(b, dstSchema, dims)
	if err != nil {
		return nil, err
	}
	attachArrays(dst, "B")

	asm := &lower.Assembler{Name: "copy", Src: src, Dst: dst}
	return asm.Kernel()
}

// attachArrays gives each bound mode the physical arrays its format
// reads, the way a real frontend would after allocating storage.
func attachArrays(modes []storage.Mode, tensor string) {
	for _, m := range modes {
		switch m.Type().Name() {
		case "compressed":
			m.AddVar(storage.VarPos, ir.NewVar(m.Name()+"_pos", ir.Int, true))
			m.AddVar(storage.VarCrd, ir.NewVar(m.Name()+"_crd", ir.Int, true))
		case "singleton":
			m.AddVar(storage.VarCrd, ir.NewVar(m.Name()+"_crd", ir.Int, true))
		case "values":
			m.AddVar(storage.VarVals, ir.NewVar(tensor+"_vals", ir.Double, true))
		}
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
