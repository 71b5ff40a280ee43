package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	abint "github.com/abint-dev/abint"
	"github.com/abint-dev/abint/internal/expr"
	"github.com/abint-dev/abint/internal/interp"
	"github.com/abint-dev/abint/internal/memory"
	"github.com/abint-dev/abint/internal/outcome"
	"github.com/abint-dev/abint/internal/symbol"
)

// traceCmd: abint trace
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run a canned symbolic trace and print the diagnostics it finds",
	Long: `Drives the engine over a built-in use-after-free scenario:
an uninitialized read, a write, a clean re-read, an invalidation, and a
use of the invalidated value. Useful as an end-to-end smoke check.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		runTrace(abint.New(logger, cfg))
	},
}

var (
	stepColor  = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	defectTint = color.New(color.FgYellow)
	fatalTint  = color.New(color.FgRed, color.Bold)
)

func runTrace(engine *abint.Engine) {
	ev := engine.Evaluator()
	st := engine.NewState()
	pc := symbol.PathContext{Location: "trace:0"}

	p := expr.Var("p")
	steps := []struct {
		name string
		op   func(symbol.PathContext, *memory.State) outcome.Result
	}{
		{"read through uninitialized pointer", func(pc symbol.PathContext, st *memory.State) outcome.Result {
			return ev.Eval(pc, interp.Read, expr.Deref(p), st)
		}},
		{"write establishes the field", func(pc symbol.PathContext, st *memory.State) outcome.Result {
			return ev.WriteField(pc, expr.Deref(p), "f", memory.Destination{Addr: symbol.Fresh()}, st)
		}},
		{"re-read is clean", func(pc symbol.PathContext, st *memory.State) outcome.Result {
			return ev.Eval(pc, interp.Read, expr.Field(expr.Deref(p), "f"), st)
		}},
		{"free invalidates the pointee", func(pc symbol.PathContext, st *memory.State) outcome.Result {
			return ev.InvalidateDerefAccess(pc, p, memory.CauseFree, st)
		}},
		{"use after free", func(pc symbol.PathContext, st *memory.State) outcome.Result {
			return ev.Eval(pc, interp.Read, expr.Field(expr.Deref(p), "f"), st)
		}},
	}

	for i, step := range steps {
		pc.Clock = int64(i)
		pc.Location = fmt.Sprintf("trace:%d", i+1)

		res := step.op(pc, st)
		printResult(step.name, res)
		if !engine.Observe(res) {
			return
		}
		st = res.State
	}
}

func printResult(name string, res outcome.Result) {
	fmt.Printf("%s %s\n", stepColor.Sprint("step:"), name)
	for _, d := range res.Diags {
		fmt.Printf("  %s %s\n", defectTint.Sprint("defect:"), d)
	}
	switch res.Kind {
	case outcome.KindFatal:
		fmt.Printf("  %s %s\n", fatalTint.Sprint("fatal:"), res.Fatal)
		for _, e := range res.Fatal.Trace {
			fmt.Printf("    %s\n", e)
		}
	case outcome.KindUnsat:
		fmt.Printf("  pruned: %s\n", res.UnsatReason())
	default:
		fmt.Printf("  %s\n", okColor.Sprint("ok"))
	}
}
