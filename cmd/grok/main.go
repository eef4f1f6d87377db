package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"grok/internal/version"
)

// errReported marks a failure whose details were already printed, such as
// diagnostics or a runtime error with backtrace.
var errReported = errors.New("errors reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "grok",
		Short:         "grok language checker and bytecode VM",
		Long:          `grok type-checks .grok sources, lowers them to stack IR and runs them on a profiling VM`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newIRCmd())
	root.AddCommand(newExecCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json)")
	pf.String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")

	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
	return root
}

func main() {
	os.Exit(execute(newRootCmd(), os.Args[1:], os.Stderr))
}

// execute runs root with args and returns the process exit code.
func execute(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
